package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrDanglingReferences is returned by check when any reference does not
// resolve.
var ErrDanglingReferences = errors.New("dangling references found")

func newCheckCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the data files and report references that do not resolve",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			application, err := NewApplication(cmd.Context(), cfg, nil, NewLogger(cfg))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			quotes, users, collections := application.Store.Counts()
			fmt.Fprintf(out, "quotes: %d  users: %d  collections: %d\n", quotes, users, collections)

			dangling := application.Store.DanglingReferences(cmd.Context())
			for _, ref := range dangling {
				fmt.Fprintf(out, "%s -> missing %s %s\n", ref.Owner, ref.Kind, ref.ID)
			}

			if len(dangling) > 0 {
				return fmt.Errorf("%w: %d", ErrDanglingReferences, len(dangling))
			}

			fmt.Fprintln(out, "ok")

			return nil
		},
	}
}
