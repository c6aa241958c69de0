package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create empty data files that do not exist yet",
		Long: `Create the data directory and write an empty JSON array to each
missing quotes, users and collections file. Existing files are left
untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			repo := NewRepository(cfg, nil, NewLogger(cfg))

			created, err := repo.Initialize(cmd.Context())
			for _, path := range created {
				fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			}

			if err != nil {
				return err
			}

			if len(created) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "data files already present")
			}

			return nil
		},
	}
}
