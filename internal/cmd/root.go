// Package cmd implements the pencil command line: serve, init, check and
// import.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/pencil-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/pencil-api/internal/platform/config"
)

// Options are the persistent flags shared by every subcommand.
type Options struct {
	ConfigDir string
	Profile   string
}

// NewRootCmd creates the root command.
func NewRootCmd(build handlers.BuildInfo) *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:   "pencil",
		Short: "Quote, user and collection service backed by JSON files",
		Long: `pencil serves a small quote collection API.

Quotes, users and collections live in memory and every write is
persisted to a JSON file in the data directory.`,
		Version:       build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", config.DefaultDir,
		"directory holding base.yaml and profile files")
	root.PersistentFlags().StringVar(&opts.Profile, "profile", defaultProfile(),
		"config profile to layer over base.yaml (env APP_PROFILE)")

	root.AddCommand(newServeCmd(opts, build))
	root.AddCommand(newInitCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newImportCmd(opts))

	return root
}

func defaultProfile() string {
	if p := os.Getenv("APP_PROFILE"); p != "" {
		return p
	}

	return "local"
}

// loadConfig loads and validates configuration. The service should not
// start with an invalid config.
func (o *Options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.ConfigDir, o.Profile)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
