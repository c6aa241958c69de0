package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/pencil-api/internal/adapters/clients"
	"github.com/jsamuelsen/pencil-api/internal/adapters/clients/acl"
	"github.com/jsamuelsen/pencil-api/internal/app"
	"github.com/jsamuelsen/pencil-api/internal/platform/config"
)

type importOptions struct {
	userID      uint32
	count       int
	category    string
	concurrency int
}

func newImportCmd(opts *Options) *cobra.Command {
	var flags importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Fetch quotes from the upstream sentence service into the store",
		Long: `import pulls sentences from a hitokoto-compatible service and
submits each distinct one as the given user. The user must exist.`,
		Example: "  pencil import --user 123456 --count 10 --category d",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			logger := NewLogger(cfg)

			application, err := NewApplication(cmd.Context(), cfg, nil, logger)
			if err != nil {
				return err
			}

			client, err := clients.New(upstreamClientConfig(cfg.Upstream, logger))
			if err != nil {
				return err
			}

			importer := app.NewImporter(app.ImporterConfig{
				Source: acl.NewHitokotoSource(client, logger),
				Store:  application.Store,
				Logger: logger,
			})

			result, err := importer.Import(cmd.Context(), app.ImportRequest{
				UserID:      flags.userID,
				Count:       flags.count,
				Category:    flags.category,
				Concurrency: flags.concurrency,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for _, q := range result.Created {
				fmt.Fprintf(out, "imported %s\n", q.ID)
			}

			fmt.Fprintf(out, "created: %d  duplicates: %d  failed: %d\n",
				len(result.Created), result.Duplicates, result.Failed)

			return nil
		},
	}

	cmd.Flags().Uint32Var(&flags.userID, "user", 0, "user id the quotes are submitted as")
	cmd.Flags().IntVar(&flags.count, "count", 1, "number of sentences to fetch")
	cmd.Flags().StringVar(&flags.category, "category", "", "upstream category code, empty for any")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 4, "maximum in-flight upstream requests")

	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func upstreamClientConfig(u config.UpstreamConfig, logger *slog.Logger) clients.Config {
	return clients.Config{
		BaseURL:     u.BaseURL,
		ServiceName: "hitokoto",
		UserAgent:   u.UserAgent,
		Timeout:     u.Timeout,
		Retry: clients.RetryPolicy{
			MaxAttempts:     u.Retry.MaxAttempts,
			InitialInterval: u.Retry.InitialInterval,
			MaxInterval:     u.Retry.MaxInterval,
			Multiplier:      u.Retry.Multiplier,
		},
		Breaker: clients.BreakerConfig{
			MaxFailures: u.Breaker.MaxFailures,
			CoolDown:    u.Breaker.CoolDown,
			Trials:      u.Breaker.Trials,
		},
		Logger: logger,
	}
}
