package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tubemap/internal/server"
	"github.com/matzehuels/tubemap/pkg/config"
	"github.com/matzehuels/tubemap/pkg/observability"
	"github.com/matzehuels/tubemap/pkg/store"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Layouts created with POST /v1/layouts are kept in the configured store
(memory or MongoDB) and rendered artifacts in the configured cache.
Stop the server with Ctrl-C; in-flight requests are allowed to finish.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.Config.Server.Addr = addr
			}
			return c.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	logger := loggerFromContext(ctx)
	cfg := c.Config

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	st, err := newStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	observability.NewLogHooks(logger).Register()
	defer observability.Reset()

	srv := server.New(runner, st,
		server.WithLogger(logger),
		server.WithDefaults(c.baseOptions()),
		server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
		server.WithTimeouts(cfg.Server.ReadTimeout.Duration, cfg.Server.WriteTimeout.Duration),
	)

	printInfo("Serving on %s", StyleHighlight.Render(cfg.Server.Addr))
	printKeyValue("store", cfg.Store.Backend)
	printKeyValue("cache", cfg.Cache.Backend)
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

func newStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	if cfg.Backend != config.StoreMongo {
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.Database, cfg.Collection)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
