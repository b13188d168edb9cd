package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/mathias-mike/arrow/internal/config"
	"github.com/mathias-mike/arrow/pkg/adapter"
	"github.com/mathias-mike/arrow/pkg/sqlarrow"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	// Register the bundled adapters
	_ "github.com/mathias-mike/arrow/pkg/adapters/duckdb"
	_ "github.com/mathias-mike/arrow/pkg/adapters/postgres"
	_ "github.com/mathias-mike/arrow/pkg/adapters/sqlite"
)

// maxConcurrentQueries bounds the describes in flight on one connection pool.
const maxConcurrentQueries = 4

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Describe query results as Arrow schemas",
		Long: `Run each query far enough to read its column types and print the
Arrow schema the conversion profile produces for it. No rows are read.`,
		Example: `  sqlarrow schema --adapter sqlite --dsn shop.db -q "SELECT * FROM orders"
  sqlarrow schema --profile shop.yaml -o yaml
  SQLARROW_TIME_ZONE=UTC sqlarrow schema --adapter duckdb -q "SELECT now() AS ts"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profilePath, _ := cmd.Flags().GetString("profile")
			profile, err := config.Load(profilePath, cmd.Flags())
			if err != nil {
				return err
			}
			if err := profile.Validate(); err != nil {
				return err
			}

			views, err := describeAll(cmd.Context(), profile, GetLogger(cmd.Context()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return renderSchemas(out, views, resolveFormat(profile.Output, out))
		},
	}

	config.BindFlags(cmd.Flags())
	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("adapter", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return adapter.ListAdapters(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// describeAll connects once and describes every query of the profile
// concurrently against a single shared Config.
func describeAll(ctx context.Context, profile *config.Profile, logger *slog.Logger) ([]SchemaView, error) {
	builder, err := profile.Builder(memory.DefaultAllocator)
	if err != nil {
		return nil, err
	}
	cfg, err := builder.Build()
	if err != nil {
		return nil, err
	}
	batchSize, err := cfg.ResolveBatchSize()
	if err != nil {
		return nil, err
	}

	adp, err := adapter.Open(ctx, profile.AdapterConfig(), logger)
	if err != nil {
		return nil, err
	}
	defer func() { _ = adp.Close() }()

	views := make([]SchemaView, len(profile.Queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQueries)
	for i, query := range profile.Queries {
		g.Go(func() error {
			view, err := describeQuery(gctx, adp, cfg, batchSize, query)
			if err != nil {
				return fmt.Errorf("query %d: %w", i+1, err)
			}
			views[i] = view
			logger.Debug("described query",
				slog.Int("query", i+1),
				slog.Int("columns", len(view.Columns)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

func describeQuery(ctx context.Context, adp adapter.Adapter, cfg *sqlarrow.Config, batchSize int, query string) (SchemaView, error) {
	fields, err := adp.Describe(ctx, query)
	if err != nil {
		return SchemaView{}, err
	}
	schema, err := cfg.Schema(fields)
	if err != nil {
		return SchemaView{}, err
	}
	return newSchemaView(query, batchSize, fields, schema), nil
}
