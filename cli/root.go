package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/caawww/data-vis/analysis"
	"github.com/caawww/data-vis/config"
	"github.com/caawww/data-vis/models"
	"github.com/caawww/data-vis/services"
	"github.com/caawww/data-vis/storage"
	"github.com/caawww/data-vis/utils"
)

// Catalog sources accepted by --source.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Exit codes returned by Execute.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitBadArgument = 2
)

// rootOptions holds global CLI flags.
type rootOptions struct {
	Source     string
	CSVPath    string
	LogLevel   string
	PresetFile string
}

// app carries initialized dependencies through the command tree.
type app struct {
	opts     rootOptions
	out      io.Writer
	cfg      *config.Config
	logger   *utils.Logger
	insights *services.InsightService
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	a := &app{out: out}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err == nil {
		return ExitOK
	}
	fmt.Fprintf(errOut, "Error: %v\n", err)
	if errors.Is(err, analysis.ErrInvalidParams) {
		return ExitBadArgument
	}
	return ExitFailure
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data-vis",
		Short: "Supply and demand insights for Steam game labels",
		Long: "data-vis loads the Steam games catalog and ranks its tags, genres and\n" +
			"categories by how many games use them against how much attention they get.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.opts.Source, "source", SourceCSV, "catalog source (csv, postgres)")
	pf.StringVar(&a.opts.CSVPath, "csv", "", "catalog CSV path (default: CATALOG_CSV_PATH)")
	pf.StringVar(&a.opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&a.opts.PresetFile, "preset", "", "YAML analysis preset (default: ANALYSIS_PRESET_FILE)")

	cmd.AddCommand(
		newLoadCmd(a),
		newOverviewCmd(a),
		newGapsCmd(a),
		newLabelCmd(a),
		newIntersectCmd(a),
	)
	return cmd
}

// init loads configuration and builds the shared services.
func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.opts.PresetFile != "" {
		preset, err := config.LoadPreset(a.opts.PresetFile, config.Preset{Analysis: cfg.Analysis, OwnerTiers: cfg.OwnerTiers})
		if err != nil {
			return err
		}
		cfg.Analysis, cfg.OwnerTiers = preset.Analysis, preset.OwnerTiers
	}
	if a.opts.CSVPath != "" {
		cfg.CatalogCSVPath = a.opts.CSVPath
	}
	if a.opts.LogLevel != "" {
		cfg.LogLevel = a.opts.LogLevel
	}

	logger, err := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	if !cfg.EnvFileLoaded {
		logger.Debug("[config] No .env file found, using environment variables only")
	}

	a.cfg = cfg
	a.logger = logger
	a.insights = services.NewInsightService(logger, cfg.MaxConcurrency)
	return nil
}

func (a *app) retryConfig() utils.RetryConfig {
	return utils.RetryConfig{MaxAttempts: a.cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: a.logger}
}

// loadCatalog returns the cleaned catalog from the selected source.
func (a *app) loadCatalog(ctx context.Context) ([]*models.Game, error) {
	switch a.opts.Source {
	case SourceCSV:
		return a.readCSV()
	case SourcePostgres:
		store, err := storage.NewPostgresStore(ctx, a.cfg.DSN(), a.retryConfig())
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return a.fetchCatalog(ctx, store, "PostgreSQL")
	default:
		return nil, &analysis.ParamError{Field: "source", Reason: fmt.Sprintf("unknown source %q (want csv or postgres)", a.opts.Source)}
	}
}

func (a *app) fetchCatalog(ctx context.Context, src storage.GameSource, name string) ([]*models.Game, error) {
	games, err := src.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Info("[catalog] Fetched %d games from %s", len(games), name)
	return games, nil
}

func (a *app) readCSV() ([]*models.Game, error) {
	return a.cleanCatalog(storage.NewCSVReader(a.cfg.CatalogCSVPath), a.cfg.CatalogCSVPath)
}

func (a *app) cleanCatalog(r storage.RawGameReader, name string) ([]*models.Game, error) {
	raw, err := r.ReadRaw()
	if err != nil {
		return nil, err
	}
	a.logger.Info("[catalog] Read %d rows from %s", len(raw), name)
	games := services.NewCleaner(a.logger, a.cfg.OwnerTiers).Clean(raw)
	if len(games) == 0 {
		return nil, fmt.Errorf("catalog %s has no usable rows", name)
	}
	return games, nil
}

// saveCatalog writes games to w and closes it. The write error wins over
// the close error.
func saveCatalog(ctx context.Context, w storage.GameWriter, games []*models.Game) error {
	if err := w.Write(ctx, games); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
