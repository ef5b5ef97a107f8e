package cli

import (
	"github.com/spf13/cobra"

	"github.com/caawww/data-vis/analysis"
	"github.com/caawww/data-vis/storage"
)

func newLoadCmd(a *app) *cobra.Command {
	var csvOut string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Clean the catalog CSV and store it in PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			games, err := a.readCSV()
			if err != nil {
				return err
			}

			if csvOut != "" {
				w, err := storage.NewCSVWriter(csvOut)
				if err != nil {
					return err
				}
				if err := saveCatalog(ctx, w, games); err != nil {
					return err
				}
				a.logger.Info("[load] Clean catalog saved to %s", csvOut)
			}

			store, err := storage.NewPostgresStore(ctx, a.cfg.DSN(), a.retryConfig())
			if err != nil {
				a.logger.Error("Make sure PostgreSQL is reachable at %s:%s", a.cfg.PostgresHost, a.cfg.PostgresPort)
				return err
			}
			return saveCatalog(ctx, store, games)
		},
	}
	cmd.Flags().StringVar(&csvOut, "csv-out", "", "also write the cleaned catalog to this CSV file")
	return cmd
}

func newOverviewCmd(a *app) *cobra.Command {
	f := &analysisFlags{}
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Per-label supply, demand and rankings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := f.apply(cmd, a.cfg.Analysis)
			if err != nil {
				return err
			}
			games, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			report, err := a.insights.Overview(games, p)
			if err != nil {
				return err
			}
			a.insights.PrintOverview(a.out, report)
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newGapsCmd(a *app) *cobra.Command {
	f := &analysisFlags{}
	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "Supply rank against demand rank for every label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := f.apply(cmd, a.cfg.Analysis)
			if err != nil {
				return err
			}
			games, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			report, err := a.insights.Overview(games, p)
			if err != nil {
				return err
			}
			a.insights.PrintGaps(a.out, report)
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newLabelCmd(a *app) *cobra.Command {
	f := &analysisFlags{}
	cmd := &cobra.Command{
		Use:   "label LABEL [LABEL...]",
		Short: "Profile, co-labels and timeline of one or more labels",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := f.apply(cmd, a.cfg.Analysis)
			if err != nil {
				return err
			}
			games, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			reports, err := a.insights.Labels(cmd.Context(), games, p.Dimension, args)
			if err != nil {
				return err
			}
			for _, r := range reports {
				a.insights.PrintLabel(a.out, r)
			}
			return nil
		},
	}
	f.registerDimension(cmd.Flags())
	return cmd
}

func newIntersectCmd(a *app) *cobra.Command {
	f := &analysisFlags{}
	var minItems int
	cmd := &cobra.Command{
		Use:   "intersect LABEL [LABEL...]",
		Short: "Count games per exact combination of labels",
		Long: "With one label, its games are matched against its most frequent co-labels.\n" +
			"With two to six labels, the whole catalog is matched against exactly those.",
		Args: cobra.RangeArgs(1, analysis.MaxIntersectionLabels),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := f.apply(cmd, a.cfg.Analysis)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("min-items") {
				minItems = a.cfg.MinIntersectionItems
			}
			games, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			report, err := a.insights.Intersect(games, p.Dimension, args, minItems)
			if err != nil {
				return err
			}
			a.insights.PrintIntersection(a.out, report)
			return nil
		},
	}
	f.registerDimension(cmd.Flags())
	cmd.Flags().IntVar(&minItems, "min-items", 0, "minimum games needed (default: MIN_INTERSECTION_ITEMS)")
	return cmd
}
