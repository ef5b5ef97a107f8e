package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/caawww/data-vis/analysis"
	"github.com/caawww/data-vis/models"
)

// analysisFlags are the per-run overrides of the configured analysis
// defaults. Only flags set on the command line are applied.
type analysisFlags struct {
	dimension  string
	from, to   int
	minGames   int
	method     string
	demand     string
	include    []string
	exclude    []string
	minReviews float64
	minCCU     float64
	top        int
}

func (f *analysisFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.dimension, "dimension", "", "label dimension (Tags, Genres, Categories)")
	fs.IntVar(&f.from, "from", 0, "first release year")
	fs.IntVar(&f.to, "to", 0, "last release year")
	fs.IntVar(&f.minGames, "min-games", 0, "minimum games per label")
	fs.StringVar(&f.method, "method", "", "aggregation method (mean, median)")
	fs.StringVar(&f.demand, "demand", "", "demand metric (owners, positive, peak_ccu, total_reviews)")
	fs.StringSliceVar(&f.include, "include", nil, "only analyse these labels")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "leave these labels out")
	fs.Float64Var(&f.minReviews, "min-reviews", 0, "minimum total reviews per game")
	fs.Float64Var(&f.minCCU, "min-ccu", 0, "minimum peak CCU per game")
	fs.IntVar(&f.top, "top", 0, "rows per ranking table")
}

// registerDimension adds only --dimension, for commands that take labels
// as arguments.
func (f *analysisFlags) registerDimension(fs *pflag.FlagSet) {
	fs.StringVar(&f.dimension, "dimension", "", "label dimension (Tags, Genres, Categories)")
}

// apply returns base with every flag the user set on cmd applied, validated.
func (f *analysisFlags) apply(cmd *cobra.Command, base analysis.Params) (analysis.Params, error) {
	p := base
	changed := cmd.Flags().Changed

	if changed("dimension") {
		p.Dimension = models.Dimension(f.dimension)
	}
	if changed("from") {
		p.YearFrom = f.from
	}
	if changed("to") {
		p.YearTo = f.to
	}
	if changed("min-games") {
		p.MinGamesPerLabel = f.minGames
	}
	if changed("method") {
		p.Method = analysis.Method(f.method)
	}
	if changed("demand") {
		p.Demand = analysis.DemandMetric(f.demand)
	}
	if changed("include") && changed("exclude") {
		return p, &analysis.ParamError{Field: "include", Reason: "--include and --exclude cannot be combined"}
	}
	if changed("include") {
		p.Selected, p.Mode = f.include, analysis.SelectInclude
	}
	if changed("exclude") {
		p.Selected, p.Mode = f.exclude, analysis.SelectExclude
	}
	if changed("min-reviews") {
		p.MinReviews = f.minReviews
	}
	if changed("min-ccu") {
		p.MinPeakCCU = f.minCCU
	}
	if changed("top") {
		p.TopK = f.top
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}
