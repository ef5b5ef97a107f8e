package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caawww/data-vis/analysis"
	"github.com/caawww/data-vis/labels"
	"github.com/caawww/data-vis/models"
	"github.com/caawww/data-vis/utils"
)

// CoLabelRows is how many co-labels a label report keeps.
const CoLabelRows = 10

// InsightService turns a cleaned catalog into printable reports.
type InsightService struct {
	logger         *utils.Logger
	maxConcurrency int
}

func NewInsightService(logger *utils.Logger, maxConcurrency int) *InsightService {
	return &InsightService{logger: logger, maxConcurrency: maxConcurrency}
}

// Overview builds the label table, gaps and ranking tables for p.
func (s *InsightService) Overview(catalog []*models.Game, p analysis.Params) (*models.OverviewReport, error) {
	stats, err := analysis.BuildLabelStats(catalog, p)
	if err != nil {
		return nil, err
	}
	filtered := analysis.FilterLowData(analysis.FilterYears(catalog, p.YearFrom, p.YearTo), p.MinReviews, p.MinPeakCCU)
	gaps := analysis.AnalyzeGaps(stats)

	report := &models.OverviewReport{
		RunID:         uuid.NewString(),
		GeneratedAt:   time.Now(),
		Dimension:     p.Dimension,
		DemandTitle:   p.Demand.Title(),
		Method:        string(p.Method),
		TotalGames:    len(catalog),
		FilteredGames: len(filtered),
		YearFrom:      p.YearFrom,
		YearTo:        p.YearTo,
		UniqueLabels:  len(analysis.AllLabels(filtered, p.Dimension)),
		Stats:         stats,
		Gaps:          gaps,
		TopSupply:     analysis.TopBySupply(gaps, p.TopK),
		TopDemand:     analysis.TopByDemand(gaps, p.TopK),
		OverSupplied:  analysis.OverSupplied(gaps, p.TopK),
		UnderServed:   analysis.UnderServed(gaps, p.TopK),
	}

	log := s.logger.With("run_id", report.RunID)
	if len(stats) == 0 {
		log.Warn("[insights] No %s label has %d+ games in %d-%d", p.Dimension, p.MinGamesPerLabel, p.YearFrom, p.YearTo)
	}
	log.Info("[insights] Overview: %d/%d games, %d labels ranked",
		report.FilteredGames, report.TotalGames, len(stats))
	return report, nil
}

// Label builds the drill-down report of one label.
func (s *InsightService) Label(catalog []*models.Game, dim models.Dimension, label string) (*models.LabelReport, error) {
	subset, err := analysis.WithLabel(catalog, dim, label)
	if err != nil {
		return nil, err
	}
	profile := analysis.Profile(subset, label)
	co, err := analysis.CoOccurrences(subset, dim, label)
	if err != nil {
		return nil, err
	}
	years := analysis.YearlyComparison(subset, catalog, analysis.DefaultYearMetrics)

	games := make([]*models.Game, len(subset))
	copy(games, subset)
	sort.SliceStable(games, func(i, j int) bool {
		a, _ := games[i].Metric(models.MetricPeakCCU)
		b, _ := games[j].Metric(models.MetricPeakCCU)
		return a > b
	})

	report := &models.LabelReport{
		RunID:      uuid.NewString(),
		Dimension:  dim,
		Profile:    profile,
		CoLabels:   co.Head(CoLabelRows),
		YearsLabel: years.Filtered.Buckets,
		YearsAll:   years.All.Buckets,
		Games:      games,
	}
	s.logger.With("run_id", report.RunID).Debug("[insights] Label %q: %d games, %d co-labels", profile.Label, profile.Games, len(co.Records))
	return report, nil
}

// Labels builds one report per label on the worker pool. Reports keep the
// order of names; the first failure aborts the rest.
func (s *InsightService) Labels(ctx context.Context, catalog []*models.Game, dim models.Dimension, names []string) ([]*models.LabelReport, error) {
	reports := make([]*models.LabelReport, len(names))
	pool := utils.NewWorkerPool(ctx, s.maxConcurrency)
	for i, name := range names {
		i, name := i, name // per-iteration copies; go.mod targets go1.21
		pool.Submit(func(ctx context.Context) error {
			r, err := s.Label(catalog, dim, name)
			if err != nil {
				return fmt.Errorf("label %q: %w", name, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Intersect counts exact label combinations. With a single label the
// subset is that label's games and the combinations are taken against its
// most frequent co-labels; with several, the whole catalog is matched
// against exactly those labels.
func (s *InsightService) Intersect(catalog []*models.Game, dim models.Dimension, chosen []string, minItems int) (*models.IntersectionReport, error) {
	subset := catalog
	cols := chosen
	focal := ""

	switch len(chosen) {
	case 0:
		return nil, &analysis.ParamError{Field: "labels", Reason: "at least one label is required"}
	case 1:
		var err error
		subset, err = analysis.WithLabel(catalog, dim, chosen[0])
		if err != nil {
			return nil, err
		}
		focal = labels.Token(chosen[0])
		others := analysis.TopLabels(subset, dim, analysis.MaxIntersectionLabels-1, focal)
		if len(others) == 0 {
			s.logger.Warn("[insights] No game carrying %s has another %s label", focal, dim)
			return &models.IntersectionReport{
				RunID:        uuid.NewString(),
				Dimension:    dim,
				Focal:        focal,
				Labels:       []string{focal},
				LabelTotals:  []int{len(subset)},
				Items:        len(subset),
				MinItems:     minItems,
				Insufficient: true,
				NoCoLabels:   true,
			}, nil
		}
		cols = append([]string{focal}, others...)
	default:
		for _, l := range chosen {
			if _, err := analysis.WithLabel(catalog, dim, l); err != nil {
				return nil, err
			}
		}
	}

	m, err := analysis.BuildMembership(subset, dim, cols, minItems)
	if err != nil {
		return nil, err
	}
	report := &models.IntersectionReport{
		RunID:        uuid.NewString(),
		Dimension:    dim,
		Focal:        focal,
		Labels:       m.Labels,
		LabelTotals:  m.LabelTotals(),
		Combos:       m.Intersections(),
		Items:        m.Items,
		MinItems:     m.MinItems,
		Insufficient: m.Insufficient,
	}
	if m.Insufficient {
		s.logger.With("run_id", report.RunID).Warn("[insights] Only %d games for %s, need %d for intersections",
			m.Items, strings.Join(m.Labels, ", "), m.MinItems)
	}
	return report, nil
}

// ============================================================================
// RENDERING
// ============================================================================

const (
	colReset   = "\033[0m"
	colBold    = "\033[1m"
	colTitle   = "\033[1;35m"
	colSection = "\033[1;33m"
	colGood    = "\033[1;32m"
	colBad     = "\033[1;31m"
)

type printer struct {
	w    io.Writer
	sep  string
	thin string
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, sep: strings.Repeat("═", 72), thin: strings.Repeat("─", 72)}
}

func (p *printer) title(text string) {
	fmt.Fprintf(p.w, "\n%s%s%s\n", colTitle, p.sep, colReset)
	fmt.Fprintf(p.w, "%s  %s%s\n", colTitle, text, colReset)
	fmt.Fprintf(p.w, "%s%s%s\n\n", colTitle, p.sep, colReset)
}

func (p *printer) section(text string) {
	fmt.Fprintf(p.w, "%s  %s%s\n", colSection, text, colReset)
	fmt.Fprintf(p.w, "  %s\n", p.thin)
}

func (p *printer) end() {
	fmt.Fprintf(p.w, "\n%s%s%s\n\n", colTitle, p.sep, colReset)
}

// PrintOverview renders an overview report.
func (s *InsightService) PrintOverview(w io.Writer, r *models.OverviewReport) {
	p := newPrinter(w)
	p.title(fmt.Sprintf("📊 STEAM %s OVERVIEW", strings.ToUpper(string(r.Dimension))))

	p.section("Overview")
	fmt.Fprintf(w, "  Total games     : %s%d%s\n", colBold, r.TotalGames, colReset)
	fmt.Fprintf(w, "  Filtered games  : %s%d%s (%.1f%%)\n", colBold, r.FilteredGames, colReset, r.FilteredShare())
	fmt.Fprintf(w, "  Time period     : %d - %d\n", r.YearFrom, r.YearTo)
	fmt.Fprintf(w, "  Unique %-8s : %d\n", strings.ToLower(string(r.Dimension)), r.UniqueLabels)
	fmt.Fprintf(w, "  Demand          : %s (%s)\n", r.DemandTitle, r.Method)
	fmt.Fprintln(w)

	p.section(fmt.Sprintf("%s by game count", r.Dimension))
	if len(r.Stats) == 0 {
		fmt.Fprintf(w, "  No label meets the minimum game count\n")
	} else {
		fmt.Fprintf(w, "  %-28s %7s %7s %10s %7s %7s %10s\n", "Label", "Games", "All", "Demand", "Ratio", "Pooled", "Peak CCU")
		for _, st := range r.Stats {
			fmt.Fprintf(w, "  %-28s %7d %7d %10.2f %6.1f%% %6.1f%% %10.1f\n",
				truncate(st.Label, 28), st.GameCount, st.TotalCount, st.Demand,
				st.AvgReviewRatio*100, st.PooledReviewRatio*100, st.PeakCCU)
		}
	}
	fmt.Fprintln(w)

	printRanking(p, fmt.Sprintf("Top %d by supply (games)", len(r.TopSupply)), r.TopSupply, func(g models.GapRecord) string {
		return fmt.Sprintf("%.0f games", g.Supply)
	})
	printRanking(p, fmt.Sprintf("Top %d by demand", len(r.TopDemand)), r.TopDemand, func(g models.GapRecord) string {
		return fmt.Sprintf("%.2f", g.Demand)
	})
	printRanking(p, "Over-supplied (supply rank > demand rank)", r.OverSupplied, gapCell)
	printRanking(p, "Under-served (demand rank > supply rank)", r.UnderServed, gapCell)
	p.end()
}

// PrintGaps renders every gap record, most over-supplied first.
func (s *InsightService) PrintGaps(w io.Writer, r *models.OverviewReport) {
	p := newPrinter(w)
	p.title(fmt.Sprintf("📈 SUPPLY VS DEMAND: %s", strings.ToUpper(string(r.Dimension))))
	p.section(fmt.Sprintf("Demand: %s (%s)", r.DemandTitle, r.Method))
	if len(r.Gaps) == 0 {
		fmt.Fprintf(w, "  No label meets the minimum game count\n")
		p.end()
		return
	}
	fmt.Fprintf(w, "  %-28s %7s %10s %6s %6s %5s %8s\n", "Label", "Supply", "Demand", "S.rank", "D.rank", "Gap", "Bubble")
	for _, g := range analysis.OverSupplied(r.Gaps, -1) {
		fmt.Fprintf(w, "  %-28s %7.0f %10.2f %6d %6d %s %8.2f\n",
			truncate(g.Label, 28), g.Supply, g.Demand, g.SupplyRank, g.DemandRank, gapCell(g), g.BubbleSize)
	}
	p.end()
}

func printRanking(p *printer, heading string, records []models.GapRecord, cell func(models.GapRecord) string) {
	p.section(heading)
	if len(records) == 0 {
		fmt.Fprintf(p.w, "  Nothing to rank\n")
	}
	for i, g := range records {
		fmt.Fprintf(p.w, "  %s%2d.%s %-30s %s\n", colBold, i+1, colReset, truncate(g.Label, 30), cell(g))
	}
	fmt.Fprintln(p.w)
}

func gapCell(g models.GapRecord) string {
	switch {
	case g.Gap > 0:
		return fmt.Sprintf("%s%+5d%s", colBad, g.Gap, colReset)
	case g.Gap < 0:
		return fmt.Sprintf("%s%+5d%s", colGood, g.Gap, colReset)
	default:
		return fmt.Sprintf("%5d", 0)
	}
}

// PrintLabel renders a label report.
func (s *InsightService) PrintLabel(w io.Writer, r *models.LabelReport) {
	p := newPrinter(w)
	pr := r.Profile
	p.title(fmt.Sprintf("🎮 %s ANALYSIS: %s", strings.ToUpper(string(r.Dimension)), pr.Label))

	p.section("Profile")
	fmt.Fprintf(w, "  Games with label  : %s%d%s\n", colBold, pr.Games, colReset)
	fmt.Fprintf(w, "  Free to play      : %d\n", pr.FreeToPlay)
	if pr.HasYears {
		fmt.Fprintf(w, "  Active years      : %d-%d\n", pr.FirstYear, pr.LastYear)
	} else {
		fmt.Fprintf(w, "  Active years      : unknown\n")
	}
	fmt.Fprintf(w, "  Review ratio      : avg %.2f | median %.2f\n",
		pr.Mean[models.MetricReviewRatio], pr.Median[models.MetricReviewRatio])
	fmt.Fprintf(w, "  Price             : avg $%.2f | median $%.2f\n",
		pr.Mean[models.MetricPrice], pr.Median[models.MetricPrice])
	fmt.Fprintf(w, "  Achievements      : avg %.2f | median %.0f\n",
		pr.Mean[models.MetricAchievements], pr.Median[models.MetricAchievements])
	fmt.Fprintf(w, "  Age requirement   : avg %.2f | median %.0f\n",
		pr.Mean[models.MetricRequiredAge], pr.Median[models.MetricRequiredAge])
	fmt.Fprintf(w, "  Playtime          : avg %s | median %s\n",
		formatMinutes(pr.AvgPlaytime), formatMinutes(pr.MedianPlaytime))
	fmt.Fprintf(w, "  DLC count         : avg %.2f | median %.0f\n",
		pr.Mean[models.MetricDLCCount], pr.Median[models.MetricDLCCount])
	fmt.Fprintln(w)

	p.section(fmt.Sprintf("Most common %s found with %s", strings.ToLower(string(r.Dimension)), pr.Label))
	if len(r.CoLabels) == 0 {
		fmt.Fprintf(w, "  No co-occurring labels found\n")
	} else {
		fmt.Fprintf(w, "  %-28s %7s %8s %9s %10s\n", "Label", "Games", "Ratio", "Price", "Peak CCU")
		for _, c := range r.CoLabels {
			fmt.Fprintf(w, "  %-28s %7d %8.2f %9.2f %10.1f\n",
				truncate(c.Label, 28), c.Games, c.AvgReviewRatio, c.AvgPrice, c.AvgPeakCCU)
		}
	}
	fmt.Fprintln(w)

	p.section("Releases and review ratio per year (label | all games)")
	all := make(map[int]models.YearBucket, len(r.YearsAll))
	for _, b := range r.YearsAll {
		all[b.Year] = b
	}
	if len(r.YearsLabel) == 0 {
		fmt.Fprintf(w, "  No release years known\n")
	}
	for _, b := range r.YearsLabel {
		a := all[b.Year]
		fmt.Fprintf(w, "  %d  %6d games  ratio %.2f | %6d games  ratio %.2f\n",
			b.Year, b.Games, b.Means[models.MetricReviewRatio], a.Games, a.Means[models.MetricReviewRatio])
	}
	fmt.Fprintln(w)

	p.section("Games by peak CCU")
	for i, g := range r.Games {
		if i == CoLabelRows {
			fmt.Fprintf(w, "  ... and %d more\n", len(r.Games)-CoLabelRows)
			break
		}
		year := "----"
		if g.ReleaseYear.Valid {
			year = fmt.Sprintf("%d", g.ReleaseYear.Int64)
		}
		fmt.Fprintf(w, "  %s%2d.%s %-36s %s %10.0f CCU  $%6.2f  %8.0f reviews  %s\n",
			colBold, i+1, colReset, truncate(g.Name, 36), year,
			g.PeakCCU.Float64, g.Price.Float64, g.TotalReviews, g.EstimatedOwners)
	}
	p.end()
}

// PrintIntersection renders an intersection report.
func (s *InsightService) PrintIntersection(w io.Writer, r *models.IntersectionReport) {
	p := newPrinter(w)
	p.title(fmt.Sprintf("🔗 %s INTERSECTIONS", strings.ToUpper(string(r.Dimension))))

	if r.NoCoLabels {
		fmt.Fprintf(w, "  None of the %d games carrying %s has another label\n", r.Items, r.Focal)
		p.end()
		return
	}
	if r.Insufficient {
		fmt.Fprintf(w, "  Not enough data: %d games, at least %d needed\n", r.Items, r.MinItems)
		p.end()
		return
	}

	p.section("Label totals")
	for j, l := range r.Labels {
		fmt.Fprintf(w, "  %-30s %d\n", truncate(l, 30), r.LabelTotals[j])
	}
	fmt.Fprintln(w)

	p.section("Exact combinations")
	if len(r.Combos) == 0 {
		fmt.Fprintf(w, "  No game carries any of the labels\n")
	}
	peak := 0
	for _, c := range r.Combos {
		if c.Games > peak {
			peak = c.Games
		}
	}
	for _, c := range r.Combos {
		width := 1
		if peak > 0 {
			width = c.Games * 30 / peak
		}
		if width < 1 {
			width = 1
		}
		fmt.Fprintf(w, "  %-48s %s (%d)\n",
			truncate(strings.Join(c.Labels, " + "), 48), strings.Repeat("█", width), c.Games)
	}
	p.end()
}

// formatMinutes renders minutes as XhYYm.
func formatMinutes(m float64) string {
	total := int(m + 0.5)
	return fmt.Sprintf("%dh%02dm", total/60, total%60)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
