package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/caawww/data-vis/analysis"
	"github.com/caawww/data-vis/models"
	"github.com/caawww/data-vis/utils"
)

func sampleGames() []*models.Game {
	mk := func(id int64, year int, tags string, pos, neg, ccu, price float64, tier int64) *models.Game {
		g := &models.Game{
			AppID:       id,
			Name:        fmt.Sprintf("Game %d", id),
			ReleaseYear: models.Year(year),
			Positive:    models.Num(pos),
			Negative:    models.Num(neg),
			PeakCCU:     models.Num(ccu),
			Price:       models.Num(price),
			Tags:        tags,
		}
		g.TotalReviews = pos + neg
		if g.TotalReviews > 0 {
			g.ReviewRatio = pos / g.TotalReviews
		}
		g.OwnerTier.Int64, g.OwnerTier.Valid = tier, true
		return g
	}
	return []*models.Game{
		mk(1, 2018, "Indie,Rpg", 90, 10, 500, 0, 3),
		mk(2, 2019, "Indie,Puzzle", 40, 10, 20, 5, 1),
		mk(3, 2019, "Rpg,Action", 800, 200, 9000, 30, 8),
		mk(4, 2020, "Indie,Rpg,Action", 10, 0, 80, 10, 2),
		mk(5, 2012, "Indie", 1, 1, 1, 0, 1),
	}
}

func overviewParams() analysis.Params {
	p := analysis.DefaultParams()
	p.YearFrom, p.YearTo = 2015, 2025
	p.MinGamesPerLabel = 1
	p.TopK = 2
	return p
}

func TestInsightOverviewCounts(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 2)
	r, err := svc.Overview(sampleGames(), overviewParams())
	if err != nil {
		t.Fatalf("Overview: unexpected error %v", err)
	}
	if r.TotalGames != 5 {
		t.Errorf("TotalGames: got %d, want 5", r.TotalGames)
	}
	if r.FilteredGames != 4 {
		t.Errorf("FilteredGames: got %d, want 4", r.FilteredGames)
	}
	if r.UniqueLabels != 4 {
		t.Errorf("UniqueLabels: got %d, want 4", r.UniqueLabels)
	}
	if len(r.Stats) != 4 || len(r.Gaps) != 4 {
		t.Errorf("Stats/Gaps: got %d/%d, want 4/4", len(r.Stats), len(r.Gaps))
	}
	if r.RunID == "" {
		t.Error("RunID should be set")
	}
	if r.FilteredShare() != 80 {
		t.Errorf("FilteredShare: got %.1f, want 80", r.FilteredShare())
	}
}

func TestInsightOverviewRankings(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 2)
	r, err := svc.Overview(sampleGames(), overviewParams())
	if err != nil {
		t.Fatalf("Overview: unexpected error %v", err)
	}
	if len(r.TopSupply) != 2 || len(r.TopDemand) != 2 || len(r.OverSupplied) != 2 || len(r.UnderServed) != 2 {
		t.Fatalf("rankings should hold TopK=2 entries")
	}
	if r.TopSupply[0].Label != "Indie" && r.TopSupply[0].Label != "Rpg" {
		t.Errorf("TopSupply[0]: got %q, want Indie or Rpg", r.TopSupply[0].Label)
	}
	for _, g := range r.Gaps {
		if g.Gap != g.SupplyRank-g.DemandRank {
			t.Errorf("gap of %s: got %d, want %d", g.Label, g.Gap, g.SupplyRank-g.DemandRank)
		}
	}
}

func TestInsightOverviewInvalidParams(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 2)
	p := overviewParams()
	p.Method = "mode"
	if _, err := svc.Overview(sampleGames(), p); !errors.Is(err, analysis.ErrInvalidParams) {
		t.Errorf("Overview: got %v, want ErrInvalidParams", err)
	}
}

func TestInsightLabel(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 2)
	r, err := svc.Label(sampleGames(), models.DimensionTags, "rpg")
	if err != nil {
		t.Fatalf("Label: unexpected error %v", err)
	}
	if r.Profile.Games != 3 {
		t.Errorf("Profile.Games: got %d, want 3", r.Profile.Games)
	}
	if r.Games[0].AppID != 3 {
		t.Errorf("first game by peak CCU: got %d, want 3", r.Games[0].AppID)
	}
	if len(r.CoLabels) == 0 || r.CoLabels[0].Label != "Indie" && r.CoLabels[0].Label != "Action" {
		t.Errorf("CoLabels: got %+v", r.CoLabels)
	}
	if len(r.YearsLabel) != 3 || len(r.YearsAll) != 4 {
		t.Errorf("years: got %d label / %d all, want 3 / 4", len(r.YearsLabel), len(r.YearsAll))
	}
}

func TestInsightLabelUnknown(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 2)
	_, err := svc.Label(sampleGames(), models.DimensionTags, "Puzzel")
	if !errors.Is(err, analysis.ErrUnknownLabel) {
		t.Fatalf("Label: got %v, want ErrUnknownLabel", err)
	}
	if !strings.Contains(err.Error(), "Puzzle") {
		t.Errorf("error should suggest Puzzle: %v", err)
	}
}

func TestInsightLabelsKeepsOrder(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 3)
	names := []string{"Puzzle", "Indie", "Action", "Rpg"}
	reports, err := svc.Labels(context.Background(), sampleGames(), models.DimensionTags, names)
	if err != nil {
		t.Fatalf("Labels: unexpected error %v", err)
	}
	for i, name := range names {
		if reports[i].Profile.Label != name {
			t.Errorf("report %d: got %q, want %q", i, reports[i].Profile.Label, name)
		}
	}
}

func TestInsightLabelsFailsFast(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 1)
	_, err := svc.Labels(context.Background(), sampleGames(), models.DimensionTags, []string{"Indie", "Nope"})
	if !errors.Is(err, analysis.ErrUnknownLabel) {
		t.Errorf("Labels: got %v, want ErrUnknownLabel", err)
	}
}

func TestInsightIntersectFocal(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 2)
	r, err := svc.Intersect(sampleGames(), models.DimensionTags, []string{"indie"}, 1)
	if err != nil {
		t.Fatalf("Intersect: unexpected error %v", err)
	}
	if r.Focal != "Indie" || r.Labels[0] != "Indie" {
		t.Errorf("focal: got %q / %v", r.Focal, r.Labels)
	}
	if r.Items != 4 {
		t.Errorf("Items: got %d, want 4", r.Items)
	}
	if r.LabelTotals[0] != 4 {
		t.Errorf("focal total: got %d, want 4", r.LabelTotals[0])
	}
	total := 0
	for _, c := range r.Combos {
		total += c.Games
	}
	if total != 4 {
		t.Errorf("combination counts: got %d, want 4", total)
	}
}

func TestInsightIntersectInsufficient(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 2)
	r, err := svc.Intersect(sampleGames(), models.DimensionTags, []string{"Indie", "Rpg"}, 50)
	if err != nil {
		t.Fatalf("Intersect: unexpected error %v", err)
	}
	if !r.Insufficient {
		t.Error("Insufficient should be set for 5 games and a minimum of 50")
	}
}

func TestInsightIntersectFocalWithoutCoLabels(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 2)
	games := []*models.Game{
		{AppID: 1, Name: "One", Tags: "Solo"},
		{AppID: 2, Name: "Two", Tags: "Solo"},
		{AppID: 3, Name: "Three", Tags: "Other"},
	}
	r, err := svc.Intersect(games, models.DimensionTags, []string{"solo"}, 1)
	if err != nil {
		t.Fatalf("Intersect: a known label without co-labels is not an error, got %v", err)
	}
	if !r.NoCoLabels || !r.Insufficient {
		t.Errorf("flags: got NoCoLabels=%v Insufficient=%v, want both set", r.NoCoLabels, r.Insufficient)
	}
	if r.Focal != "Solo" || r.Items != 2 || len(r.Combos) != 0 {
		t.Errorf("report: got focal %q, %d items, %d combos", r.Focal, r.Items, len(r.Combos))
	}

	var buf bytes.Buffer
	svc.PrintIntersection(&buf, r)
	if !strings.Contains(buf.String(), "None of the 2 games carrying Solo has another label") {
		t.Errorf("output missing no-co-label notice:\n%s", buf.String())
	}
}

func TestInsightLogsCarryRunID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewInsightService(utils.NewLoggerFromCore(core), 2)

	r, err := svc.Overview(sampleGames(), overviewParams())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	entries := logs.FilterField(zap.String("run_id", r.RunID)).All()
	if len(entries) == 0 {
		t.Fatalf("no log entry tagged with run_id %s", r.RunID)
	}
}

func TestInsightIntersectErrors(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 2)
	if _, err := svc.Intersect(sampleGames(), models.DimensionTags, nil, 1); !errors.Is(err, analysis.ErrInvalidParams) {
		t.Errorf("no labels: got %v, want ErrInvalidParams", err)
	}
	if _, err := svc.Intersect(sampleGames(), models.DimensionTags, []string{"Indie", "Nope"}, 1); !errors.Is(err, analysis.ErrUnknownLabel) {
		t.Errorf("unknown label: got %v, want ErrUnknownLabel", err)
	}
}

func TestInsightPrint(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 2)
	games := sampleGames()

	overview, err := svc.Overview(games, overviewParams())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	label, err := svc.Label(games, models.DimensionTags, "Indie")
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	inter, err := svc.Intersect(games, models.DimensionTags, []string{"Indie", "Rpg"}, 1)
	if err != nil {
		t.Fatalf("Intersect: %v", err)
	}

	var buf bytes.Buffer
	svc.PrintOverview(&buf, overview)
	svc.PrintGaps(&buf, overview)
	svc.PrintLabel(&buf, label)
	svc.PrintIntersection(&buf, inter)
	out := buf.String()

	for _, want := range []string{"TAGS OVERVIEW", "Over-supplied", "SUPPLY VS DEMAND", "ANALYSIS: Indie", "Indie + Rpg"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0h00m"},
		{59.6, "1h00m"},
		{125, "2h05m"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.in); got != tt.want {
			t.Errorf("formatMinutes(%.1f) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
