package services

import (
	"testing"

	"github.com/caawww/data-vis/models"
	"github.com/caawww/data-vis/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

func TestCleanerParseNumber(t *testing.T) {
	tests := []struct {
		raw   string
		want  float64
		valid bool
	}{
		{"120", 120, true},
		{"$19.99", 19.99, true},
		{"1,234", 1234, true},
		{" 0 ", 0, true},
		{"", 0, false},
		{"free", 0, false},
	}

	for _, tt := range tests {
		got := parseNumber(tt.raw)
		if got.Valid != tt.valid || got.Float64 != tt.want {
			t.Errorf("parseNumber(%q) = (%.2f, %v); want (%.2f, %v)", tt.raw, got.Float64, got.Valid, tt.want, tt.valid)
		}
	}
}

func TestCleanerParseYear(t *testing.T) {
	tests := []struct {
		raw   string
		want  int64
		valid bool
	}{
		{"Oct 21, 2008", 2008, true},
		{"October 21, 2008", 2008, true},
		{"Aug 2020", 2020, true},
		{"2019-03-01", 2019, true},
		{"  Jan  5,  2017 ", 2017, true},
		{"coming soon", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got := parseYear(tt.raw)
		if got.Valid != tt.valid || got.Int64 != tt.want {
			t.Errorf("parseYear(%q) = (%d, %v); want (%d, %v)", tt.raw, got.Int64, got.Valid, tt.want, tt.valid)
		}
	}
}

func TestCleanerDropsInvalidAppID(t *testing.T) {
	c := NewCleaner(newTestLogger(), nil)
	raw := []*models.RawGame{
		{AppID: "", Name: "No ID"},
		{AppID: "abc", Name: "Bad ID"},
		{AppID: "10", Name: "Has ID"},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Errorf("expected 1 game after dropping invalid AppIDs, got %d", len(cleaned))
	}
}

func TestCleanerDeduplicatesAppID(t *testing.T) {
	c := NewCleaner(newTestLogger(), nil)
	raw := []*models.RawGame{
		{AppID: "10", Name: "A"},
		{AppID: " 10 ", Name: "B"},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Fatalf("expected 1 game after deduplication, got %d", len(cleaned))
	}
	if cleaned[0].Name != "A" {
		t.Errorf("kept name: got %q, want %q", cleaned[0].Name, "A")
	}
}

func TestCleanerDerivedFields(t *testing.T) {
	c := NewCleaner(newTestLogger(), nil)
	raw := []*models.RawGame{{
		AppID:           "20",
		Name:            "  Space   Game ",
		ReleaseDate:     "Mar 3, 2021",
		EstimatedOwners: "50000 - 100000",
		Positive:        "75",
		Negative:        "25",
		Price:           "n/a",
		RequiredAge:     "",
		Tags:            " open world, RPG ,rpg",
	}}

	g := c.Clean(raw)[0]
	if g.Name != "Space Game" {
		t.Errorf("name: got %q, want %q", g.Name, "Space Game")
	}
	if !g.ReleaseYear.Valid || g.ReleaseYear.Int64 != 2021 {
		t.Errorf("release year: got %+v, want 2021", g.ReleaseYear)
	}
	if g.TotalReviews != 100 {
		t.Errorf("total reviews: got %.0f, want 100", g.TotalReviews)
	}
	if g.ReviewRatio != 0.75 {
		t.Errorf("review ratio: got %.2f, want 0.75", g.ReviewRatio)
	}
	if !g.OwnerTier.Valid || g.OwnerTier.Int64 != 3 {
		t.Errorf("owner tier: got %+v, want 3", g.OwnerTier)
	}
	if !g.Price.Valid || g.Price.Float64 != 0 {
		t.Errorf("price: got %+v, want defaulted 0", g.Price)
	}
	if g.RequiredAge.Valid {
		t.Errorf("required age: got %+v, want absent", g.RequiredAge)
	}
	if g.Tags != "Open World,Rpg,Rpg" {
		t.Errorf("tags: got %q, want %q", g.Tags, "Open World,Rpg,Rpg")
	}
}

func TestCleanerZeroReviewsRatio(t *testing.T) {
	c := NewCleaner(newTestLogger(), nil)
	g := c.Clean([]*models.RawGame{{AppID: "1"}})[0]
	if g.TotalReviews != 0 || g.ReviewRatio != 0 {
		t.Errorf("zero reviews: got total %.0f ratio %.2f, want 0 and 0", g.TotalReviews, g.ReviewRatio)
	}
	if g.ReleaseYear.Valid {
		t.Errorf("release year: got %+v, want absent", g.ReleaseYear)
	}
}

func TestCleanerOwnerTierFallback(t *testing.T) {
	c := NewCleaner(newTestLogger(), nil)
	cleaned := c.Clean([]*models.RawGame{
		{AppID: "1", EstimatedOwners: "lots"},
		{AppID: "2", EstimatedOwners: ""},
		{AppID: "3", EstimatedOwners: "100000000 - 200000000"},
	})

	if got := cleaned[0].OwnerTier; !got.Valid || got.Int64 != 1 {
		t.Errorf("unknown bracket: got %+v, want tier 1", got)
	}
	if got := cleaned[1].OwnerTier; got.Valid {
		t.Errorf("empty bracket: got %+v, want absent", got)
	}
	if got := cleaned[2].OwnerTier; got.Int64 != 13 {
		t.Errorf("top bracket: got %d, want 13", got.Int64)
	}
}
