package services

import (
	"database/sql"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/caawww/data-vis/labels"
	"github.com/caawww/data-vis/models"
	"github.com/caawww/data-vis/utils"
)

var (
	// numberRegexp captures the first numeric value, e.g. "$19.99" or "1,234".
	numberRegexp = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

	// releaseLayouts are tried in order; the first that parses wins.
	releaseLayouts = []string{
		"Jan 2, 2006",
		"January 2, 2006",
		"2 Jan, 2006",
		"2 Jan 2006",
		"Jan 2006",
		"January 2006",
		"2006-01-02",
		"2006-01",
		"2006",
	}
)

// Cleaner transforms RawGames into typed, validated Games.
type Cleaner struct {
	logger *utils.Logger
	tiers  models.OwnerTiers
}

// NewCleaner creates a Cleaner with the given logger and owner brackets.
func NewCleaner(logger *utils.Logger, tiers models.OwnerTiers) *Cleaner {
	if len(tiers) == 0 {
		tiers = models.DefaultOwnerTiers
	}
	return &Cleaner{logger: logger, tiers: tiers}
}

// Clean processes raw rows and returns cleaned games. Rows without a
// numeric AppID are dropped; repeated AppIDs keep the first row.
//
// Review counts, peak CCU, playtimes, price and achievements fall back to
// 0 when missing or malformed. Required age and DLC count stay absent
// instead. A missing or unparsable release date leaves the year absent and
// the game in the catalog.
func (c *Cleaner) Clean(raw []*models.RawGame) []*models.Game {
	seen := make(map[int64]struct{})
	result := make([]*models.Game, 0, len(raw))
	var noYear, unknownTier int

	for _, r := range raw {
		if r == nil {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(r.AppID), 10, 64)
		if err != nil {
			c.logger.Warn("[cleaner] Dropping row with invalid AppID %q: %s", r.AppID, r.Name)
			continue
		}
		if _, dup := seen[id]; dup {
			c.logger.Debug("[cleaner] Duplicate AppID skipped: %d", id)
			continue
		}
		seen[id] = struct{}{}

		g := &models.Game{
			AppID:       id,
			Name:        normaliseText(r.Name),
			ReleaseYear: parseYear(r.ReleaseDate),

			Positive:       numberOr(r.Positive, 0),
			Negative:       numberOr(r.Negative, 0),
			PeakCCU:        numberOr(r.PeakCCU, 0),
			Price:          numberOr(r.Price, 0),
			AvgPlaytime:    numberOr(r.AvgPlaytime, 0),
			MedianPlaytime: numberOr(r.MedianPlaytime, 0),
			Achievements:   numberOr(r.Achievements, 0),
			RequiredAge:    parseNumber(r.RequiredAge),
			DLCCount:       parseNumber(r.DLCCount),

			EstimatedOwners: strings.TrimSpace(r.EstimatedOwners),

			Categories: labels.Join(labels.Normalize(r.Categories)),
			Genres:     labels.Join(labels.Normalize(r.Genres)),
			Tags:       labels.Join(labels.Normalize(r.Tags)),

			CreatedAt: time.Now(),
		}
		if !g.ReleaseYear.Valid {
			noYear++
		}

		g.TotalReviews = g.Positive.Float64 + g.Negative.Float64
		if g.TotalReviews > 0 {
			g.ReviewRatio = g.Positive.Float64 / g.TotalReviews
		}

		var fellBack bool
		g.OwnerTier, fellBack = c.ownerTier(g.EstimatedOwners)
		if fellBack {
			unknownTier++
		}

		result = append(result, g)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d games (dropped %d, %d without release year, %d unknown owner brackets)",
		len(raw), len(result), len(raw)-len(result), noYear, unknownTier)
	return result
}

// ownerTier scores an "Estimated owners" bracket. Unknown brackets fall back
// to the lowest tier and report fellBack; an empty value is absent.
func (c *Cleaner) ownerTier(raw string) (tier sql.NullInt64, fellBack bool) {
	if strings.TrimSpace(raw) == "" {
		return sql.NullInt64{}, false
	}
	score, ok := c.tiers.Score(raw)
	if !ok {
		c.logger.Debug("[cleaner] Unknown owner bracket %q scored as tier 1", raw)
		score, fellBack = 1, true
	}
	return sql.NullInt64{Int64: int64(score), Valid: true}, fellBack
}

// parseNumber extracts the first numeric value of raw, ignoring thousands
// separators and currency symbols. It reports absent when none is found.
func parseNumber(raw string) sql.NullFloat64 {
	match := numberRegexp.FindString(strings.ReplaceAll(raw, ",", ""))
	if match == "" {
		return sql.NullFloat64{}
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return models.Num(v)
}

func numberOr(raw string, fallback float64) sql.NullFloat64 {
	if v := parseNumber(raw); v.Valid {
		return v
	}
	return models.Num(fallback)
}

// parseYear extracts the release year from a Steam release date.
// Examples:
//
//	"Oct 21, 2008" → 2008
//	"Aug 2020"     → 2020
//	"coming soon"  → absent
func parseYear(raw string) sql.NullInt64 {
	raw = normaliseText(raw)
	if raw == "" {
		return sql.NullInt64{}
	}
	for _, layout := range releaseLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return models.Year(t.Year())
		}
	}
	return sql.NullInt64{}
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
