package analysis

import (
	"fmt"

	"github.com/caawww/data-vis/models"
)

type gameOpt func(*models.Game)

func withYear(y int) gameOpt { return func(g *models.Game) { g.ReleaseYear = models.Year(y) } }

func withPrice(p float64) gameOpt { return func(g *models.Game) { g.Price = models.Num(p) } }

func withCCU(c float64) gameOpt { return func(g *models.Game) { g.PeakCCU = models.Num(c) } }

func withRatio(r float64) gameOpt { return func(g *models.Game) { g.ReviewRatio = r } }

func withTier(t int64) gameOpt {
	return func(g *models.Game) {
		g.OwnerTier.Int64 = t
		g.OwnerTier.Valid = true
	}
}

func withReviews(pos, neg float64) gameOpt {
	return func(g *models.Game) {
		g.Positive = models.Num(pos)
		g.Negative = models.Num(neg)
		g.TotalReviews = pos + neg
		if g.TotalReviews > 0 {
			g.ReviewRatio = pos / g.TotalReviews
		}
	}
}

func withGenres(s string) gameOpt { return func(g *models.Game) { g.Genres = s } }

func newGame(id int64, tags string, opts ...gameOpt) *models.Game {
	g := &models.Game{AppID: id, Name: fmt.Sprintf("Game %d", id), Tags: tags}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// snapshot copies every game so tests can check inputs were left untouched.
func snapshot(games []*models.Game) []models.Game {
	out := make([]models.Game, len(games))
	for i, g := range games {
		out[i] = *g
	}
	return out
}

// fiveGames is the worked example: labels {A,A,B},{A},{B,C},{C},{}.
func fiveGames() []*models.Game {
	return []*models.Game{
		newGame(1, "A,A,B"),
		newGame(2, "A"),
		newGame(3, "B,C"),
		newGame(4, "C"),
		newGame(5, ""),
	}
}
