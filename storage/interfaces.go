package storage

import (
	"context"

	"github.com/caawww/data-vis/models"
)

// RawGameReader yields catalog rows as text, before cleaning.
type RawGameReader interface {
	ReadRaw() ([]*models.RawGame, error)
}

// GameWriter is the interface any catalog backend must satisfy.
type GameWriter interface {
	Write(ctx context.Context, games []*models.Game) error
	Close() error
}

// GameSource returns an already cleaned catalog.
type GameSource interface {
	FetchAll(ctx context.Context) ([]*models.Game, error)
}
