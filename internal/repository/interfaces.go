package repository

import (
	"context"
	"errors"

	"github.com/rpattn/marvel/internal/domain"
)

// ErrNotFound is returned when a character does not exist.
var ErrNotFound = errors.New("character not found")

// CharacterRepository defines the interface for character operations
type CharacterRepository interface {
	List(ctx context.Context) ([]domain.Character, error)
	GetByID(ctx context.Context, id string) (domain.Character, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Character, error)
	Upsert(ctx context.Context, character domain.Character) (domain.Character, error)
	Count(ctx context.Context) (int64, error)
}
