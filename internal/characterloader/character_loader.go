package characterloader

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader"

	"github.com/rpattn/marvel/internal/domain"
	"github.com/rpattn/marvel/internal/repository"
)

// CharacterLoader batches character lookups by ID.
type CharacterLoader struct {
	Loader *dataloader.Loader
}

// NewCharacterLoader batches GetByIDs calls; opts are applied after the defaults.
func NewCharacterLoader(repo repository.CharacterRepository, opts ...dataloader.Option) *CharacterLoader {
	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		ids := keys.Keys()

		characters, err := repo.GetByIDs(ctx, ids)
		if err != nil {
			results := make([]*dataloader.Result, len(keys))
			for i := range results {
				results[i] = &dataloader.Result{Error: err}
			}
			return results
		}

		byID := make(map[string]domain.Character, len(characters))
		for _, c := range characters {
			byID[c.ID] = c
		}

		// Build results in the same order as keys
		results := make([]*dataloader.Result, len(keys))
		for i, id := range ids {
			if c, ok := byID[id]; ok {
				results[i] = &dataloader.Result{Data: c}
			} else {
				results[i] = &dataloader.Result{Data: nil}
			}
		}
		return results
	}

	options := append([]dataloader.Option{dataloader.WithWait(5 * time.Millisecond)}, opts...)
	loader := dataloader.NewBatchedLoader(batchFn, options...)

	return &CharacterLoader{Loader: loader}
}

// Load returns the character with id, or repository.ErrNotFound.
func (l *CharacterLoader) Load(ctx context.Context, id string) (domain.Character, error) {
	data, err := l.Loader.Load(ctx, dataloader.StringKey(id))()
	if err != nil {
		return domain.Character{}, err
	}
	c, ok := data.(domain.Character)
	if !ok {
		return domain.Character{}, repository.ErrNotFound
	}
	return c, nil
}
