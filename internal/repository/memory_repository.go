package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/rpattn/marvel/internal/domain"
)

// MemoryCharacterRepository keeps characters in process memory.
type MemoryCharacterRepository struct {
	mu         sync.RWMutex
	characters map[string]domain.Character
}

// NewMemoryCharacterRepository creates a repository holding the given characters
func NewMemoryCharacterRepository(characters ...domain.Character) *MemoryCharacterRepository {
	repo := &MemoryCharacterRepository{characters: make(map[string]domain.Character, len(characters))}
	for _, c := range characters {
		repo.characters[c.ID] = c
	}
	return repo
}

func (r *MemoryCharacterRepository) List(ctx context.Context) ([]domain.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	characters := make([]domain.Character, 0, len(r.characters))
	for _, c := range r.characters {
		characters = append(characters, c)
	}
	sort.Slice(characters, func(i, j int) bool {
		return characters[i].ID < characters[j].ID
	})
	return characters, nil
}

func (r *MemoryCharacterRepository) GetByID(ctx context.Context, id string) (domain.Character, error) {
	if err := ctx.Err(); err != nil {
		return domain.Character{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.characters[id]
	if !ok {
		return domain.Character{}, ErrNotFound
	}
	return c, nil
}

func (r *MemoryCharacterRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	characters := make([]domain.Character, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.characters[id]; ok {
			characters = append(characters, c)
		}
	}
	return characters, nil
}

func (r *MemoryCharacterRepository) Upsert(ctx context.Context, character domain.Character) (domain.Character, error) {
	if err := ctx.Err(); err != nil {
		return domain.Character{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.characters[character.ID] = character
	return character, nil
}

func (r *MemoryCharacterRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.characters)), nil
}
