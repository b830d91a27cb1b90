package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rpattn/marvel/internal/domain"
)

// Querier is the subset of pgxpool.Pool used by the character repository.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const characterColumns = "id, name, description, modified"

// characterRepository implements CharacterRepository on Postgres
type characterRepository struct {
	db Querier
}

// NewCharacterRepository creates a new Postgres backed character repository
func NewCharacterRepository(db Querier) CharacterRepository {
	return &characterRepository{db: db}
}

// List retrieves all characters ordered by id
func (r *characterRepository) List(ctx context.Context) ([]domain.Character, error) {
	rows, err := r.db.Query(ctx, "SELECT "+characterColumns+" FROM characters ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	characters, err := pgx.CollectRows(rows, collectCharacter)
	if err != nil {
		return nil, fmt.Errorf("failed to scan characters: %w", err)
	}
	return characters, nil
}

// GetByID retrieves a character by ID
func (r *characterRepository) GetByID(ctx context.Context, id string) (domain.Character, error) {
	row := r.db.QueryRow(ctx, "SELECT "+characterColumns+" FROM characters WHERE id = $1", id)
	character, err := scanCharacter(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Character{}, ErrNotFound
		}
		return domain.Character{}, fmt.Errorf("failed to get character: %w", err)
	}
	return character, nil
}

// GetByIDs retrieves the characters matching ids; unknown ids are skipped
func (r *characterRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Character, error) {
	if len(ids) == 0 {
		return []domain.Character{}, nil
	}
	rows, err := r.db.Query(ctx, "SELECT "+characterColumns+" FROM characters WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get characters by ids: %w", err)
	}
	characters, err := pgx.CollectRows(rows, collectCharacter)
	if err != nil {
		return nil, fmt.Errorf("failed to scan characters: %w", err)
	}
	return characters, nil
}

// Upsert inserts or replaces a character
func (r *characterRepository) Upsert(ctx context.Context, character domain.Character) (domain.Character, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO characters (id, name, description, modified)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description, modified = EXCLUDED.modified
		RETURNING `+characterColumns,
		character.ID, character.Name, character.Description, character.Modified,
	)
	saved, err := scanCharacter(row)
	if err != nil {
		return domain.Character{}, fmt.Errorf("failed to upsert character: %w", err)
	}
	return saved, nil
}

// Count returns the number of stored characters
func (r *characterRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM characters").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count characters: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func collectCharacter(row pgx.CollectableRow) (domain.Character, error) {
	return scanCharacter(row)
}

func scanCharacter(row rowScanner) (domain.Character, error) {
	var c domain.Character
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Modified); err != nil {
		return domain.Character{}, err
	}
	c.Modified = c.Modified.UTC()
	return c, nil
}
