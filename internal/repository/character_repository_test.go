package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rpattn/marvel/internal/domain"
)

// stubRow returns fixed values (or an error) from Scan.
type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assignValues(r.values, dest)
}

// stubRows iterates over fixed value tuples.
type stubRows struct {
	rows   [][]any
	idx    int
	closed bool
}

func (r *stubRows) Close()                                       { r.closed = true }
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	return assignValues(r.rows[r.idx-1], dest)
}

func (r *stubRows) Values() ([]any, error) {
	return r.rows[r.idx-1], nil
}

func assignValues(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("expected %d destinations, got %d", len(values), len(dest))
	}
	for i, v := range values {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

type recordedQuery struct {
	sql  string
	args []any
}

// stubQuerier records every statement and answers from canned rows.
type stubQuerier struct {
	queries []recordedQuery
	rows    [][]any
	row     stubRow
	err     error
}

func (q *stubQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.queries = append(q.queries, recordedQuery{sql: sql, args: args})
	if q.err != nil {
		return nil, q.err
	}
	return &stubRows{rows: q.rows}, nil
}

func (q *stubQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.queries = append(q.queries, recordedQuery{sql: sql, args: args})
	return q.row
}

func (q *stubQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.queries = append(q.queries, recordedQuery{sql: sql, args: args})
	return pgconn.CommandTag{}, q.err
}

func TestCharacterRepositoryGetByIDMapsNoRowsToNotFound(t *testing.T) {
	q := &stubQuerier{row: stubRow{err: pgx.ErrNoRows}}
	repo := NewCharacterRepository(q)

	_, err := repo.GetByID(context.Background(), "404")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(q.queries) != 1 || q.queries[0].args[0] != "404" {
		t.Fatalf("unexpected queries %+v", q.queries)
	}
}

func TestCharacterRepositoryGetByIDWrapsOtherErrors(t *testing.T) {
	boom := errors.New("connection reset")
	repo := NewCharacterRepository(&stubQuerier{row: stubRow{err: boom}})

	_, err := repo.GetByID(context.Background(), "1")
	if !errors.Is(err, boom) || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped connection error, got %v", err)
	}
}

func TestCharacterRepositoryGetByIDNormalizesToUTC(t *testing.T) {
	cest := time.FixedZone("CEST", 2*60*60)
	modified := time.Date(2024, 5, 1, 14, 0, 0, 0, cest)
	repo := NewCharacterRepository(&stubQuerier{row: stubRow{values: []any{"1", "Thor", "God of thunder", modified}}})

	got, err := repo.GetByID(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Modified.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %s", got.Modified.Location())
	}
	if !got.Modified.Equal(modified) || got.Modified.Hour() != 12 {
		t.Fatalf("expected 12:00 UTC, got %s", got.Modified)
	}
	if got.Name != "Thor" || got.Description != "God of thunder" {
		t.Fatalf("unexpected character %+v", got)
	}
}

func TestCharacterRepositoryGetByIDsEmptySkipsQuery(t *testing.T) {
	q := &stubQuerier{}
	repo := NewCharacterRepository(q)

	characters, err := repo.GetByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if characters == nil || len(characters) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", characters)
	}
	if len(q.queries) != 0 {
		t.Fatalf("expected no query for empty ids, got %+v", q.queries)
	}
}

func TestCharacterRepositoryGetByIDsPassesIDArray(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	q := &stubQuerier{rows: [][]any{
		{"1", "Thor", "", now},
		{"2", "Captain America", "", now},
	}}
	repo := NewCharacterRepository(q)

	characters, err := repo.GetByIDs(context.Background(), []string{"1", "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(characters) != 2 {
		t.Fatalf("expected 2 characters, got %d", len(characters))
	}
	if !strings.Contains(q.queries[0].sql, "ANY($1)") {
		t.Fatalf("expected ANY($1) lookup, got %q", q.queries[0].sql)
	}
	ids, ok := q.queries[0].args[0].([]string)
	if !ok || len(ids) != 2 {
		t.Fatalf("expected id slice argument, got %#v", q.queries[0].args[0])
	}
}

func TestCharacterRepositoryList(t *testing.T) {
	local := time.FixedZone("EST", -5*60*60)
	q := &stubQuerier{rows: [][]any{
		{"1", "Thor", "", time.Date(2024, 5, 1, 7, 0, 0, 0, local)},
		{"2", "Captain America", "Super soldier", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}
	repo := NewCharacterRepository(q)

	characters, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.Character{
		{ID: "1", Name: "Thor", Modified: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		{ID: "2", Name: "Captain America", Description: "Super soldier", Modified: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	if diff := cmp.Diff(want, characters); diff != "" {
		t.Fatalf("characters mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(q.queries[0].sql, "ORDER BY id") {
		t.Fatalf("expected id ordering, got %q", q.queries[0].sql)
	}
}

func TestCharacterRepositoryListWrapsQueryError(t *testing.T) {
	boom := errors.New("relation does not exist")
	repo := NewCharacterRepository(&stubQuerier{err: boom})

	if _, err := repo.List(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped query error, got %v", err)
	}
}

func TestCharacterRepositoryUpsertReturnsStoredRow(t *testing.T) {
	modified := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	q := &stubQuerier{row: stubRow{values: []any{"1", "Thor Odinson", "", modified}}}
	repo := NewCharacterRepository(q)

	saved, err := repo.Upsert(context.Background(), domain.Character{ID: "1", Name: "Thor Odinson", Modified: modified})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Name != "Thor Odinson" {
		t.Fatalf("unexpected saved character %+v", saved)
	}
	sql := q.queries[0].sql
	if !strings.Contains(sql, "ON CONFLICT (id) DO UPDATE") || !strings.Contains(sql, "RETURNING") {
		t.Fatalf("unexpected upsert statement %q", sql)
	}
	if len(q.queries[0].args) != 4 {
		t.Fatalf("expected 4 arguments, got %d", len(q.queries[0].args))
	}
}

func TestCharacterRepositoryCount(t *testing.T) {
	repo := NewCharacterRepository(&stubQuerier{row: stubRow{values: []any{int64(7)}}})

	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 7 {
		t.Fatalf("expected 7, got %d", count)
	}
}
