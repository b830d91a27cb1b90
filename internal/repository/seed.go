package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rpattn/marvel/internal/domain"
)

type seedFile struct {
	Characters []domain.Character `yaml:"characters"`
}

// ParseSeed decodes a YAML document with a top level "characters" list.
func ParseSeed(r io.Reader) ([]domain.Character, error) {
	var file seedFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Character{}, nil
		}
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Characters))
	for i, c := range file.Characters {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			return nil, fmt.Errorf("seed character %d has no id", i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("seed character id %q is duplicated", id)
		}
		seen[id] = struct{}{}
		file.Characters[i].ID = id
	}
	if file.Characters == nil {
		return []domain.Character{}, nil
	}
	return file.Characters, nil
}

// LoadSeedFile reads the seed file at path and upserts every character into repo.
func LoadSeedFile(ctx context.Context, repo CharacterRepository, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	characters, err := ParseSeed(f)
	if err != nil {
		return 0, err
	}
	for _, c := range characters {
		if _, err := repo.Upsert(ctx, c); err != nil {
			return 0, fmt.Errorf("failed to seed character %s: %w", c.ID, err)
		}
	}
	return len(characters), nil
}
