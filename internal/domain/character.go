package domain

import "time"

// Character represents a single Marvel character as loaded for listing.
type Character struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description"`
	Modified    time.Time `json:"modified" yaml:"modified"`
}
