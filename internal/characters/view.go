package characters

import (
	"fmt"

	"github.com/rpattn/marvel/internal/domain"
)

const (
	// PageHeading is the level-2 heading shown above the list.
	PageHeading = "Marvel Characters"
	// DocumentTitle is the browser title of the characters page.
	DocumentTitle = "Characters | Marvel App"
)

// SelectOption is one entry of a sort control.
type SelectOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// ViewModel is the render-ready projection of a character list and its sort state.
type ViewModel struct {
	Title          string             `json:"title"`
	DocumentTitle  string             `json:"documentTitle"`
	Characters     []domain.Character `json:"characters"`
	Count          int                `json:"count"`
	CountText      string             `json:"countText"`
	Order          string             `json:"order"`
	OrderBy        string             `json:"orderBy"`
	OrderOptions   []SelectOption     `json:"orderOptions"`
	OrderByOptions []SelectOption     `json:"orderByOptions"`
}

var directionLabels = map[domain.SortDirection]string{
	domain.SortDirectionAsc:  "Ascending",
	domain.SortDirectionDesc: "Descending",
}

var fieldLabels = map[domain.CharacterSortField]string{
	domain.CharacterSortFieldName:     "Name",
	domain.CharacterSortFieldModified: "Modified",
}

// Render derives the view for characters under the given sort state.
func Render(characters []domain.Character, sort domain.CharacterSort) ViewModel {
	order := domain.ParseSortDirection(string(sort.Direction))
	orderBy := domain.ParseCharacterSortField(string(sort.Field))
	sort = domain.CharacterSort{Field: orderBy, Direction: order}

	orderOptions := make([]SelectOption, len(domain.SortDirections))
	for i, d := range domain.SortDirections {
		orderOptions[i] = SelectOption{Value: string(d), Label: directionLabels[d], Selected: d == order}
	}
	orderByOptions := make([]SelectOption, len(domain.CharacterSortFields))
	for i, f := range domain.CharacterSortFields {
		orderByOptions[i] = SelectOption{Value: string(f), Label: fieldLabels[f], Selected: f == orderBy}
	}

	return ViewModel{
		Title:          PageHeading,
		DocumentTitle:  DocumentTitle,
		Characters:     domain.SortCharacters(characters, sort),
		Count:          len(characters),
		CountText:      CountText(len(characters)),
		Order:          string(order),
		OrderBy:        string(orderBy),
		OrderOptions:   orderOptions,
		OrderByOptions: orderByOptions,
	}
}

// CountText formats the character count line.
func CountText(count int) string {
	return fmt.Sprintf("There are %d characters", count)
}
