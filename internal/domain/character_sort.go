package domain

import (
	"net/url"
	"slices"
	"strings"
)

// Query parameter keys carrying the sort state.
const (
	QueryParamOrder   = "order"
	QueryParamOrderBy = "orderBy"
)

// SortDirection represents ordering direction for sortable fields.
type SortDirection string

const (
	SortDirectionAsc  SortDirection = "asc"
	SortDirectionDesc SortDirection = "desc"
)

// CharacterSortField enumerates fields that can be sorted when listing characters.
type CharacterSortField string

const (
	CharacterSortFieldName     CharacterSortField = "name"
	CharacterSortFieldModified CharacterSortField = "modified"
)

// SortDirections lists accepted directions in display order.
var SortDirections = []SortDirection{SortDirectionAsc, SortDirectionDesc}

// CharacterSortFields lists accepted sort fields in display order.
var CharacterSortFields = []CharacterSortField{CharacterSortFieldName, CharacterSortFieldModified}

// ParamSource is a read-only key/value view such as url.Values.
type ParamSource interface {
	Get(key string) string
}

// CharacterSort captures ordering preferences for character listings.
type CharacterSort struct {
	Field     CharacterSortField
	Direction SortDirection
}

// DefaultCharacterSort returns the ordering used when nothing is requested.
func DefaultCharacterSort() CharacterSort {
	return CharacterSort{
		Field:     CharacterSortFieldName,
		Direction: SortDirectionAsc,
	}
}

// ParseSortDirection returns the direction named by raw, or asc.
func ParseSortDirection(raw string) SortDirection {
	switch SortDirection(raw) {
	case SortDirectionAsc, SortDirectionDesc:
		return SortDirection(raw)
	}
	return SortDirectionAsc
}

// ParseCharacterSortField returns the field named by raw, or name.
func ParseCharacterSortField(raw string) CharacterSortField {
	switch CharacterSortField(raw) {
	case CharacterSortFieldName, CharacterSortFieldModified:
		return CharacterSortField(raw)
	}
	return CharacterSortFieldName
}

// ParseCharacterSort reads orderBy and order from params. Missing or unknown
// values fall back to the defaults; it never fails.
func ParseCharacterSort(params ParamSource) CharacterSort {
	if params == nil {
		return DefaultCharacterSort()
	}
	return CharacterSort{
		Field:     ParseCharacterSortField(params.Get(QueryParamOrderBy)),
		Direction: ParseSortDirection(params.Get(QueryParamOrder)),
	}
}

// Values encodes the sort state as query parameters.
func (s CharacterSort) Values() url.Values {
	values := url.Values{}
	values.Set(QueryParamOrderBy, string(ParseCharacterSortField(string(s.Field))))
	values.Set(QueryParamOrder, string(ParseSortDirection(string(s.Direction))))
	return values
}

// SortCharacters returns a stably sorted copy of characters. The input slice
// is not modified.
func SortCharacters(characters []Character, s CharacterSort) []Character {
	sorted := make([]Character, len(characters))
	copy(sorted, characters)

	compare := compareByName
	if ParseCharacterSortField(string(s.Field)) == CharacterSortFieldModified {
		compare = compareByModified
	}
	desc := s.Direction == SortDirectionDesc

	slices.SortStableFunc(sorted, func(a, b Character) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return sorted
}

func compareByName(a, b Character) int {
	return strings.Compare(a.Name, b.Name)
}

func compareByModified(a, b Character) int {
	return a.Modified.Compare(b.Modified)
}
