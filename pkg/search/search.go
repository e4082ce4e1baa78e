// Package search implements the catalog query engine: the
// keyword/kind filter, sort, and pagination stages applied to an
// in-memory listing set fetched fresh for each query.
package search

import (
	"sort"
	"strings"

	domain "github.com/NikhilTirunagiri/GMUBookSwap/pkg/types"
)

// Scope selects which listing fields the keyword term is matched
// against.
type Scope string

// Scope constants. ScopeAny matches the term as a substring of any of
// title, author, ISBN or genre regardless of the match condition.
const (
	ScopeAny    Scope = "any"
	ScopeTitle  Scope = "title"
	ScopeAuthor Scope = "author"
	ScopeGenre  Scope = "genre"
	ScopeISBN   Scope = "isbn"
)

// Valid reports whether s is a known scope.
func (s Scope) Valid() bool {
	switch s {
	case ScopeAny, ScopeTitle, ScopeAuthor, ScopeGenre, ScopeISBN:
		return true
	}
	return false
}

// Match selects how the term is compared against a single scoped field.
//
// MatchExact is presented to users as "Contains exact phrase" but
// performs whole-field case-insensitive equality, not phrase
// containment. That mismatch is long-standing observable behavior and
// is kept as is.
type Match string

// Match constants.
const (
	MatchContains Match = "contains"
	MatchExact    Match = "exact"
)

// Valid reports whether m is a known match condition.
func (m Match) Valid() bool {
	return m == MatchContains || m == MatchExact
}

// Sort orders the filtered result set.
type Sort string

// Sort constants. SortRelevance performs no reordering; the result
// keeps whatever order the catalog returned.
const (
	SortRelevance Sort = "relevance"
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
)

// Valid reports whether s is a known sort key.
func (s Sort) Valid() bool {
	switch s {
	case SortRelevance, SortNewest, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

// Query captures one full request against the catalog. Zero values for
// Term, Scope, Match, Kind and Sort mean: match everything, scope any,
// condition contains, relevance order. A PageSize of 0 disables
// pagination and returns the whole filtered set; when paginating, pages
// start at 1 and out-of-range pages (including values below 1) come
// back empty with Total intact.
type Query struct {
	Term     string
	Scope    Scope
	Match    Match
	Kind     domain.MaterialType
	Sort     Sort
	Page     int
	PageSize int
}

// Result is one page of the filtered catalog.
type Result struct {
	Items []domain.Listing
	// Total counts the filtered set before pagination, so it is the
	// same for every page of the same query.
	Total int
	Page  int
}

// Run applies the query stages in order: material-kind filter, keyword
// filter, sort, pagination. The input slice is never reordered or
// mutated.
func Run(listings []domain.Listing, q Query) Result {
	term := strings.TrimSpace(q.Term)

	filtered := make([]domain.Listing, 0, len(listings))
	for i := range listings {
		if !q.matches(&listings[i], term) {
			continue
		}
		filtered = append(filtered, listings[i])
	}

	sortListings(filtered, q.Sort)

	total := len(filtered)
	items := filtered
	if q.PageSize > 0 {
		start := (q.Page - 1) * q.PageSize
		if start < 0 || start >= total {
			items = []domain.Listing{}
		} else {
			end := start + q.PageSize
			if end > total {
				end = total
			}
			items = filtered[start:end]
		}
	}

	return Result{Items: items, Total: total, Page: q.Page}
}

func (q *Query) matches(l *domain.Listing, term string) bool {
	if q.Kind != "" && l.MaterialType != q.Kind {
		return false
	}
	if term == "" {
		return true
	}
	return q.matchKeyword(l, strings.ToLower(term))
}

func (q *Query) matchKeyword(l *domain.Listing, term string) bool {
	scope := q.Scope
	if scope == "" {
		scope = ScopeAny
	}

	if scope == ScopeAny {
		for _, field := range []string{l.Title, l.Author, l.ISBN, l.Genre} {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	}

	var field string
	switch scope {
	case ScopeTitle:
		field = l.Title
	case ScopeAuthor:
		field = l.Author
	case ScopeGenre:
		field = l.Genre
	case ScopeISBN:
		field = l.ISBN
	}
	field = strings.ToLower(field)

	if q.Match == MatchExact {
		return field == term
	}
	return strings.Contains(field, term)
}

// sortListings reorders in place. Sorting is stable so listings that
// compare equal keep their input order.
func sortListings(listings []domain.Listing, key Sort) {
	switch key {
	case SortNewest:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].CreatedAt.After(listings[j].CreatedAt)
		})
	case SortPriceAsc:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Price < listings[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Price > listings[j].Price
		})
	}
}
