package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/NikhilTirunagiri/GMUBookSwap/pkg/types"
)

func catalog() []domain.Listing {
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	return []domain.Listing{
		{
			ID:           "b1",
			Title:        "Calculus: Early Transcendentals",
			Author:       "James Stewart",
			ISBN:         "9781285741550",
			Genre:        "Mathematics",
			MaterialType: domain.MaterialBook,
			Price:        45.99,
			CreatedAt:    base,
		},
		{
			ID:           "b2",
			Title:        "Linear Algebra Done Right",
			Author:       "Sheldon Axler",
			ISBN:         "9783319110790",
			Genre:        "Mathematics",
			MaterialType: domain.MaterialBook,
			Price:        32.50,
			CreatedAt:    base.Add(24 * time.Hour),
		},
		{
			ID:           "b3",
			Title:        "IEEE Spectrum March 2026",
			Author:       "IEEE",
			Genre:        "Engineering",
			MaterialType: domain.MaterialJournal,
			Price:        5.00,
			CreatedAt:    base.Add(48 * time.Hour),
		},
		{
			ID:           "b4",
			Title:        "Introduction to Algorithms",
			Author:       "Thomas H. Cormen",
			ISBN:         "9780262046305",
			Genre:        "Computer Science",
			MaterialType: domain.MaterialBook,
			Price:        80.00,
			CreatedAt:    base.Add(72 * time.Hour),
		},
	}
}

func ids(items []domain.Listing) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func TestRun_ScopeAny(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"matches genre", "math", []string{"b1", "b2"}},
		{"matches author", "stewart", []string{"b1"}},
		{"matches isbn", "9780262", []string{"b4"}},
		{"matches title", "spectrum", []string{"b3"}},
		{"case insensitive", "CALCULUS", []string{"b1"}},
		{"no match", "organic chemistry", []string{}},
		{"empty term matches all", "", []string{"b1", "b2", "b3", "b4"}},
		{"blank term matches all", "   ", []string{"b1", "b2", "b3", "b4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := Run(catalog(), Query{Term: tt.term, Scope: ScopeAny})
			assert.Equal(t, tt.want, ids(res.Items))
			assert.Equal(t, len(tt.want), res.Total)
		})
	}
}

func TestRun_ScopedMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "title contains",
			query: Query{Term: "algebra", Scope: ScopeTitle, Match: MatchContains},
			want:  []string{"b2"},
		},
		{
			name:  "author contains",
			query: Query{Term: "cormen", Scope: ScopeAuthor, Match: MatchContains},
			want:  []string{"b4"},
		},
		{
			name:  "genre contains",
			query: Query{Term: "computer", Scope: ScopeGenre, Match: MatchContains},
			want:  []string{"b4"},
		},
		{
			name:  "isbn contains",
			query: Query{Term: "331911", Scope: ScopeISBN, Match: MatchContains},
			want:  []string{"b2"},
		},
		{
			// The exact condition is whole-field equality, so a term
			// that is merely a prefix of the title must not match.
			name:  "title exact rejects substring",
			query: Query{Term: "calculus", Scope: ScopeTitle, Match: MatchExact},
			want:  []string{},
		},
		{
			name:  "title exact matches whole field",
			query: Query{Term: "linear algebra done right", Scope: ScopeTitle, Match: MatchExact},
			want:  []string{"b2"},
		},
		{
			name:  "isbn exact",
			query: Query{Term: "9781285741550", Scope: ScopeISBN, Match: MatchExact},
			want:  []string{"b1"},
		},
		{
			name:  "scoped term missing from field",
			query: Query{Term: "stewart", Scope: ScopeTitle, Match: MatchContains},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := Run(catalog(), tt.query)
			assert.Equal(t, tt.want, ids(res.Items))
		})
	}
}

func TestRun_KindFilter(t *testing.T) {
	t.Parallel()

	res := Run(catalog(), Query{Kind: domain.MaterialJournal})
	assert.Equal(t, []string{"b3"}, ids(res.Items))

	// Kind filter combines with the keyword filter.
	res = Run(catalog(), Query{Term: "math", Scope: ScopeAny, Kind: domain.MaterialJournal})
	assert.Empty(t, res.Items)
	assert.Zero(t, res.Total)
}

func TestRun_Sorts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sort Sort
		want []string
	}{
		{"relevance keeps input order", SortRelevance, []string{"b1", "b2", "b3", "b4"}},
		{"zero value keeps input order", "", []string{"b1", "b2", "b3", "b4"}},
		{"newest first", SortNewest, []string{"b4", "b3", "b2", "b1"}},
		{"price ascending", SortPriceAsc, []string{"b3", "b2", "b1", "b4"}},
		{"price descending", SortPriceDesc, []string{"b4", "b1", "b2", "b3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := Run(catalog(), Query{Sort: tt.sort})
			assert.Equal(t, tt.want, ids(res.Items))
		})
	}
}

func TestRun_PriceSortsAreReversals(t *testing.T) {
	t.Parallel()

	asc := Run(catalog(), Query{Sort: SortPriceAsc})
	desc := Run(catalog(), Query{Sort: SortPriceDesc})

	require.Equal(t, len(asc.Items), len(desc.Items))
	for i := range asc.Items {
		assert.Equal(t, asc.Items[i].ID, desc.Items[len(desc.Items)-1-i].ID)
	}
}

func TestRun_SortIsStable(t *testing.T) {
	t.Parallel()

	listings := []domain.Listing{
		{ID: "x1", Price: 10},
		{ID: "x2", Price: 10},
		{ID: "x3", Price: 5},
	}

	res := Run(listings, Query{Sort: SortPriceAsc})
	assert.Equal(t, []string{"x3", "x1", "x2"}, ids(res.Items), "equal prices must keep input order")
}

func TestRun_InputNotMutated(t *testing.T) {
	t.Parallel()

	listings := catalog()
	Run(listings, Query{Sort: SortPriceDesc})
	assert.Equal(t, []string{"b1", "b2", "b3", "b4"}, ids(listings))
}

func TestRun_Pagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		page      int
		pageSize  int
		wantIDs   []string
		wantTotal int
		wantPage  int
	}{
		{"first page", 1, 2, []string{"b1", "b2"}, 4, 1},
		{"second page", 2, 2, []string{"b3", "b4"}, 4, 2},
		{"short last page", 2, 3, []string{"b4"}, 4, 2},
		{"out of range page is empty", 5, 2, []string{}, 4, 5},
		{"page below one is empty", 0, 2, []string{}, 4, 0},
		{"zero page size returns everything", 1, 0, []string{"b1", "b2", "b3", "b4"}, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := Run(catalog(), Query{Page: tt.page, PageSize: tt.pageSize})
			assert.Equal(t, tt.wantIDs, ids(res.Items))
			assert.Equal(t, tt.wantTotal, res.Total)
			assert.Equal(t, tt.wantPage, res.Page)
		})
	}
}

func TestRun_PaginationIsIdempotent(t *testing.T) {
	t.Parallel()

	q := Query{Term: "math", Scope: ScopeAny, Sort: SortPriceAsc, Page: 1, PageSize: 1}
	first := Run(catalog(), q)
	second := Run(catalog(), q)
	assert.Equal(t, first, second)
}

func TestRun_CalculusScenario(t *testing.T) {
	t.Parallel()

	listings := []domain.Listing{
		{ID: "c1", Title: "Calculus", Price: 50},
		{ID: "c2", Title: "Calculus II", Price: 30},
	}

	both := Run(listings, Query{Term: "calc", Scope: ScopeAny})
	require.Equal(t, 2, both.Total)

	res := Run(listings, Query{
		Term:     "calc",
		Scope:    ScopeAny,
		Sort:     SortPriceAsc,
		Page:     1,
		PageSize: 1,
	})
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "c2", res.Items[0].ID)
	assert.Equal(t, 30.0, res.Items[0].Price)
}

func TestScopeMatchSortValid(t *testing.T) {
	t.Parallel()

	for _, s := range []Scope{ScopeAny, ScopeTitle, ScopeAuthor, ScopeGenre, ScopeISBN} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Scope("publisher").Valid())

	assert.True(t, MatchContains.Valid())
	assert.True(t, MatchExact.Valid())
	assert.False(t, Match("fuzzy").Valid())

	for _, s := range []Sort{SortRelevance, SortNewest, SortPriceAsc, SortPriceDesc} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Sort("title-asc").Valid())
}
