package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/NikhilTirunagiri/GMUBookSwap/pkg/types"
)

func TestNormalizeISBN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "empty", raw: "", want: ""},
		{name: "whitespace only", raw: "   ", want: ""},
		{name: "ten digits", raw: "0306406152", want: "0306406152"},
		{name: "thirteen digits", raw: "9780306406157", want: "9780306406157"},
		{name: "hyphenated", raw: "978-0-306-40615-7", want: "9780306406157"},
		{name: "spaced", raw: "978 0306 406157", want: "9780306406157"},
		{name: "surrounding whitespace", raw: " 0306406152 ", want: "0306406152"},
		{name: "eleven digits", raw: "03064061521", wantErr: true},
		{name: "letters", raw: "03064O6152", wantErr: true},
		{name: "isbn-10 with check X", raw: "080442957X", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := domain.NormalizeISBN(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrBadISBN)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateImageURL(t *testing.T) {
	t.Parallel()

	assert.NoError(t, domain.ValidateImageURL(""))
	assert.NoError(t, domain.ValidateImageURL("https://cdn.example.edu/covers/calc.jpg"))
	assert.ErrorIs(t, domain.ValidateImageURL("data:image/png;base64,iVBORw0KGgo="), domain.ErrInlineImage)
}

func TestValidSellerEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email string
		want  bool
	}{
		{"jdoe2@gmu.edu", true},
		{"first.last@gmu.edu", true},
		{"j+swap@gmu.edu", true},
		{"jdoe2@masonlive.gmu.edu", false},
		{"jdoe2@gmail.com", false},
		{"@gmu.edu", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, domain.ValidSellerEmail(tt.email))
		})
	}
}

func TestMaterialAndTradeTypeValid(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.MaterialBook.Valid())
	assert.True(t, domain.MaterialJournal.Valid())
	assert.True(t, domain.MaterialArticle.Valid())
	assert.False(t, domain.MaterialType("textbook").Valid())
	assert.False(t, domain.MaterialType("").Valid())

	assert.True(t, domain.TradeBuy.Valid())
	assert.True(t, domain.TradeTrade.Valid())
	assert.True(t, domain.TradeBorrow.Valid())
	assert.False(t, domain.TradeType("rent").Valid())
}

func TestListingCartEntry(t *testing.T) {
	t.Parallel()

	l := &domain.Listing{
		ID:          "b1f6c3a2",
		Title:       "Calculus",
		Author:      "Stewart",
		Price:       49.99,
		ImageURL:    "https://cdn.example.edu/covers/calc.jpg",
		TradeType:   domain.TradeBuy,
		SellerName:  "Jane Doe",
		SellerEmail: "jdoe2@gmu.edu",
		Genre:       "Mathematics",
	}

	e := l.CartEntry()
	assert.Equal(t, l.ID, e.ID)
	assert.Equal(t, l.Title, e.Title)
	assert.Equal(t, l.Author, e.Author)
	require.NotNil(t, e.Price)
	assert.InDelta(t, 49.99, *e.Price, 0.001)
	assert.Equal(t, l.SellerEmail, e.SellerEmail)

	// The projection must not alias the listing's price.
	l.Price = 10
	assert.InDelta(t, 49.99, *e.Price, 0.001)
}
