package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	domain "github.com/NikhilTirunagiri/GMUBookSwap/pkg/types"
)

// tabWriter wraps tabwriter with error tracking so print helpers can
// chain writes and report the first failure once.
type tabWriter struct {
	w   *tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{w: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (t *tabWriter) writef(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *tabWriter) finish() error {
	if t.err != nil {
		return t.err
	}
	return t.w.Flush()
}

func printBooksTable(books []domain.Listing) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tTITLE\tAUTHOR\tPRICE\tKIND\tTRADE\tSELLER\n")
	for i := range books {
		b := &books[i]
		tw.writef("%s\t%s\t%s\t$%.2f\t%s\t%s\t%s\n",
			b.ID,
			truncate(b.Title, 40),
			truncate(b.Author, 24),
			b.Price,
			b.MaterialType,
			b.TradeType,
			b.SellerEmail,
		)
	}
	return tw.finish()
}

func printBookDetail(b *domain.Listing) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%s\n", b.ID)
	tw.writef("Title:\t%s\n", b.Title)
	if b.Author != "" {
		tw.writef("Author:\t%s\n", b.Author)
	}
	if b.ISBN != "" {
		tw.writef("ISBN:\t%s\n", b.ISBN)
	}
	if b.Genre != "" {
		tw.writef("Genre:\t%s\n", b.Genre)
	}
	if b.Condition != "" {
		tw.writef("Condition:\t%s\n", b.Condition)
	}
	tw.writef("Kind:\t%s\n", b.MaterialType)
	tw.writef("Trade:\t%s\n", b.TradeType)
	tw.writef("Price:\t$%.2f\n", b.Price)
	if b.ImageURL != "" {
		tw.writef("Image:\t%s\n", b.ImageURL)
	}
	tw.writef("Seller:\t%s <%s>\n", b.SellerName, b.SellerEmail)
	tw.writef("Created:\t%s\n", b.CreatedAt.Format(time.RFC3339))
	if b.Description != "" {
		tw.writef("Description:\t%s\n", b.Description)
	}
	return tw.finish()
}

func printCartTable(entries []domain.CartEntry) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tTITLE\tAUTHOR\tPRICE\tTRADE\tSELLER\n")
	for i := range entries {
		e := &entries[i]
		price := "-"
		if e.Price != nil {
			price = fmt.Sprintf("$%.2f", *e.Price)
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			truncate(e.Title, 40),
			truncate(e.Author, 24),
			price,
			e.TradeType,
			e.SellerEmail,
		)
	}
	return tw.finish()
}

func printUserDetail(u *domain.User) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("User ID:\t%s\n", u.ID)
	tw.writef("Email:\t%s\n", u.Email)
	if u.FullName != "" {
		tw.writef("Name:\t%s\n", u.FullName)
	}
	tw.writef("Confirmed:\t%t\n", u.EmailConfirmed)
	if !u.CreatedAt.IsZero() {
		tw.writef("Created:\t%s\n", u.CreatedAt.Format(time.RFC3339))
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
