// Package contact composes mailto URLs for reaching a listing's
// seller from the cart or a listing view.
package contact

import (
	"fmt"
	"net/url"
	"strings"

	domain "github.com/NikhilTirunagiri/GMUBookSwap/pkg/types"
)

// Mailto builds a mailto URL addressed to sellerEmail, with a subject
// referencing the listing title and a short inquiry body. Spaces are
// encoded as %20 rather than + so mail clients render them correctly.
func Mailto(sellerEmail, sellerName, title string) string {
	greeting := "Hi,"
	if sellerName != "" {
		greeting = fmt.Sprintf("Hi %s,", sellerName)
	}

	subject := fmt.Sprintf("Interested in %q on GMU BookSwap", title)
	body := fmt.Sprintf(
		"%s\n\nI found your listing %q on GMU BookSwap and I'm interested. Is it still available?\n\nThanks!",
		greeting, title,
	)

	q := url.Values{}
	q.Set("subject", subject)
	q.Set("body", body)
	query := strings.ReplaceAll(q.Encode(), "+", "%20")

	return "mailto:" + sellerEmail + "?" + query
}

// ForEntry composes the contact URL for a cart entry.
func ForEntry(e domain.CartEntry) string {
	return Mailto(e.SellerEmail, e.SellerName, e.Title)
}

// ForListing composes the contact URL for a listing.
func ForListing(l *domain.Listing) string {
	return Mailto(l.SellerEmail, l.SellerName, l.Title)
}
