// Package domain defines the core business types for GMU BookSwap.
package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// MaterialType classifies the kind of material a listing offers.
type MaterialType string

// Material type constants.
const (
	MaterialBook    MaterialType = "book"
	MaterialJournal MaterialType = "journal"
	MaterialArticle MaterialType = "article"
)

// Valid reports whether t is one of the known material types.
func (t MaterialType) Valid() bool {
	switch t {
	case MaterialBook, MaterialJournal, MaterialArticle:
		return true
	}
	return false
}

// TradeType describes how a listing changes hands.
type TradeType string

// Trade type constants.
const (
	TradeBuy    TradeType = "buy"
	TradeTrade  TradeType = "trade"
	TradeBorrow TradeType = "borrow"
)

// Valid reports whether t is one of the known trade types.
func (t TradeType) Valid() bool {
	switch t {
	case TradeBuy, TradeTrade, TradeBorrow:
		return true
	}
	return false
}

// Listing represents one book or material offered for sale, trade, or borrow.
type Listing struct {
	ID    string `json:"id"               db:"id"`
	Title string `json:"title"            db:"title"`

	// Descriptive
	Author      string `json:"author,omitempty"      db:"author"`
	ISBN        string `json:"isbn,omitempty"        db:"isbn"`
	Genre       string `json:"genre,omitempty"       db:"genre"`
	Condition   string `json:"condition,omitempty"   db:"condition"`
	Description string `json:"description,omitempty" db:"description"`

	// Classification
	MaterialType MaterialType `json:"material_type,omitempty" db:"material_type"`
	TradeType    TradeType    `json:"trade_type,omitempty"    db:"trade_type"`

	// Commercial
	Price float64 `json:"price" db:"price"`

	// Media
	ImageURL string `json:"image_url,omitempty" db:"image_url"`

	// Ownership. SellerEmail never changes after creation; it is the sole
	// authorization key for update and delete.
	SellerName  string `json:"seller_name"  db:"seller_name"`
	SellerEmail string `json:"seller_email" db:"seller_email"`

	// Timestamps, assigned by the store.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CartEntry projects the listing fields a cart needs. A nil Price means the
// listing carried no usable price; totals treat it as zero.
func (l *Listing) CartEntry() CartEntry {
	price := l.Price
	return CartEntry{
		ID:          l.ID,
		Title:       l.Title,
		Author:      l.Author,
		Price:       &price,
		ImageURL:    l.ImageURL,
		TradeType:   l.TradeType,
		SellerName:  l.SellerName,
		SellerEmail: l.SellerEmail,
	}
}

// CartEntry is a lightweight client-side projection of a Listing. Entries are
// unique by listing ID and live only in the local browsing session.
type CartEntry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	TradeType   TradeType `json:"trade_type,omitempty"`
	SellerName  string    `json:"seller_name,omitempty"`
	SellerEmail string    `json:"seller_email,omitempty"`
}

// User is the authenticated marketplace user as reported by the identity
// service.
type User struct {
	ID             string    `json:"user_id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	EmailConfirmed bool      `json:"email_confirmed"`
	CreatedAt      time.Time `json:"created_at"`
}

// TokenPair is the opaque bearer credential pair issued by the identity
// service at login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// sellerEmailPattern is the institutional address pattern a seller identity
// must match.
var sellerEmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@gmu\.edu$`)

// SellerEmailPattern returns the institutional email pattern as a string,
// suitable for schema validation tags.
func SellerEmailPattern() string {
	return sellerEmailPattern.String()
}

// ValidSellerEmail reports whether email is a well-formed institutional
// address.
func ValidSellerEmail(email string) bool {
	return sellerEmailPattern.MatchString(email)
}

// ErrBadISBN is returned by NormalizeISBN for values that are not 10 or 13
// digits after normalization.
var ErrBadISBN = errors.New("ISBN must be 10 or 13 digits")

// NormalizeISBN strips hyphens and spaces from raw and validates the result.
// An empty or blank input normalizes to "" with no error; anything else must
// reduce to exactly 10 or 13 digits.
func NormalizeISBN(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}
	s = strings.NewReplacer("-", "", " ", "").Replace(s)
	if !allDigits(s) || (len(s) != 10 && len(s) != 13) {
		return "", ErrBadISBN
	}
	return s, nil
}

// ErrInlineImage is returned by ValidateImageURL for inline-encoded payloads.
var ErrInlineImage = errors.New("Base64 images not allowed. Please use Supabase Storage.")

// ValidateImageURL rejects inline-encoded image payloads. Image references
// must be external URLs; inline data would grow rows without bound.
func ValidateImageURL(url string) error {
	if strings.HasPrefix(url, "data:image") {
		return ErrInlineImage
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
