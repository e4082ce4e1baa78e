package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	domain "github.com/NikhilTirunagiri/GMUBookSwap/pkg/types"
)

// BooksResponse wraps the catalog listing response.
type BooksResponse struct {
	Books []domain.Listing `json:"books"`
	Total int              `json:"total"`
}

// ListBooksParams defines optional filters for the catalog query. The
// zero value fetches the full catalog, which is how browsing clients
// use it: everything comes down once and is filtered locally.
type ListBooksParams struct {
	MaterialType string
	TradeType    string
	Seller       string
	Limit        int
	Offset       int
}

// BookRequest is the create/update payload for a listing.
type BookRequest struct {
	Title        string  `json:"title"`
	Author       string  `json:"author,omitempty"`
	ISBN         string  `json:"isbn,omitempty"`
	Genre        string  `json:"genre,omitempty"`
	MaterialType string  `json:"material_type,omitempty"`
	TradeType    string  `json:"trade_type,omitempty"`
	Price        float64 `json:"price"`
	Condition    string  `json:"condition,omitempty"`
	Description  string  `json:"description,omitempty"`
	ImageURL     string  `json:"image_url,omitempty"`
	SellerName   string  `json:"seller_name"`
	SellerEmail  string  `json:"seller_email"`
}

// ListBooks returns listings matching the given parameters. A nil
// params fetches everything.
func (c *Client) ListBooks(
	ctx context.Context,
	params *ListBooksParams,
) (*BooksResponse, error) {
	q := url.Values{}
	if params != nil {
		if params.MaterialType != "" {
			q.Set("material_type", params.MaterialType)
		}
		if params.TradeType != "" {
			q.Set("trade_type", params.TradeType)
		}
		if params.Seller != "" {
			q.Set("seller", params.Seller)
		}
		if params.Limit > 0 {
			q.Set("limit", strconv.Itoa(params.Limit))
		}
		if params.Offset > 0 {
			q.Set("offset", strconv.Itoa(params.Offset))
		}
	}

	path := "/books/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp BooksResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetBook returns a single listing by ID.
func (c *Client) GetBook(ctx context.Context, id string) (*domain.Listing, error) {
	var l domain.Listing
	if err := c.get(ctx, fmt.Sprintf("/books/%s", id), &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateBook creates a listing owned by the authenticated user.
func (c *Client) CreateBook(ctx context.Context, book *BookRequest) (*domain.Listing, error) {
	var l domain.Listing
	if err := c.post(ctx, "/books/", book, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateBook replaces a listing with the given payload.
func (c *Client) UpdateBook(
	ctx context.Context,
	id string,
	book *BookRequest,
) (*domain.Listing, error) {
	var l domain.Listing
	if err := c.put(ctx, fmt.Sprintf("/books/%s", id), book, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// DeleteBook deletes a listing owned by the authenticated user.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.del(ctx, fmt.Sprintf("/books/%s", id), nil)
}
