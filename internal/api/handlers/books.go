package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/NikhilTirunagiri/GMUBookSwap/internal/identity"
	"github.com/NikhilTirunagiri/GMUBookSwap/internal/metrics"
	"github.com/NikhilTirunagiri/GMUBookSwap/internal/store"
	domain "github.com/NikhilTirunagiri/GMUBookSwap/pkg/types"
)

// BooksHandler handles book listing CRUD endpoints. Reads are public;
// mutations require a bearer token and enforce listing ownership.
type BooksHandler struct {
	store    store.Store
	identity identity.Gateway
}

// NewBooksHandler creates a new BooksHandler.
func NewBooksHandler(s store.Store, gw identity.Gateway) *BooksHandler {
	return &BooksHandler{store: s, identity: gw}
}

// --- Input/Output types ---

// BookPayload is the request body shared by create and update.
type BookPayload struct {
	Title        string  `json:"title"                   minLength:"1" maxLength:"500"  doc:"Listing title"`
	Author       string  `json:"author,omitempty"                      maxLength:"300"  doc:"Author name"`
	ISBN         string  `json:"isbn,omitempty"                        maxLength:"20"   doc:"ISBN, 10 or 13 digits, hyphens allowed"`
	Genre        string  `json:"genre,omitempty"                       maxLength:"100"  doc:"Genre or subject"`
	MaterialType string  `json:"material_type,omitempty" enum:"book,journal,article"    doc:"Kind of material"`
	TradeType    string  `json:"trade_type,omitempty"    enum:"buy,trade,borrow"        doc:"How the listing changes hands"`
	Price        float64 `json:"price"                   minimum:"0"                    doc:"Asking price in USD"`
	Condition    string  `json:"condition,omitempty"                   maxLength:"200"  doc:"Physical condition"`
	Description  string  `json:"description,omitempty"                 maxLength:"5000" doc:"Free-form description"`
	ImageURL     string  `json:"image_url,omitempty"                   maxLength:"2000" doc:"External image URL"`
	SellerName   string  `json:"seller_name"             minLength:"1" maxLength:"200"  doc:"Seller display name"`
	SellerEmail  string  `json:"seller_email"            pattern:"^[a-zA-Z0-9._%+-]+@gmu\.edu$" doc:"Seller GMU email"`
}

// Resolve normalizes the ISBN and rejects inline image payloads after
// schema validation has run.
func (p *BookPayload) Resolve(_ huma.Context) []error {
	var errs []error

	isbn, err := domain.NormalizeISBN(p.ISBN)
	if err != nil {
		errs = append(errs, &huma.ErrorDetail{
			Message:  err.Error(),
			Location: "body.isbn",
			Value:    p.ISBN,
		})
	} else {
		p.ISBN = isbn
	}

	if err := domain.ValidateImageURL(p.ImageURL); err != nil {
		errs = append(errs, &huma.ErrorDetail{
			Message:  err.Error(),
			Location: "body.image_url",
			Value:    p.ImageURL,
		})
	}

	return errs
}

func (p *BookPayload) toListing() *domain.Listing {
	return &domain.Listing{
		Title:        p.Title,
		Author:       p.Author,
		ISBN:         p.ISBN,
		Genre:        p.Genre,
		MaterialType: domain.MaterialType(p.MaterialType),
		TradeType:    domain.TradeType(p.TradeType),
		Price:        p.Price,
		Condition:    p.Condition,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		SellerName:   p.SellerName,
		SellerEmail:  p.SellerEmail,
	}
}

// ListBooksInput is the input for listing books with optional filters.
type ListBooksInput struct {
	MaterialType string `query:"material_type" doc:"Filter by material type"          enum:"book,journal,article,"`
	TradeType    string `query:"trade_type"    doc:"Filter by trade type"             enum:"buy,trade,borrow,"`
	Seller       string `query:"seller"        doc:"Filter by seller email"`
	Limit        int    `query:"limit"         doc:"Number of results (default all)"  minimum:"1" maximum:"500"`
	Offset       int    `query:"offset"        doc:"Pagination offset"                minimum:"0"`
}

// ListBooksOutput is the response for listing books.
type ListBooksOutput struct {
	Body struct {
		Books []domain.Listing `json:"books"`
		Total int              `json:"total"`
	}
}

// GetBookInput is the input for getting a single book.
type GetBookInput struct {
	ID string `path:"id" doc:"Book UUID"`
}

// GetBookOutput is the response for getting a single book.
type GetBookOutput struct {
	Body domain.Listing
}

// CreateBookInput is the input for creating a book listing.
type CreateBookInput struct {
	Authorization string `header:"Authorization" doc:"Bearer access token"`
	Body          BookPayload
}

// CreateBookOutput is the response for creating a book listing.
type CreateBookOutput struct {
	Body domain.Listing
}

// UpdateBookInput is the input for updating a book listing. The body is
// the same full payload as create.
type UpdateBookInput struct {
	ID            string `path:"id" doc:"Book UUID"`
	Authorization string `header:"Authorization" doc:"Bearer access token"`
	Body          BookPayload
}

// UpdateBookOutput is the response for updating a book listing.
type UpdateBookOutput struct {
	Body domain.Listing
}

// DeleteBookInput is the input for deleting a book listing.
type DeleteBookInput struct {
	ID            string `path:"id" doc:"Book UUID"`
	Authorization string `header:"Authorization" doc:"Bearer access token"`
}

// DeleteBookOutput is the response for deleting a book listing.
type DeleteBookOutput struct {
	Body struct {
		Message string `json:"message"`
		ID      string `json:"id"`
	}
}

// --- Handlers ---

// ListBooks returns book listings, newest first. No authentication
// required. With no limit the full catalog is returned; browsing clients
// filter and page locally.
func (h *BooksHandler) ListBooks(
	ctx context.Context,
	input *ListBooksInput,
) (*ListBooksOutput, error) {
	q := &store.ListingQuery{
		Limit:  input.Limit,
		Offset: input.Offset,
	}

	if input.MaterialType != "" {
		q.MaterialType = &input.MaterialType
	}

	if input.TradeType != "" {
		q.TradeType = &input.TradeType
	}

	if input.Seller != "" {
		q.Seller = &input.Seller
	}

	books, total, err := h.store.ListListings(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("Error fetching books: " + err.Error())
	}

	if books == nil {
		books = []domain.Listing{}
	}

	resp := &ListBooksOutput{}
	resp.Body.Books = books
	resp.Body.Total = total

	return resp, nil
}

// GetBook returns a single book by ID. No authentication required.
func (h *BooksHandler) GetBook(
	ctx context.Context,
	input *GetBookInput,
) (*GetBookOutput, error) {
	book, err := h.store.GetListing(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("Book not found")
		}
		return nil, huma.Error500InternalServerError("Error fetching book: " + err.Error())
	}

	return &GetBookOutput{Body: *book}, nil
}

// CreateBook creates a new listing. The seller email on the payload must
// be the caller's own address.
func (h *BooksHandler) CreateBook(
	ctx context.Context,
	input *CreateBookInput,
) (*CreateBookOutput, error) {
	user, _, err := authenticate(ctx, h.identity, input.Authorization)
	if err != nil {
		return nil, err
	}

	if input.Body.SellerEmail != user.Email {
		return nil, huma.Error403Forbidden("You can only create listings with your own email address")
	}

	if !strings.HasSuffix(input.Body.SellerEmail, "@gmu.edu") {
		return nil, huma.Error400BadRequest("Only GMU email addresses are allowed")
	}

	book := input.Body.toListing()
	if err := h.store.CreateListing(ctx, book); err != nil {
		return nil, huma.Error500InternalServerError("Error creating book: " + err.Error())
	}

	metrics.ListingsCreatedTotal.Inc()

	return &CreateBookOutput{Body: *book}, nil
}

// UpdateBook replaces a listing with the given payload. Only the owner
// may update, and the seller email can never change.
func (h *BooksHandler) UpdateBook(
	ctx context.Context,
	input *UpdateBookInput,
) (*UpdateBookOutput, error) {
	user, _, err := authenticate(ctx, h.identity, input.Authorization)
	if err != nil {
		return nil, err
	}

	existing, err := h.store.GetListing(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("Book not found")
		}
		return nil, huma.Error500InternalServerError("Error updating book: " + err.Error())
	}

	if existing.SellerEmail != user.Email {
		return nil, huma.Error403Forbidden("You can only update your own listings")
	}

	if input.Body.SellerEmail != user.Email {
		return nil, huma.Error403Forbidden("You cannot change the seller email")
	}

	book := input.Body.toListing()
	book.ID = existing.ID
	book.CreatedAt = existing.CreatedAt

	if err := h.store.UpdateListing(ctx, book); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("Book not found")
		}
		return nil, huma.Error500InternalServerError("Error updating book: " + err.Error())
	}

	metrics.ListingsUpdatedTotal.Inc()

	return &UpdateBookOutput{Body: *book}, nil
}

// DeleteBook removes a listing. Only the owner may delete.
func (h *BooksHandler) DeleteBook(
	ctx context.Context,
	input *DeleteBookInput,
) (*DeleteBookOutput, error) {
	user, _, err := authenticate(ctx, h.identity, input.Authorization)
	if err != nil {
		return nil, err
	}

	existing, err := h.store.GetListing(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("Book not found")
		}
		return nil, huma.Error500InternalServerError("Error deleting book: " + err.Error())
	}

	if existing.SellerEmail != user.Email {
		return nil, huma.Error403Forbidden("You can only delete your own listings")
	}

	if err := h.store.DeleteListing(ctx, input.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("Book not found")
		}
		return nil, huma.Error500InternalServerError("Error deleting book: " + err.Error())
	}

	metrics.ListingsDeletedTotal.Inc()

	resp := &DeleteBookOutput{}
	resp.Body.Message = "Book deleted successfully"
	resp.Body.ID = input.ID

	return resp, nil
}

// RegisterBookRoutes registers book endpoints with the Huma API.
func RegisterBookRoutes(api huma.API, h *BooksHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-books",
		Method:      http.MethodGet,
		Path:        "/books/",
		Summary:     "List books",
		Description: "Returns book listings, newest first, with optional material, trade, and seller filters.",
		Tags:        []string{"Books"},
	}, h.ListBooks)

	huma.Register(api, huma.Operation{
		OperationID: "get-book",
		Method:      http.MethodGet,
		Path:        "/books/{id}",
		Summary:     "Get a book by ID",
		Description: "Returns a single book listing by its UUID.",
		Tags:        []string{"Books"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetBook)

	huma.Register(api, huma.Operation{
		OperationID: "create-book",
		Method:      http.MethodPost,
		Path:        "/books/",
		Summary:     "Create a book listing",
		Description: "Creates a listing owned by the authenticated seller.",
		Tags:        []string{"Books"},
		Errors: []int{
			http.StatusBadRequest,
			http.StatusUnauthorized,
			http.StatusForbidden,
		},
	}, h.CreateBook)

	huma.Register(api, huma.Operation{
		OperationID: "update-book",
		Method:      http.MethodPut,
		Path:        "/books/{id}",
		Summary:     "Update a book listing",
		Description: "Replaces a listing with the given payload. Owner only.",
		Tags:        []string{"Books"},
		Errors: []int{
			http.StatusUnauthorized,
			http.StatusForbidden,
			http.StatusNotFound,
		},
	}, h.UpdateBook)

	huma.Register(api, huma.Operation{
		OperationID: "delete-book",
		Method:      http.MethodDelete,
		Path:        "/books/{id}",
		Summary:     "Delete a book listing",
		Description: "Deletes a listing. Owner only.",
		Tags:        []string{"Books"},
		Errors: []int{
			http.StatusUnauthorized,
			http.StatusForbidden,
			http.StatusNotFound,
		},
	}, h.DeleteBook)
}
