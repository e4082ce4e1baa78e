package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NikhilTirunagiri/GMUBookSwap/internal/metrics"
	domain "github.com/NikhilTirunagiri/GMUBookSwap/pkg/types"
)

// PostgresStore implements Store using pgxpool (connection-pooled
// PostgreSQL). Its methods require live Postgres and are covered by the
// integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
// A non-positive maxConns keeps the pgxpool default.
func NewPostgresStore(ctx context.Context, connString string, maxConns int32) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// CreateListing inserts a listing and fills in its generated ID and
// timestamps.
func (s *PostgresStore) CreateListing(ctx context.Context, l *domain.Listing) error {
	args := pgx.NamedArgs{
		"title":         l.Title,
		"author":        l.Author,
		"isbn":          l.ISBN,
		"genre":         l.Genre,
		"condition":     l.Condition,
		"description":   l.Description,
		"material_type": string(l.MaterialType),
		"trade_type":    string(l.TradeType),
		"price":         l.Price,
		"image_url":     l.ImageURL,
		"seller_name":   l.SellerName,
		"seller_email":  l.SellerEmail,
	}

	err := s.pool.QueryRow(ctx, queryCreateListing, args).Scan(
		&l.ID, &l.CreatedAt, &l.UpdatedAt,
	)
	observe("create", err)
	if err != nil {
		return fmt.Errorf("inserting listing: %w", err)
	}
	return nil
}

// GetListing retrieves a listing by its UUID.
func (s *PostgresStore) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	l := &domain.Listing{}
	err := scanListing(s.pool.QueryRow(ctx, queryGetListing, id), l)
	if errors.Is(err, pgx.ErrNoRows) {
		err = ErrNotFound
	}
	observe("get", err)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying listing: %w", err)
	}
	return l, nil
}

// ListListings queries listings with optional filters, returning
// results and the total count of matching rows.
func (s *PostgresStore) ListListings(
	ctx context.Context,
	opts *ListingQuery,
) ([]domain.Listing, int, error) {
	dataSQL, countSQL, args := opts.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		observe("list", err)
		return nil, 0, fmt.Errorf("counting listings: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		observe("list", err)
		return nil, 0, fmt.Errorf("querying listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := scanListing(rows, &l); err != nil {
			observe("list", err)
			return nil, 0, fmt.Errorf("scanning listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		observe("list", err)
		return nil, 0, fmt.Errorf("iterating listings: %w", err)
	}

	observe("list", nil)
	return listings, total, nil
}

// UpdateListing replaces all caller-editable fields of a listing and
// refreshes its updated timestamp. The seller email is deliberately
// absent from the update set: ownership never transfers.
func (s *PostgresStore) UpdateListing(ctx context.Context, l *domain.Listing) error {
	args := pgx.NamedArgs{
		"id":            l.ID,
		"title":         l.Title,
		"author":        l.Author,
		"isbn":          l.ISBN,
		"genre":         l.Genre,
		"condition":     l.Condition,
		"description":   l.Description,
		"material_type": string(l.MaterialType),
		"trade_type":    string(l.TradeType),
		"price":         l.Price,
		"image_url":     l.ImageURL,
		"seller_name":   l.SellerName,
	}

	err := s.pool.QueryRow(ctx, queryUpdateListing, args).Scan(&l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		err = ErrNotFound
	}
	observe("update", err)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("updating listing: %w", err)
	}
	return nil
}

// DeleteListing removes a listing by its UUID.
func (s *PostgresStore) DeleteListing(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, queryDeleteListing, id)
	if err == nil && tag.RowsAffected() == 0 {
		err = ErrNotFound
	}
	observe("delete", err)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting listing: %w", err)
	}
	return nil
}

// observe records one query outcome. Not-found is a routine outcome,
// tracked separately from real failures.
func observe(op string, err error) {
	outcome := "success"
	switch {
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	metrics.StoreQueriesTotal.WithLabelValues(op, outcome).Inc()
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

// scanListing scans a full listing row.
func scanListing(row scannable, l *domain.Listing) error {
	return row.Scan(
		&l.ID, &l.Title, &l.Author, &l.ISBN, &l.Genre,
		&l.Condition, &l.Description,
		&l.MaterialType, &l.TradeType, &l.Price, &l.ImageURL,
		&l.SellerName, &l.SellerEmail, &l.CreatedAt, &l.UpdatedAt,
	)
}
