package store

import (
	"fmt"
	"strings"
)

const (
	maxLimit = 500

	orderByCreated = "created_at"
	orderByPrice   = "price"
	orderByTitle   = "title"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	orderByCreated: "created_at DESC",
	orderByPrice:   "price ASC",
	orderByTitle:   "title ASC",
}

const defaultOrderBy = "created_at DESC"

const baseListingsSelect = `SELECT id, title, COALESCE(author, ''), COALESCE(isbn, ''), COALESCE(genre, ''),
	COALESCE(condition, ''), COALESCE(description, ''),
	material_type, trade_type, price, COALESCE(image_url, ''),
	seller_name, seller_email, created_at, updated_at
FROM books`

const countListingsSelect = "SELECT COUNT(*) FROM books"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a
// listing query. It returns two SQL strings (one for the data query,
// one for the count query) and the positional parameters.
//
// A zero Limit omits the LIMIT clause entirely: the catalog endpoint
// returns the full result set by default and clients page locally.
func (q *ListingQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.MaterialType != nil {
		conditions = append(conditions, fmt.Sprintf("material_type = $%d", paramIdx))
		args = append(args, *q.MaterialType)
		paramIdx++
	}

	if q.TradeType != nil {
		conditions = append(conditions, fmt.Sprintf("trade_type = $%d", paramIdx))
		args = append(args, *q.TradeType)
		paramIdx++
	}

	if q.Seller != nil {
		conditions = append(conditions, fmt.Sprintf("seller_email = $%d", paramIdx))
		args = append(args, *q.Seller)
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultOrderBy
	if q.OrderBy != "" {
		if col, ok := validOrderBy[q.OrderBy]; ok {
			orderClause = col
		}
	}

	var limitClause string
	if q.Limit > 0 {
		limitClause = fmt.Sprintf(" LIMIT %d", min(q.Limit, maxLimit))
	}

	var offsetClause string
	if q.Offset > 0 {
		offsetClause = fmt.Sprintf(" OFFSET %d", q.Offset)
	}

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s%s%s",
		baseListingsSelect, whereClause, orderClause, limitClause, offsetClause,
	)

	countSQL = countListingsSelect + whereClause

	return dataSQL, countSQL, args
}
