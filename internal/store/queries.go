package store

// SQL query constants. All SQL lives here so PostgresStore methods
// stay free of string building.
//
// The books table predates this service and allows NULL in the optional
// text columns, so reads coalesce them to empty strings.
const (
	queryCreateListing = `
		INSERT INTO books (
			title, author, isbn, genre, condition, description,
			material_type, trade_type, price, image_url,
			seller_name, seller_email, created_at, updated_at
		) VALUES (
			@title, @author, @isbn, @genre, @condition, @description,
			@material_type, @trade_type, @price, @image_url,
			@seller_name, @seller_email, now(), now()
		)
		RETURNING id, created_at, updated_at`

	queryGetListing = `
		SELECT id, title, COALESCE(author, ''), COALESCE(isbn, ''), COALESCE(genre, ''),
			COALESCE(condition, ''), COALESCE(description, ''),
			material_type, trade_type, price, COALESCE(image_url, ''),
			seller_name, seller_email, created_at, updated_at
		FROM books
		WHERE id = $1`

	queryUpdateListing = `
		UPDATE books SET
			title = @title,
			author = @author,
			isbn = @isbn,
			genre = @genre,
			condition = @condition,
			description = @description,
			material_type = @material_type,
			trade_type = @trade_type,
			price = @price,
			image_url = @image_url,
			seller_name = @seller_name,
			updated_at = now()
		WHERE id = @id
		RETURNING updated_at`

	queryDeleteListing = `DELETE FROM books WHERE id = $1`
)
