package wishlist

import (
	"database/sql"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const listWishlistQuery = `
	SELECT w.id, w.user_id, w.product_id, COALESCE(w.created_at,''),
	       p.id, p.name, COALESCE(p.description,''), p.price, COALESCE(p.image,''), p.stock, COALESCE(p.category,'')
	FROM wishlists w
	JOIN products p ON p.id = w.product_id
	WHERE w.user_id = $1
	ORDER BY w.id DESC
`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(userID int) ([]Entry, error) {
	rows, err := r.db.Query(listWishlistQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.ProductID, &e.CreatedAt,
			&e.Product.ID, &e.Product.Name, &e.Product.Description, &e.Product.Price,
			&e.Product.Image, &e.Product.Stock, &e.Product.Category); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Add(userID, productID int, createdAt string) (Entry, error) {
	var e Entry
	err := r.db.QueryRow(
		`INSERT INTO wishlists (user_id, product_id, created_at)
		 VALUES ($1,$2,$3)
		 RETURNING id, user_id, product_id, created_at`,
		userID, productID, createdAt).Scan(&e.ID, &e.UserID, &e.ProductID, &e.CreatedAt)
	if err != nil {
		// the unique (user_id, product_id) index rejects duplicates
		if strings.Contains(err.Error(), "duplicate key") {
			return Entry{}, ErrAlreadyExists
		}
		return Entry{}, err
	}
	return e, nil
}

func (r *PostgresRepository) Remove(userID, productID int) error {
	res, err := r.db.Exec(`DELETE FROM wishlists WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Exists(userID, productID int) (bool, error) {
	var one int
	err := r.db.QueryRow(`SELECT 1 FROM wishlists WHERE user_id = $1 AND product_id = $2`, userID, productID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
