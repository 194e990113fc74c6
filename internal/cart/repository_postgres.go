package cart

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getCartQuery = `SELECT id, user_id, total_amount FROM carts WHERE user_id = $1`

	getCartItemsQuery = `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.price,
		       p.id, p.name, COALESCE(p.description,''), p.price, COALESCE(p.image,''), p.stock, COALESCE(p.category,'')
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`
	getItemQuery = `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.price,
		       p.id, p.name, COALESCE(p.description,''), p.price, COALESCE(p.image,''), p.stock, COALESCE(p.category,'')
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		JOIN products p ON p.id = ci.product_id
		WHERE ci.id = $1 AND c.user_id = $2
	`
	upsertItemQuery = `
		INSERT INTO cart_items (cart_id, product_id, quantity, price)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, cart_id, product_id, quantity, price
	`
	recalculateTotalQuery = `
		UPDATE carts
		SET total_amount = COALESCE((SELECT SUM(price * quantity) FROM cart_items WHERE cart_id = carts.id), 0)
		WHERE id = $1
		RETURNING total_amount
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByUser(userID int) (Cart, error) {
	var c Cart
	err := r.db.QueryRow(getCartQuery, userID).Scan(&c.ID, &c.UserID, &c.TotalAmount)
	if err == sql.ErrNoRows {
		return Cart{}, ErrCartNotFound
	}
	if err != nil {
		return Cart{}, err
	}

	items, err := r.itemsForCart(c.ID)
	if err != nil {
		return Cart{}, err
	}
	c.Items = items
	return c, nil
}

func (r *PostgresRepository) Create(userID int) (Cart, error) {
	var c Cart
	err := r.db.QueryRow(
		`INSERT INTO carts (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING id, user_id, total_amount`, userID).Scan(&c.ID, &c.UserID, &c.TotalAmount)
	if err != nil {
		return Cart{}, err
	}
	c.Items = []CartItem{}
	return c, nil
}

func (r *PostgresRepository) GetItem(userID, itemID int) (CartItem, error) {
	var item CartItem
	err := r.db.QueryRow(getItemQuery, itemID, userID).Scan(
		&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.Price,
		&item.Product.ID, &item.Product.Name, &item.Product.Description, &item.Product.Price,
		&item.Product.Image, &item.Product.Stock, &item.Product.Category)
	if err == sql.ErrNoRows {
		return CartItem{}, ErrNotFound
	}
	if err != nil {
		return CartItem{}, err
	}
	return item, nil
}

func (r *PostgresRepository) UpsertItem(cartID, productID, quantity int, price float64) (CartItem, error) {
	var item CartItem
	err := r.db.QueryRow(upsertItemQuery, cartID, productID, quantity, price).Scan(
		&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.Price)
	if err != nil {
		return CartItem{}, err
	}
	return item, nil
}

func (r *PostgresRepository) UpdateItemQuantity(itemID, quantity int) (CartItem, error) {
	var item CartItem
	err := r.db.QueryRow(
		`UPDATE cart_items SET quantity = $1 WHERE id = $2
		 RETURNING id, cart_id, product_id, quantity, price`, quantity, itemID).Scan(
		&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.Price)
	if err == sql.ErrNoRows {
		return CartItem{}, ErrNotFound
	}
	if err != nil {
		return CartItem{}, err
	}
	return item, nil
}

func (r *PostgresRepository) RemoveItem(itemID int) error {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ClearByUser(userID int) error {
	if _, err := r.db.Exec(
		`DELETE FROM cart_items WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)`, userID); err != nil {
		return err
	}
	_, err := r.db.Exec(`UPDATE carts SET total_amount = 0 WHERE user_id = $1`, userID)
	return err
}

func (r *PostgresRepository) RecalculateTotal(cartID int) (float64, error) {
	var total float64
	if err := r.db.QueryRow(recalculateTotalQuery, cartID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PostgresRepository) itemsForCart(cartID int) ([]CartItem, error) {
	rows, err := r.db.Query(getCartItemsQuery, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CartItem, 0)
	for rows.Next() {
		var item CartItem
		if err := rows.Scan(
			&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.Price,
			&item.Product.ID, &item.Product.Name, &item.Product.Description, &item.Product.Price,
			&item.Product.Image, &item.Product.Stock, &item.Product.Category); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
