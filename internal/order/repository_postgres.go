package order

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
	"github.com/selvakumar-dev/shopkart-backend/internal/product"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	orderColumns = `id, user_id, order_number, total_amount, COALESCE(shipping_address,''), payment_method,
		status, payment_status, transaction_id, payment_details, estimated_delivery,
		COALESCE(created_at,''), COALESCE(updated_at,'')`

	insertOrderQuery = `
		INSERT INTO orders (user_id, order_number, total_amount, shipping_address, payment_method, status, payment_status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`
	insertOrderItemQuery = `
		INSERT INTO order_items (order_id, product_id, quantity, price, product_name)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`
	getOrderItemsQuery = `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, oi.product_name,
		       p.id, p.name, COALESCE(p.description,''), p.price, COALESCE(p.image,''), p.stock, COALESCE(p.category,'')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`
	settleOrderQuery = `
		UPDATE orders
		SET status = 'confirmed', payment_status = 'paid',
		    transaction_id = $1, payment_details = $2, estimated_delivery = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6 AND status = 'pending' AND payment_status = 'pending'
	`
	debitBankQuery = `
		UPDATE banks
		SET balance = balance - $1
		WHERE id = $2 AND balance >= $1
		RETURNING balance
	`
	// products are locked in id order so concurrent settlements cannot deadlock
	lockProductsQuery     = `SELECT id, name, stock FROM products WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	decrementStockQuery   = `UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`
	clearCartItemsQuery   = `DELETE FROM cart_items WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)`
	resetCartTotalQuery   = `UPDATE carts SET total_amount = 0 WHERE user_id = $1`
	markPaymentFailedTmpl = `UPDATE orders SET payment_status = 'failed', payment_details = $1, updated_at = $2 WHERE id = $3`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ord Order, items []OrderItem) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	err = tx.QueryRow(insertOrderQuery,
		ord.UserID, ord.OrderNumber, ord.TotalAmount, ord.ShippingAddress, ord.PaymentMethod,
		ord.Status, ord.PaymentStatus, ord.CreatedAt, ord.UpdatedAt).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}

	for i := range items {
		items[i].OrderID = ord.ID
		if err := tx.QueryRow(insertOrderItemQuery,
			ord.ID, items[i].ProductID, items[i].Quantity, items[i].Price, items[i].ProductName).Scan(&items[i].ID); err != nil {
			return Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return r.GetByID(ord.ID, ord.UserID)
}

func (r *PostgresRepository) GetByID(orderID, userID int) (Order, error) {
	return r.getOne(`SELECT `+orderColumns+` FROM orders WHERE id = $1 AND user_id = $2`, orderID, userID)
}

func (r *PostgresRepository) GetPending(orderID, userID int) (Order, error) {
	return r.getOne(
		`SELECT `+orderColumns+` FROM orders
		 WHERE id = $1 AND user_id = $2 AND status = 'pending' AND payment_status = 'pending'`,
		orderID, userID)
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.itemsForOrder(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *PostgresRepository) MarkPaymentFailed(orderID int, details PaymentDetails, updatedAt string) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return err
	}
	res, err := r.db.Exec(markPaymentFailedTmpl, raw, updatedAt, orderID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Settle runs the whole Step B write set inside one transaction: the
// conditional balance debit, the pending-filtered order update, the stock
// decrements and the cart clear commit together or not at all.
func (r *PostgresRepository) Settle(s Settlement) (Order, *float64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, nil, err
	}
	defer tx.Rollback()

	var remaining *float64
	if s.BankAccountID != 0 {
		var balance float64
		err := tx.QueryRow(debitBankQuery, s.Amount, s.BankAccountID).Scan(&balance)
		if err == sql.ErrNoRows {
			return Order{}, nil, ErrInsufficientBalance
		}
		if err != nil {
			return Order{}, nil, err
		}
		remaining = &balance
	}

	raw, err := json.Marshal(s.Details)
	if err != nil {
		return Order{}, nil, err
	}
	res, err := tx.Exec(settleOrderQuery,
		s.TransactionID, raw, s.EstimatedDelivery, s.UpdatedAt, s.OrderID, s.UserID)
	if err != nil {
		return Order{}, nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Order{}, nil, ErrNotFound
	}

	itemRows, err := tx.Query(`SELECT product_id, quantity, product_name FROM order_items WHERE order_id = $1`, s.OrderID)
	if err != nil {
		return Order{}, nil, err
	}
	type line struct {
		productID int
		quantity  int
		name      string
	}
	lines := make([]line, 0)
	for itemRows.Next() {
		var l line
		if err := itemRows.Scan(&l.productID, &l.quantity, &l.name); err != nil {
			itemRows.Close()
			return Order{}, nil, err
		}
		lines = append(lines, l)
	}
	itemRows.Close()
	if err := itemRows.Err(); err != nil {
		return Order{}, nil, err
	}

	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, int64(l.productID))
	}
	stockByID := make(map[int]int, len(lines))
	prodRows, err := tx.Query(lockProductsQuery, pq.Array(ids))
	if err != nil {
		return Order{}, nil, err
	}
	for prodRows.Next() {
		var id, stock int
		var name string
		if err := prodRows.Scan(&id, &name, &stock); err != nil {
			prodRows.Close()
			return Order{}, nil, err
		}
		stockByID[id] = stock
	}
	prodRows.Close()
	if err := prodRows.Err(); err != nil {
		return Order{}, nil, err
	}

	for _, l := range lines {
		if stockByID[l.productID] < l.quantity {
			return Order{}, nil, &StockError{ProductName: l.name, Available: stockByID[l.productID], Requested: l.quantity}
		}
		if _, err := tx.Exec(decrementStockQuery, l.quantity, l.productID); err != nil {
			return Order{}, nil, err
		}
	}

	if _, err := tx.Exec(clearCartItemsQuery, s.UserID); err != nil {
		return Order{}, nil, err
	}
	if _, err := tx.Exec(resetCartTotalQuery, s.UserID); err != nil {
		return Order{}, nil, err
	}

	if err := tx.Commit(); err != nil {
		return Order{}, nil, err
	}

	ord, err := r.GetByID(s.OrderID, s.UserID)
	if err != nil {
		return Order{}, nil, err
	}
	return ord, remaining, nil
}

func (r *PostgresRepository) getOne(query string, args ...interface{}) (Order, error) {
	row := r.db.QueryRow(query, args...)
	ord, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}

	items, err := r.itemsForOrder(ord.ID)
	if err != nil {
		return Order{}, err
	}
	ord.Items = items
	return ord, nil
}

func (r *PostgresRepository) itemsForOrder(orderID int) ([]OrderItem, error) {
	rows, err := r.db.Query(getOrderItemsQuery, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OrderItem, 0)
	for rows.Next() {
		var item OrderItem
		var pID sql.NullInt64
		var pName, pDesc, pImage, pCategory sql.NullString
		var pPrice sql.NullFloat64
		var pStock sql.NullInt64
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.ProductName,
			&pID, &pName, &pDesc, &pPrice, &pImage, &pStock, &pCategory); err != nil {
			return nil, err
		}
		if pID.Valid {
			item.Product = &product.Product{
				ID:          int(pID.Int64),
				Name:        pName.String,
				Description: pDesc.String,
				Price:       pPrice.Float64,
				Image:       pImage.String,
				Stock:       int(pStock.Int64),
				Category:    pCategory.String,
			}
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (Order, error) {
	var ord Order
	var txn, delivery sql.NullString
	var details []byte
	if err := row.Scan(
		&ord.ID, &ord.UserID, &ord.OrderNumber, &ord.TotalAmount, &ord.ShippingAddress, &ord.PaymentMethod,
		&ord.Status, &ord.PaymentStatus, &txn, &details, &delivery, &ord.CreatedAt, &ord.UpdatedAt); err != nil {
		return Order{}, err
	}
	if txn.Valid {
		ord.TransactionID = &txn.String
	}
	if delivery.Valid && delivery.String != "" {
		ord.EstimatedDelivery = &delivery.String
	}
	if len(details) > 0 {
		var pd PaymentDetails
		if err := json.Unmarshal(details, &pd); err == nil {
			ord.PaymentDetails = &pd
		}
	}
	return ord, nil
}
