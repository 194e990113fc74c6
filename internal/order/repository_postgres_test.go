package order

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "order_number", "total_amount", "shipping_address", "payment_method",
		"status", "payment_status", "transaction_id", "payment_details", "estimated_delivery",
		"created_at", "updated_at",
	})
}

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "order_id", "product_id", "quantity", "price", "product_name",
		"p_id", "p_name", "p_description", "p_price", "p_image", "p_stock", "p_category",
	})
}

func TestSettle_CommitsWholeWriteSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE banks").
		WithArgs(200.0, 1).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(300.0))
	mock.ExpectExec("UPDATE orders").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM order_items").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity", "product_name"}).
			AddRow(1, 2, "Non-Stick Pan"))
	mock.ExpectQuery("FROM products WHERE id = ANY").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stock"}).AddRow(1, "Non-Stick Pan", 10))
	mock.ExpectExec("UPDATE products SET stock").
		WithArgs(2, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE carts SET total_amount").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// settled order is reloaded after commit
	mock.ExpectQuery("FROM orders WHERE id").
		WithArgs(5, 7).
		WillReturnRows(orderRows().AddRow(
			5, 7, "ORD-1-ABCDE", 200.0, "addr", "card",
			"confirmed", "paid", "TXN-1-ABCDEFGH", []byte(`{"method":"card"}`), "2026-09-02T00:00:00Z",
			"t", "u"))
	mock.ExpectQuery("FROM order_items").
		WithArgs(5).
		WillReturnRows(itemRows().AddRow(
			1, 5, 1, 2, 100.0, "Non-Stick Pan",
			1, "Non-Stick Pan", "", 100.0, "", 8, "kitchen"))

	ord, remaining, err := repo.Settle(Settlement{
		OrderID:           5,
		UserID:            7,
		TransactionID:     "TXN-1-ABCDEFGH",
		Details:           PaymentDetails{Method: "card"},
		EstimatedDelivery: "2026-09-02T00:00:00Z",
		UpdatedAt:         "u",
		BankAccountID:     1,
		Amount:            200,
	})
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if ord.Status != StatusConfirmed || ord.PaymentStatus != PaymentPaid {
		t.Fatalf("unexpected order state %s/%s", ord.Status, ord.PaymentStatus)
	}
	if remaining == nil || *remaining != 300 {
		t.Fatalf("expected remaining 300, got %v", remaining)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSettle_InsufficientBalanceRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	// conditional debit matches no row when the balance cannot cover it
	mock.ExpectQuery("UPDATE banks").
		WithArgs(500.0, 2).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))
	mock.ExpectRollback()

	_, _, err = repo.Settle(Settlement{OrderID: 1, UserID: 1, BankAccountID: 2, Amount: 500})
	if err != ErrInsufficientBalance {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSettle_AlreadyProcessedRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	// cod settlement skips the debit and goes straight to the order update
	mock.ExpectExec("UPDATE orders").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, _, err = repo.Settle(Settlement{OrderID: 1, UserID: 1})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSettle_StockShortfallRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM order_items").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity", "product_name"}).
			AddRow(9, 4, "Yoga Mat"))
	mock.ExpectQuery("FROM products WHERE id = ANY").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stock"}).AddRow(9, "Yoga Mat", 1))
	mock.ExpectRollback()

	_, _, err = repo.Settle(Settlement{OrderID: 3, UserID: 2})
	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected StockError, got %v", err)
	}
	if stockErr.Available != 1 || stockErr.Requested != 4 {
		t.Fatalf("unexpected StockError %+v", stockErr)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
