package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
)

func newCartTestFixture(t *testing.T) (*CartRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewCartRepository(mock)
	return repo, mock
}

// ---------------------------------------------------------------------------
// ListByUser
// ---------------------------------------------------------------------------

func TestCartRepository_ListByUser_Success(t *testing.T) {
	repo, mock := newCartTestFixture(t)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"product_id", "name", "price", "quantity", "size", "color", "image_url"}).
		AddRow("prod-1", "Linen Shirt", int64(1200), 2, "M", "white", "/img/shirt.jpg").
		AddRow("prod-2", "Denim Jacket", int64(3400), 1, "L", "indigo", "/img/jacket.jpg")
	mock.ExpectQuery("SELECT product_id, name, price, quantity, size, color, image_url").
		WithArgs("user-1").
		WillReturnRows(rows)

	lines, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "prod-1", lines[0].ProductID)
	assert.Equal(t, int64(1200), lines[0].Price)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "prod-2", lines[1].ProductID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_ListByUser_Empty(t *testing.T) {
	repo, mock := newCartTestFixture(t)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"product_id", "name", "price", "quantity", "size", "color", "image_url"})
	mock.ExpectQuery("SELECT product_id, name, price, quantity, size, color, image_url").
		WithArgs("user-empty").
		WillReturnRows(rows)

	lines, err := repo.ListByUser(context.Background(), "user-empty")
	require.NoError(t, err)
	assert.NotNil(t, lines, "should return empty slice, not nil")
	assert.Len(t, lines, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_ListByUser_QueryError(t *testing.T) {
	repo, mock := newCartTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT product_id, name, price, quantity, size, color, image_url").
		WithArgs("user-1").
		WillReturnError(errors.New("connection refused"))

	lines, err := repo.ListByUser(context.Background(), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list cart items")
	assert.Nil(t, lines)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Upsert
// ---------------------------------------------------------------------------

func TestCartRepository_Upsert_Success(t *testing.T) {
	repo, mock := newCartTestFixture(t)
	defer mock.Close()

	line := domain.CartLine{
		ProductID: "prod-1",
		Name:      "Linen Shirt",
		Price:     1200,
		Quantity:  3,
		Size:      "M",
		Color:     "white",
		ImageURL:  "/img/shirt.jpg",
	}

	mock.ExpectExec("INSERT INTO cart_items").
		WithArgs("user-1", "prod-1", "M", "white", "Linen Shirt", int64(1200), 3, "/img/shirt.jpg").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Upsert(context.Background(), "user-1", line)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_Upsert_ExecError(t *testing.T) {
	repo, mock := newCartTestFixture(t)
	defer mock.Close()

	line := domain.CartLine{ProductID: "prod-1", Name: "Linen Shirt", Price: 1200, Quantity: 1}

	mock.ExpectExec("INSERT INTO cart_items").
		WithArgs("user-1", "prod-1", "", "", "Linen Shirt", int64(1200), 1, "").
		WillReturnError(errors.New("database timeout"))

	err := repo.Upsert(context.Background(), "user-1", line)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert cart item")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// UpdateQuantityByProduct
// ---------------------------------------------------------------------------

func TestCartRepository_UpdateQuantityByProduct_Success(t *testing.T) {
	repo, mock := newCartTestFixture(t)
	defer mock.Close()

	// Two variants of the same product; both rows are updated.
	mock.ExpectExec("UPDATE cart_items").
		WithArgs("user-1", "prod-1", 5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	err := repo.UpdateQuantityByProduct(context.Background(), "user-1", "prod-1", 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_UpdateQuantityByProduct_ExecError(t *testing.T) {
	repo, mock := newCartTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE cart_items").
		WithArgs("user-1", "prod-1", 5).
		WillReturnError(errors.New("database timeout"))

	err := repo.UpdateQuantityByProduct(context.Background(), "user-1", "prod-1", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update cart quantity")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// DeleteByProduct
// ---------------------------------------------------------------------------

func TestCartRepository_DeleteByProduct_Success(t *testing.T) {
	repo, mock := newCartTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM cart_items WHERE user_id =").
		WithArgs("user-1", "prod-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	err := repo.DeleteByProduct(context.Background(), "user-1", "prod-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_DeleteByProduct_Absent(t *testing.T) {
	repo, mock := newCartTestFixture(t)
	defer mock.Close()

	// Deleting a product not in the cart is a no-op, not an error.
	mock.ExpectExec("DELETE FROM cart_items WHERE user_id =").
		WithArgs("user-1", "prod-missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.DeleteByProduct(context.Background(), "user-1", "prod-missing")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_DeleteByProduct_ExecError(t *testing.T) {
	repo, mock := newCartTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM cart_items WHERE user_id =").
		WithArgs("user-1", "prod-1").
		WillReturnError(errors.New("connection refused"))

	err := repo.DeleteByProduct(context.Background(), "user-1", "prod-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete cart item")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// DeleteAllByUser
// ---------------------------------------------------------------------------

func TestCartRepository_DeleteAllByUser_Success(t *testing.T) {
	repo, mock := newCartTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM cart_items WHERE user_id =").
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	err := repo.DeleteAllByUser(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_DeleteAllByUser_ExecError(t *testing.T) {
	repo, mock := newCartTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM cart_items WHERE user_id =").
		WithArgs("user-1").
		WillReturnError(errors.New("database timeout"))

	err := repo.DeleteAllByUser(context.Background(), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clear cart")
	assert.NoError(t, mock.ExpectationsWereMet())
}
