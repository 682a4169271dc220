package postgres

import (
	"context"
	"fmt"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
type OrderRepository struct {
	db DB
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(db DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts an order and its lines.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	orderQuery := `
		INSERT INTO orders (id, user_id, status, subtotal, shipping, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, orderQuery,
		order.ID,
		order.UserID,
		order.Status,
		order.Subtotal,
		order.Shipping,
		order.Total,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	lineQuery := `
		INSERT INTO order_items (order_id, product_id, name, price, quantity, size, color, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, l := range order.Lines {
		_, err := r.db.Exec(ctx, lineQuery,
			order.ID,
			l.ProductID,
			l.Name,
			l.Price,
			l.Quantity,
			l.Size,
			l.Color,
			l.ImageURL,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return nil
}

// ListByUser returns a page of the user's orders, newest first, plus the
// total count. Lines are loaded per order; order history pages are small.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `
		SELECT id, user_id, status, subtotal, shipping, total, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.Subtotal, &o.Shipping, &o.Total, &o.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate order rows: %w", err)
	}

	for i := range orders {
		lines, err := r.listOrderLines(ctx, orders[i].ID)
		if err != nil {
			return nil, 0, err
		}
		orders[i].Lines = lines
	}

	return orders, total, nil
}

func (r *OrderRepository) listOrderLines(ctx context.Context, orderID string) ([]domain.CartLine, error) {
	query := `
		SELECT product_id, name, price, quantity, size, color, image_url
		FROM order_items
		WHERE order_id = $1`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	lines := []domain.CartLine{}
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Price, &l.Quantity, &l.Size, &l.Color, &l.ImageURL); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order item rows: %w", err)
	}

	return lines, nil
}
