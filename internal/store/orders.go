package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"bakery-service/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Sort fields accepted by ListOrders.
const (
	SortByCreatedAt = "created_at"
	SortByTotal     = "total"
)

// OrderFilter narrows and orders the result of ListOrders.
type OrderFilter struct {
	Statuses []string
	Query    string
	SortBy   string
	Asc      bool
}

// CreateOrder persists a new order. A unique-index collision on the order
// number comes back as ErrDuplicateOrderNumber so the caller can regenerate.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (order_number, items, customer, subtotal, shipping_fee, total, status, tracking_number, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := s.db.QueryRowxContext(ctx, query,
		order.OrderNumber, order.Items, order.Customer,
		order.Subtotal, order.ShippingFee, order.Total,
		order.Status, order.TrackingNumber, order.Notes,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return fmt.Errorf("order number %s: %w", order.OrderNumber, ErrDuplicateOrderNumber)
	}
	return err
}

// GetOrderByID retrieves an order by its database id.
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderByNumber retrieves an order by its human-readable order number.
func (s *Store) GetOrderByNumber(ctx context.Context, number string) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE order_number = $1", number)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %s: %w", number, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder resolves ref as a database id when numeric, otherwise as an
// order number.
func (s *Store) GetOrder(ctx context.Context, ref string) (*models.Order, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return s.GetOrderByID(ctx, id)
	}
	return s.GetOrderByNumber(ctx, ref)
}

// ListOrders returns orders matching the filter. The free-text query is
// matched case-insensitively against order number, customer name, and
// customer phone. Default ordering is creation time descending.
func (s *Store) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	query := "SELECT * FROM orders"
	var args []interface{}
	var where []string

	if len(filter.Statuses) > 0 {
		clause, inArgs, err := sqlx.In("status IN (?)", filter.Statuses)
		if err != nil {
			return nil, err
		}
		where = append(where, clause)
		args = append(args, inArgs...)
	}

	if filter.Query != "" {
		where = append(where,
			"(order_number ILIKE ? OR customer->>'name' ILIKE ? OR customer->>'phone' ILIKE ?)")
		pattern := "%" + filter.Query + "%"
		args = append(args, pattern, pattern, pattern)
	}

	for i, w := range where {
		if i == 0 {
			query += " WHERE " + w
		} else {
			query += " AND " + w
		}
	}

	sortBy := SortByCreatedAt
	if filter.SortBy == SortByTotal {
		sortBy = SortByTotal
	}
	dir := "DESC"
	if filter.Asc {
		dir = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, dir)

	query = s.db.Rebind(query)

	orders := []models.Order{}
	err := s.db.SelectContext(ctx, &orders, query, args...)
	return orders, err
}

// UpdateOrderStatus persists a status change along with the optional
// tracking number, notes, and lifecycle timestamps, and bumps updated_at.
func (s *Store) UpdateOrderStatus(ctx context.Context, order *models.Order) error {
	query := `
		UPDATE orders
		SET status = $1, tracking_number = $2, notes = $3,
		    shipped_at = $4, delivered_at = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`

	err := s.db.QueryRowxContext(ctx, query,
		order.Status, order.TrackingNumber, order.Notes,
		order.ShippedAt, order.DeliveredAt, order.ID,
	).Scan(&order.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("order %d: %w", order.ID, ErrNotFound)
	}
	return err
}

// CountOrdersByStatus returns the number of orders per status, used by the
// admin dashboard summary.
func (s *Store) CountOrdersByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
