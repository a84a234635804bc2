package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Simplici0/partquote/internal/checkout"
)

// SaveOrder stores a confirmed order. The referenced quote must exist.
func (s *Store) SaveOrder(ctx context.Context, o checkout.Order) error {
	orderJSON, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO orders (id, quote_id, status, payment_method, total, estimated_ship_date, order_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		o.ID,
		o.QuoteID,
		string(o.Status),
		string(o.PaymentMethod),
		o.Total,
		o.EstimatedShipDate,
		string(orderJSON),
		formatTime(o.CreatedAt),
	); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetOrder loads a stored order.
func (s *Store) GetOrder(ctx context.Context, id string) (checkout.Order, error) {
	var orderJSON string
	err := s.db.QueryRowContext(ctx, `SELECT order_json FROM orders WHERE id = ?`, id).Scan(&orderJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return checkout.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return checkout.Order{}, fmt.Errorf("query order: %w", err)
	}

	var o checkout.Order
	if err := json.Unmarshal([]byte(orderJSON), &o); err != nil {
		return checkout.Order{}, fmt.Errorf("decode order: %w", err)
	}
	return o, nil
}

// OrdersForQuote lists the orders placed against a quote, oldest first.
func (s *Store) OrdersForQuote(ctx context.Context, quoteID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM orders WHERE quote_id = ? ORDER BY created_at, id`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan order id: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return out, nil
}
