package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Simplici0/partquote/internal/quote"
)

// QuoteSummary is the list view of a stored quote.
type QuoteSummary struct {
	ID        string   `json:"id"`
	PartCount int      `json:"partCount"`
	Subtotal  float64  `json:"subtotal"`
	Tax       *float64 `json:"tax"`
	Total     float64  `json:"total"`
	CreatedAt string   `json:"createdAt"`
}

// SaveQuote stores a quote snapshot. Saving an existing id replaces it.
func (s *Store) SaveQuote(ctx context.Context, snap quote.Snapshot) error {
	snapshotJSON, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal quote snapshot: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO quotes (id, zip, notes, part_count, subtotal, tax, shipping, total, snapshot_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			zip = excluded.zip,
			notes = excluded.notes,
			part_count = excluded.part_count,
			subtotal = excluded.subtotal,
			tax = excluded.tax,
			shipping = excluded.shipping,
			total = excluded.total,
			snapshot_json = excluded.snapshot_json,
			updated_at = excluded.updated_at
	`,
		snap.ID,
		snap.ZIP,
		snap.Notes,
		len(snap.Parts),
		snap.Subtotal,
		nullFloat(snap.Tax),
		nullFloat(snap.Shipping),
		snap.Total,
		string(snapshotJSON),
		formatTime(snap.CreatedAt),
		formatTime(snap.UpdatedAt),
	); err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// GetQuote loads a stored quote snapshot.
func (s *Store) GetQuote(ctx context.Context, id string) (quote.Snapshot, error) {
	var snapshotJSON string
	err := s.db.QueryRowContext(ctx, `SELECT snapshot_json FROM quotes WHERE id = ?`, id).Scan(&snapshotJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return quote.Snapshot{}, fmt.Errorf("quote %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return quote.Snapshot{}, fmt.Errorf("query quote: %w", err)
	}

	var snap quote.Snapshot
	if err := json.Unmarshal([]byte(snapshotJSON), &snap); err != nil {
		return quote.Snapshot{}, fmt.Errorf("decode quote snapshot: %w", err)
	}
	return snap, nil
}

// ListQuotes returns the most recent quotes first. A non-empty query keeps
// quotes whose id or notes contain it.
func (s *Store) ListQuotes(ctx context.Context, query string, limit int) ([]QuoteSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, part_count, subtotal, tax, total, created_at
		FROM quotes
		WHERE (? = '' OR id LIKE ? OR notes LIKE ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, query, search, search, limit)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	out := []QuoteSummary{}
	for rows.Next() {
		var q QuoteSummary
		var tax sql.NullFloat64
		if err := rows.Scan(&q.ID, &q.PartCount, &q.Subtotal, &tax, &q.Total, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		if tax.Valid {
			v := tax.Float64
			q.Tax = &v
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}
	return out, nil
}
