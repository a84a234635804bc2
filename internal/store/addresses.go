package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/partquote/internal/checkout"
)

const addressColumns = `id, type, full_name, company, address, city, state, zip_code, country, phone, email, is_default, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAddress(row rowScanner) (checkout.SavedAddress, error) {
	var a checkout.SavedAddress
	var kind, createdAt, updatedAt string
	if err := row.Scan(
		&a.ID, &kind, &a.FullName, &a.Company, &a.Address, &a.City, &a.State,
		&a.ZIPCode, &a.Country, &a.Phone, &a.Email, &a.IsDefault, &createdAt, &updatedAt,
	); err != nil {
		return checkout.SavedAddress{}, err
	}
	a.Type = checkout.AddressKind(kind)

	var err error
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return checkout.SavedAddress{}, fmt.Errorf("parse created_at: %w", err)
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return checkout.SavedAddress{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return a, nil
}

// ListAddresses returns saved addresses, defaults first. An empty kind lists
// every address.
func (s *Store) ListAddresses(ctx context.Context, kind checkout.AddressKind) ([]checkout.SavedAddress, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+addressColumns+`
		FROM addresses
		WHERE ? = '' OR type = ?
		ORDER BY is_default DESC, created_at, id
	`, string(kind), string(kind))
	if err != nil {
		return nil, fmt.Errorf("query addresses: %w", err)
	}
	defer rows.Close()

	out := []checkout.SavedAddress{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}
	return out, nil
}

// GetAddress loads one saved address.
func (s *Store) GetAddress(ctx context.Context, id string) (checkout.SavedAddress, error) {
	a, err := scanAddress(s.db.QueryRowContext(ctx, `SELECT `+addressColumns+` FROM addresses WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return checkout.SavedAddress{}, fmt.Errorf("address %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return checkout.SavedAddress{}, fmt.Errorf("query address: %w", err)
	}
	return a, nil
}

// DefaultAddress returns the default address of the given kind.
func (s *Store) DefaultAddress(ctx context.Context, kind checkout.AddressKind) (checkout.SavedAddress, error) {
	a, err := scanAddress(s.db.QueryRowContext(ctx, `
		SELECT `+addressColumns+`
		FROM addresses
		WHERE type = ? AND is_default = 1
		ORDER BY updated_at DESC
		LIMIT 1
	`, string(kind)))
	if errors.Is(err, sql.ErrNoRows) {
		return checkout.SavedAddress{}, fmt.Errorf("default %s address: %w", kind, ErrNotFound)
	}
	if err != nil {
		return checkout.SavedAddress{}, fmt.Errorf("query default address: %w", err)
	}
	return a, nil
}

// CreateAddress assigns an addr_<timestamp> id and stores the address. A new
// default replaces the previous default of the same kind.
func (s *Store) CreateAddress(ctx context.Context, a checkout.SavedAddress) (checkout.SavedAddress, error) {
	if err := a.Normalize(); err != nil {
		return checkout.SavedAddress{}, err
	}
	a.ID = s.clock.Address()
	now := s.now()
	a.CreatedAt = now
	a.UpdatedAt = now

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if a.IsDefault {
			if err := clearDefault(ctx, tx, a.Type, a.ID); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO addresses (`+addressColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			a.ID, string(a.Type), a.FullName, a.Company, a.Address, a.City, a.State,
			a.ZIPCode, a.Country, a.Phone, a.Email, a.IsDefault, formatTime(a.CreatedAt), formatTime(a.UpdatedAt),
		); err != nil {
			return fmt.Errorf("insert address: %w", err)
		}
		return nil
	})
	if err != nil {
		return checkout.SavedAddress{}, err
	}
	return a, nil
}

// UpdateAddress overwrites a saved address, keeping its id and creation time.
func (s *Store) UpdateAddress(ctx context.Context, id string, a checkout.SavedAddress) (checkout.SavedAddress, error) {
	if err := a.Normalize(); err != nil {
		return checkout.SavedAddress{}, err
	}
	existing, err := s.GetAddress(ctx, id)
	if err != nil {
		return checkout.SavedAddress{}, err
	}
	a.ID = id
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = s.now()

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if a.IsDefault {
			if err := clearDefault(ctx, tx, a.Type, a.ID); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE addresses
			SET type = ?, full_name = ?, company = ?, address = ?, city = ?, state = ?,
				zip_code = ?, country = ?, phone = ?, email = ?, is_default = ?, updated_at = ?
			WHERE id = ?
		`,
			string(a.Type), a.FullName, a.Company, a.Address, a.City, a.State,
			a.ZIPCode, a.Country, a.Phone, a.Email, a.IsDefault, formatTime(a.UpdatedAt), a.ID,
		); err != nil {
			return fmt.Errorf("update address: %w", err)
		}
		return nil
	})
	if err != nil {
		return checkout.SavedAddress{}, err
	}
	return a, nil
}

// DeleteAddress removes a saved address.
func (s *Store) DeleteAddress(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete address rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("address %s: %w", id, ErrNotFound)
	}
	return nil
}

func clearDefault(ctx context.Context, tx *sql.Tx, kind checkout.AddressKind, keep string) error {
	if _, err := tx.ExecContext(ctx, `UPDATE addresses SET is_default = 0 WHERE type = ? AND id <> ?`, string(kind), keep); err != nil {
		return fmt.Errorf("clear default address: %w", err)
	}
	return nil
}

func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
