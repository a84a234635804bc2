// Package seed inserts the fixture data a development server starts with.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Simplici0/partquote/internal/store"
)

const defaultAddressID = "addr_1"

// Address is a saved address row inserted by the seed.
type Address struct {
	ID       string
	Type     string
	FullName string
	Company  string
	Address  string
	City     string
	State    string
	ZIPCode  string
	Country  string
	Phone    string
	Email    string
}

// DefaultAddress is the saved shipping address every development account
// starts with.
var DefaultAddress = Address{
	ID:       defaultAddressID,
	Type:     "shipping",
	FullName: "John Doe",
	Company:  "Acme Manufacturing",
	Address:  "123 Industrial Blvd, Suite 400",
	City:     "San Francisco",
	State:    "California",
	ZIPCode:  "94102",
	Country:  "United States",
	Phone:    "(555) 123-4567",
	Email:    "john.doe@acme.com",
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB, now time.Time) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureAddress(ctx, tx, DefaultAddress, now, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

// ensureAddress inserts a as the default of its type unless a row with its id
// already exists. An existing default of the same type is left alone.
func ensureAddress(ctx context.Context, tx *sql.Tx, a Address, now time.Time, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM addresses WHERE id = ? LIMIT 1)`, a.ID).Scan(&exists); err != nil {
		return fmt.Errorf("check seed address existence: %w", err)
	}
	if exists {
		return nil
	}

	var hasDefault bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM addresses WHERE type = ? AND is_default = 1)`, a.Type).Scan(&hasDefault); err != nil {
		return fmt.Errorf("check default address existence: %w", err)
	}

	stamp := now.UTC().Format(store.TimeLayout)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO addresses (
			id, type, full_name, company, address, city, state,
			zip_code, country, phone, email, is_default, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Type, a.FullName, a.Company, a.Address, a.City, a.State,
		a.ZIPCode, a.Country, a.Phone, a.Email, !hasDefault, stamp, stamp); err != nil {
		return fmt.Errorf("insert seed address: %w", err)
	}
	stats.Inserts++
	return nil
}
