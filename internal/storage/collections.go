package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"comissoes/internal/core"
)

func (s *Store) CreateCollection(ctx context.Context, c *core.Collection) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO cobrancas (owner_id, client_name, negotiation_date, negotiated_cents, commission_cents)
		 VALUES (?, ?, ?, ?, ?)`,
		c.OwnerID, c.ClientName, storeDate(c.NegotiationDate),
		c.Negotiated.Cents, c.Commission.Cents)
	if err != nil {
		return fmt.Errorf("insert collection: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("collection insert id: %w", err)
	}
	c.ID = id
	return nil
}

func (s *Store) GetCollection(ctx context.Context, id int64) (*core.Collection, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, client_name, negotiation_date, negotiated_cents, commission_cents
		 FROM cobrancas WHERE id = ?`, id)
	return scanCollection(row.Scan)
}

// ListCollectionsByOwner returns the user's collections, most recent first.
func (s *Store) ListCollectionsByOwner(ctx context.Context, ownerID int64) ([]core.Collection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, client_name, negotiation_date, negotiated_cents, commission_cents
		 FROM cobrancas WHERE owner_id = ? ORDER BY negotiation_date DESC, id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var collections []core.Collection
	for rows.Next() {
		c, err := scanCollection(rows.Scan)
		if err != nil {
			return nil, err
		}
		collections = append(collections, *c)
	}
	return collections, rows.Err()
}

func (s *Store) UpdateCollection(ctx context.Context, c *core.Collection) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE cobrancas SET client_name = ?, negotiation_date = ?, negotiated_cents = ?, commission_cents = ?
		 WHERE id = ?`,
		c.ClientName, storeDate(c.NegotiationDate), c.Negotiated.Cents, c.Commission.Cents, c.ID)
	if err != nil {
		return fmt.Errorf("update collection: %w", err)
	}
	return checkAffected(res)
}

func (s *Store) DeleteCollection(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cobrancas WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return checkAffected(res)
}

func scanCollection(scan func(...any) error) (*core.Collection, error) {
	var (
		c    core.Collection
		date string
	)
	err := scan(&c.ID, &c.OwnerID, &c.ClientName, &date,
		&c.Negotiated.Cents, &c.Commission.Cents)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrRecordNotFound
		}
		return nil, fmt.Errorf("scan collection: %w", err)
	}
	c.NegotiationDate, err = loadDate(date)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
