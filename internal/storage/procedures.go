package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"comissoes/internal/core"
)

func (s *Store) CreateProcedure(ctx context.Context, p *core.Procedure) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO procedimentos (owner_id, client_name, procedure_date, procedure_type, commission_cents)
		 VALUES (?, ?, ?, ?, ?)`,
		p.OwnerID, p.ClientName, storeDate(p.ProcedureDate), p.ProcedureType, p.Commission.Cents)
	if err != nil {
		return fmt.Errorf("insert procedure: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("procedure insert id: %w", err)
	}
	p.ID = id
	return nil
}

func (s *Store) GetProcedure(ctx context.Context, id int64) (*core.Procedure, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, client_name, procedure_date, procedure_type, commission_cents
		 FROM procedimentos WHERE id = ?`, id)
	return scanProcedure(row.Scan)
}

// ListProceduresByOwner returns the user's procedures, most recent first.
func (s *Store) ListProceduresByOwner(ctx context.Context, ownerID int64) ([]core.Procedure, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, client_name, procedure_date, procedure_type, commission_cents
		 FROM procedimentos WHERE owner_id = ? ORDER BY procedure_date DESC, id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list procedures: %w", err)
	}
	defer rows.Close()

	var procedures []core.Procedure
	for rows.Next() {
		p, err := scanProcedure(rows.Scan)
		if err != nil {
			return nil, err
		}
		procedures = append(procedures, *p)
	}
	return procedures, rows.Err()
}

func (s *Store) UpdateProcedure(ctx context.Context, p *core.Procedure) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE procedimentos SET client_name = ?, procedure_date = ?, procedure_type = ?, commission_cents = ?
		 WHERE id = ?`,
		p.ClientName, storeDate(p.ProcedureDate), p.ProcedureType, p.Commission.Cents, p.ID)
	if err != nil {
		return fmt.Errorf("update procedure: %w", err)
	}
	return checkAffected(res)
}

func (s *Store) DeleteProcedure(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM procedimentos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete procedure: %w", err)
	}
	return checkAffected(res)
}

func scanProcedure(scan func(...any) error) (*core.Procedure, error) {
	var (
		p    core.Procedure
		date string
	)
	err := scan(&p.ID, &p.OwnerID, &p.ClientName, &date, &p.ProcedureType, &p.Commission.Cents)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrRecordNotFound
		}
		return nil, fmt.Errorf("scan procedure: %w", err)
	}
	p.ProcedureDate, err = loadDate(date)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
