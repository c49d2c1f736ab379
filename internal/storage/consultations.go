package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"comissoes/internal/core"
)

func (s *Store) CreateConsultation(ctx context.Context, c *core.Consultation) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO consultas (owner_id, client_name, consultation_date, status, commission_cents)
		 VALUES (?, ?, ?, ?, ?)`,
		c.OwnerID, c.ClientName, storeDate(c.ConsultationDate), c.Status, c.Commission.Cents)
	if err != nil {
		return fmt.Errorf("insert consultation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("consultation insert id: %w", err)
	}
	c.ID = id
	return nil
}

func (s *Store) GetConsultation(ctx context.Context, id int64) (*core.Consultation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, client_name, consultation_date, status, commission_cents
		 FROM consultas WHERE id = ?`, id)
	return scanConsultation(row.Scan)
}

// ListConsultationsByOwner returns the user's consultations, most recent first.
func (s *Store) ListConsultationsByOwner(ctx context.Context, ownerID int64) ([]core.Consultation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, client_name, consultation_date, status, commission_cents
		 FROM consultas WHERE owner_id = ? ORDER BY consultation_date DESC, id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list consultations: %w", err)
	}
	defer rows.Close()

	var consultations []core.Consultation
	for rows.Next() {
		c, err := scanConsultation(rows.Scan)
		if err != nil {
			return nil, err
		}
		consultations = append(consultations, *c)
	}
	return consultations, rows.Err()
}

func (s *Store) UpdateConsultation(ctx context.Context, c *core.Consultation) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE consultas SET client_name = ?, consultation_date = ?, status = ?, commission_cents = ?
		 WHERE id = ?`,
		c.ClientName, storeDate(c.ConsultationDate), c.Status, c.Commission.Cents, c.ID)
	if err != nil {
		return fmt.Errorf("update consultation: %w", err)
	}
	return checkAffected(res)
}

func (s *Store) DeleteConsultation(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM consultas WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete consultation: %w", err)
	}
	return checkAffected(res)
}

func scanConsultation(scan func(...any) error) (*core.Consultation, error) {
	var (
		c    core.Consultation
		date string
	)
	err := scan(&c.ID, &c.OwnerID, &c.ClientName, &date, &c.Status, &c.Commission.Cents)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrRecordNotFound
		}
		return nil, fmt.Errorf("scan consultation: %w", err)
	}
	c.ConsultationDate, err = loadDate(date)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
