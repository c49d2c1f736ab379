package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"comissoes/internal/core"
)

func (s *Store) CreateSale(ctx context.Context, sale *core.Sale) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO vendas (owner_id, client_name, sale_date, sale_type, total_cents, commission_cents)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sale.OwnerID, sale.ClientName, storeDate(sale.SaleDate), sale.SaleType,
		sale.Total.Cents, sale.Commission.Cents)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sale insert id: %w", err)
	}
	sale.ID = id
	return nil
}

func (s *Store) GetSale(ctx context.Context, id int64) (*core.Sale, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, client_name, sale_date, sale_type, total_cents, commission_cents
		 FROM vendas WHERE id = ?`, id)
	return scanSale(row.Scan)
}

// ListSalesByOwner returns the user's sales, most recent first.
func (s *Store) ListSalesByOwner(ctx context.Context, ownerID int64) ([]core.Sale, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, client_name, sale_date, sale_type, total_cents, commission_cents
		 FROM vendas WHERE owner_id = ? ORDER BY sale_date DESC, id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []core.Sale
	for rows.Next() {
		sale, err := scanSale(rows.Scan)
		if err != nil {
			return nil, err
		}
		sales = append(sales, *sale)
	}
	return sales, rows.Err()
}

func (s *Store) UpdateSale(ctx context.Context, sale *core.Sale) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE vendas SET client_name = ?, sale_date = ?, sale_type = ?, total_cents = ?, commission_cents = ?
		 WHERE id = ?`,
		sale.ClientName, storeDate(sale.SaleDate), sale.SaleType,
		sale.Total.Cents, sale.Commission.Cents, sale.ID)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return checkAffected(res)
}

func (s *Store) DeleteSale(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM vendas WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return checkAffected(res)
}

func scanSale(scan func(...any) error) (*core.Sale, error) {
	var (
		sale core.Sale
		date string
	)
	err := scan(&sale.ID, &sale.OwnerID, &sale.ClientName, &date,
		&sale.SaleType, &sale.Total.Cents, &sale.Commission.Cents)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrRecordNotFound
		}
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	sale.SaleDate, err = loadDate(date)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrRecordNotFound
	}
	return nil
}
