package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"comissoes/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestUser(t *testing.T, s *Store, name string) *core.User {
	t.Helper()
	u := &core.User{Name: name, PasswordHash: "hash"}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user %q: %v", name, err)
	}
	return u
}

func TestUserRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "Ana Maria Souza")
	if u.ID == 0 {
		t.Fatal("expected user ID to be set")
	}

	got, err := s.GetUserByName(ctx, "ana maria souza")
	if err != nil {
		t.Fatalf("case-insensitive lookup failed: %v", err)
	}
	if got.ID != u.ID || got.Name != "Ana Maria Souza" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := s.GetUserByName(ctx, "nobody"); !errors.Is(err, core.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserNameUniqueCaseInsensitive(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	createTestUser(t, s, "Ana Maria Souza")
	dup := &core.User{Name: "ANA MARIA SOUZA", PasswordHash: "other"}
	if err := s.CreateUser(ctx, dup); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestUpdatePasswordHash(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "Ana")
	if err := s.UpdatePasswordHash(ctx, u.ID, "newhash"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	got, err := s.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.PasswordHash != "newhash" {
		t.Fatalf("expected updated hash, got %q", got.PasswordHash)
	}

	if err := s.UpdatePasswordHash(ctx, 9999, "x"); !errors.Is(err, core.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSaleRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, s, "Ana")

	sale := &core.Sale{
		OwnerID:    u.ID,
		ClientName: "Cliente",
		SaleDate:   core.NewDate(2024, 3, 10),
		SaleType:   core.SaleTypeCard,
		Total:      core.Money{Cents: 100000},
		Commission: core.Money{Cents: 5000},
	}
	if err := s.CreateSale(ctx, sale); err != nil {
		t.Fatalf("create sale: %v", err)
	}

	got, err := s.GetSale(ctx, sale.ID)
	if err != nil {
		t.Fatalf("get sale: %v", err)
	}
	if got.SaleDate != core.NewDate(2024, 3, 10) {
		t.Fatalf("date did not round-trip: %v", got.SaleDate)
	}
	if got.Commission.Cents != 5000 {
		t.Fatalf("commission expected 5000, got %d", got.Commission.Cents)
	}

	got.ClientName = "Outro"
	got.Total = core.Money{Cents: 20000}
	got.Commission = core.Money{Cents: 1000}
	if err := s.UpdateSale(ctx, got); err != nil {
		t.Fatalf("update sale: %v", err)
	}
	again, err := s.GetSale(ctx, sale.ID)
	if err != nil {
		t.Fatalf("get sale after update: %v", err)
	}
	if again.ClientName != "Outro" || again.Total.Cents != 20000 {
		t.Fatalf("update not persisted: %+v", again)
	}

	if err := s.DeleteSale(ctx, sale.ID); err != nil {
		t.Fatalf("delete sale: %v", err)
	}
	if _, err := s.GetSale(ctx, sale.ID); !errors.Is(err, core.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if err := s.DeleteSale(ctx, sale.ID); !errors.Is(err, core.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound on double delete, got %v", err)
	}
}

func TestListScopedByOwner(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	ana := createTestUser(t, s, "Ana")
	rui := createTestUser(t, s, "Rui")

	for i, owner := range []int64{ana.ID, ana.ID, rui.ID} {
		sale := &core.Sale{
			OwnerID:    owner,
			ClientName: "Cliente",
			SaleDate:   core.NewDate(2024, 3, 10+i),
			SaleType:   core.SaleTypeCard,
			Total:      core.Money{Cents: 10000},
			Commission: core.Money{Cents: 500},
		}
		if err := s.CreateSale(ctx, sale); err != nil {
			t.Fatalf("create sale: %v", err)
		}
	}

	mine, err := s.ListSalesByOwner(ctx, ana.ID)
	if err != nil {
		t.Fatalf("list sales: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 sales for owner, got %d", len(mine))
	}
	// Most recent first
	if !mine[0].SaleDate.After(mine[1].SaleDate.Time) {
		t.Fatalf("expected descending date order: %v then %v", mine[0].SaleDate, mine[1].SaleDate)
	}
	for _, sale := range mine {
		if sale.OwnerID != ana.ID {
			t.Fatalf("cross-user leakage: %+v", sale)
		}
	}
}

func TestCollectionConsultationProcedureRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, s, "Ana")

	col := &core.Collection{
		OwnerID:         u.ID,
		ClientName:      "Cliente",
		NegotiationDate: core.NewDate(2024, 2, 1),
		Negotiated:      core.Money{Cents: 50000},
		Commission:      core.Money{Cents: 1500},
	}
	if err := s.CreateCollection(ctx, col); err != nil {
		t.Fatalf("create collection: %v", err)
	}
	con := &core.Consultation{
		OwnerID:          u.ID,
		ClientName:       "Cliente",
		ConsultationDate: core.NewDate(2024, 2, 2),
		Status:           core.DefaultConsultationStatus,
		Commission:       core.Money{Cents: 2000},
	}
	if err := s.CreateConsultation(ctx, con); err != nil {
		t.Fatalf("create consultation: %v", err)
	}
	pro := &core.Procedure{
		OwnerID:       u.ID,
		ClientName:    "Cliente",
		ProcedureDate: core.NewDate(2024, 2, 3),
		ProcedureType: core.DefaultProcedureType,
		Commission:    core.Money{Cents: 20000},
	}
	if err := s.CreateProcedure(ctx, pro); err != nil {
		t.Fatalf("create procedure: %v", err)
	}

	cols, err := s.ListCollectionsByOwner(ctx, u.ID)
	if err != nil || len(cols) != 1 {
		t.Fatalf("expected 1 collection, got %d (err=%v)", len(cols), err)
	}
	cons, err := s.ListConsultationsByOwner(ctx, u.ID)
	if err != nil || len(cons) != 1 {
		t.Fatalf("expected 1 consultation, got %d (err=%v)", len(cons), err)
	}
	if cons[0].Status != core.DefaultConsultationStatus {
		t.Fatalf("unexpected status %q", cons[0].Status)
	}
	pros, err := s.ListProceduresByOwner(ctx, u.ID)
	if err != nil || len(pros) != 1 {
		t.Fatalf("expected 1 procedure, got %d (err=%v)", len(pros), err)
	}
	if pros[0].ProcedureType != core.DefaultProcedureType {
		t.Fatalf("unexpected procedure type %q", pros[0].ProcedureType)
	}
}

func TestAuditTrail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		e := &AuditEntry{
			Category:        "vendas",
			Action:          "created",
			RecordID:        int64(i + 1),
			OwnerID:         1,
			CommissionCents: 500,
		}
		if err := s.InsertAuditEntry(ctx, e); err != nil {
			t.Fatalf("insert audit entry: %v", err)
		}
	}

	entries, err := s.ListRecentAuditEntries(ctx, 2)
	if err != nil {
		t.Fatalf("list audit entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].RecordID != 3 {
		t.Fatalf("expected newest first, got record %d", entries[0].RecordID)
	}
}
