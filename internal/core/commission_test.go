package core

import "testing"

func TestSaleCommission(t *testing.T) {
	cases := []struct {
		name     string
		saleType string
		total    int64
		want     int64
	}{
		{"installment book is half", SaleTypeInstallmentBook, 100000, 50000},
		{"card is five percent", SaleTypeCard, 100000, 5000},
		{"instant transfer is a sixtieth", SaleTypeInstantTransfer, 100000, 1667},
		{"unknown type earns nothing", "Cheque", 100000, 0},
		{"empty type earns nothing", "", 100000, 0},
		{"case sensitive type", "card", 100000, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SaleCommission(tc.saleType, Money{Cents: tc.total})
			if got.Cents != tc.want {
				t.Fatalf("type %q total %d expected %d, got %d", tc.saleType, tc.total, tc.want, got.Cents)
			}
		})
	}
}

func TestCollectionCommission(t *testing.T) {
	// 500.00 negotiated -> 15.00
	if got := CollectionCommission(Money{Cents: 50000}); got.Cents != 1500 {
		t.Fatalf("expected 1500, got %d", got.Cents)
	}
	// 0.33 negotiated -> 0.0099 rounds to 0.01
	if got := CollectionCommission(Money{Cents: 33}); got.Cents != 1 {
		t.Fatalf("expected 1, got %d", got.Cents)
	}
}

func TestFixedCommissions(t *testing.T) {
	if got := ConsultationCommission(); got.Cents != 2000 {
		t.Fatalf("consultation expected 2000, got %d", got.Cents)
	}
	if got := ProcedureCommission(); got.Cents != 20000 {
		t.Fatalf("procedure expected 20000, got %d", got.Cents)
	}
}
