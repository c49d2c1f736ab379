package core

// Fixed commissions for the flat-fee categories.
var (
	consultationFee = Money{Cents: 2000}  // 20.00 per consultation
	procedureFee    = Money{Cents: 20000} // 200.00 per procedure
)

// SaleCommission computes the commission for a sale from its type and
// total amount:
//
//	Installment-book  total × 0.50
//	Card              total × 0.05
//	Instant-transfer  (total / 12) × 0.20
//
// An unrecognized sale type earns zero, it is not an error.
func SaleCommission(saleType string, total Money) Money {
	switch saleType {
	case SaleTypeInstallmentBook:
		return total.MulRate(50, 100)
	case SaleTypeCard:
		return total.MulRate(5, 100)
	case SaleTypeInstantTransfer:
		// (total / 12) × 0.20 collapses to total / 60
		return total.MulRate(1, 60)
	default:
		return Money{}
	}
}

// CollectionCommission is 3% of the negotiated amount.
func CollectionCommission(negotiated Money) Money {
	return negotiated.MulRate(3, 100)
}

// ConsultationCommission is a flat 20.00 regardless of any other field.
func ConsultationCommission() Money {
	return consultationFee
}

// ProcedureCommission is a flat 200.00 regardless of any other field.
func ProcedureCommission() Money {
	return procedureFee
}
