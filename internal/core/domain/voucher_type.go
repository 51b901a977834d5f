package domain

import "fmt"

// VoucherType classifies journal entries (e.g. ingreso, egreso, diario) and
// owns the document-number counter for its entries. NextNumber is the only
// mutable state; formatting is a pure function of the configured pattern.
type VoucherType struct {
	VoucherTypeID string `json:"voucherTypeID"`
	Name          string `json:"name"`
	Prefix        string `json:"prefix"`
	Padding       int    `json:"padding"`
	NextNumber    int64  `json:"nextNumber"`
	AuditFields
}

// FormatNumber renders a counter value using the type's prefix and zero padding.
func (t VoucherType) FormatNumber(n int64) string {
	if t.Padding <= 0 {
		return fmt.Sprintf("%s%d", t.Prefix, n)
	}
	return fmt.Sprintf("%s%0*d", t.Prefix, t.Padding, n)
}
