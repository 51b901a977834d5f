package domain

// NormalBalance defines whether an account's balance is conventionally
// debit-positive or credit-positive.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// Account is chart-of-accounts metadata consumed from the configuration
// module. The ledger core references accounts by ID but never mutates them.
type Account struct {
	AccountID     string        `json:"accountID"`
	Code          string        `json:"code"` // Unique, hierarchical (e.g. "1105.05")
	Name          string        `json:"name"`
	NormalBalance NormalBalance `json:"normalBalance"`
	AllowsEntries bool          `json:"allowsEntries"` // Only leaf accounts receive lines
	IsActive      bool          `json:"isActive"`
}
