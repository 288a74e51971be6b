package usecase

import "github.com/xavierca1/buyer-intake/internal/entity"

// RowError carries the failures of one import row. Index is 0-based over the
// decoded data rows (header excluded).
type RowError struct {
	Index  int      `json:"index"`
	Errors []string `json:"errors"`
}

// ImportOutcome partitions an import into persisted records and rejected
// rows. A row is all-or-nothing; there is no partially accepted record.
type ImportOutcome struct {
	Valid    []entity.Buyer `json:"-"`
	Inserted int            `json:"inserted"`
	Errors   []RowError     `json:"errors"`
}

type ListBuyersOutput struct {
	Total int            `json:"total"`
	Items []entity.Buyer `json:"items"`
}
