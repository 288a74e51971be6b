// Package csv converts between buyer records and the delimited exchange
// format used by bulk import/export. The column set is fixed and identical in
// both directions, so an exported file re-imports cleanly.
package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xavierca1/buyer-intake/internal/entity"
)

// MaxImportRows caps a single import. The limit exists purely to bound
// per-call cost; files above it are rejected before any row is examined.
const MaxImportRows = 200

// ErrTooManyRows is returned when an import file exceeds MaxImportRows data rows.
var ErrTooManyRows = fmt.Errorf("import exceeds %d data rows", MaxImportRows)

// Headers is the canonical column order. Identity fields (id, ownerId,
// updatedAt) are never part of the file format.
var Headers = []string{
	"fullName", "email", "phone", "city", "propertyType", "bhk",
	"purpose", "budgetMin", "budgetMax", "timeline", "source",
	"status", "notes", "tags",
}

// DecodeRows parses raw CSV text into header-keyed rows. The first non-empty
// line is the header; header names and every cell are trimmed and fully empty
// lines are skipped. Rows shorter than the header simply lack those keys,
// which the caller reports as missing headers.
func DecodeRows(content string) ([]map[string]string, error) {
	r := stdcsv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}

	var header []string
	var data [][]string
	for _, rec := range records {
		if isEmptyRecord(rec) {
			continue
		}
		if header == nil {
			header = make([]string, len(rec))
			for i, h := range rec {
				header[i] = strings.TrimSpace(h)
			}
			continue
		}
		data = append(data, rec)
	}
	if header == nil {
		return nil, errors.New("csv has no header row")
	}
	if len(data) > MaxImportRows {
		return nil, ErrTooManyRows
	}

	rows := make([]map[string]string, 0, len(data))
	for _, rec := range data {
		row := make(map[string]string, len(header))
		for i, cell := range rec {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Encode serializes buyers into CSV text in the canonical column order.
// Absent optional fields render as empty cells; tags pack comma-joined into
// a single cell.
func Encode(buyers []entity.Buyer) (string, error) {
	var sb strings.Builder
	w := stdcsv.NewWriter(&sb)

	if err := w.Write(Headers); err != nil {
		return "", err
	}
	for i := range buyers {
		if err := w.Write(record(&buyers[i])); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func record(b *entity.Buyer) []string {
	return []string{
		b.FullName,
		b.Email,
		b.Phone,
		b.City,
		b.PropertyType,
		b.BHK,
		b.Purpose,
		strconv.Itoa(b.BudgetMin),
		strconv.Itoa(b.BudgetMax),
		b.Timeline,
		b.Source,
		b.Status,
		b.Notes,
		strings.Join(b.Tags, ","),
	}
}

func isEmptyRecord(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
