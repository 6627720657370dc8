package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

// RequiredCSVHeaders are the columns a catalog CSV must carry, in the
// canonical export order. Imports accept any column order.
var RequiredCSVHeaders = []string{"name", "hsCode", "unitPriceValue", "unitPriceCurrency"}

// ParseCSV reads a catalog CSV. The import is all-or-nothing: a missing
// required header or a non-numeric price rejects the whole file and no
// partial catalog is produced.
func ParseCSV(r io.Reader) ([]model.CatalogEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV file is empty or missing headers")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.TrimSpace(h)] = i
	}
	for _, required := range RequiredCSVHeaders {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("CSV file must contain the following headers: %s", strings.Join(RequiredCSVHeaders, ", "))
		}
	}

	cell := func(row []string, name string) string {
		idx := columns[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var entries []model.CatalogEntry
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}

		priceRaw := cell(row, "unitPriceValue")
		amount, err := decimal.NewFromString(priceRaw)
		if err != nil {
			return nil, fmt.Errorf("invalid number for unitPriceValue on line %d: %q", line, priceRaw)
		}

		entries = append(entries, model.CatalogEntry{
			Name:   cell(row, "name"),
			HSCode: cell(row, "hsCode"),
			UnitPrice: model.MonetaryValue{
				Amount:   amount,
				Currency: cell(row, "unitPriceCurrency"),
			},
		})
	}
	return entries, nil
}

// WriteCSV writes the catalog in the canonical export format.
func WriteCSV(w io.Writer, entries []model.CatalogEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(RequiredCSVHeaders); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, e := range entries {
		row := []string{e.Name, e.HSCode, e.UnitPrice.Amount.String(), e.UnitPrice.Currency}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
