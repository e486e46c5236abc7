package utils

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"app/models"
)

// RequiredColumns are the columns a sales CSV must carry, matched
// case-insensitively.
var RequiredColumns = []string{"date", "product_name", "quantity_sold", "price", "revenue"}

// MissingColumns returns the required columns absent from the header.
func MissingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, c := range header {
		present[strings.ToLower(strings.TrimSpace(c))] = true
	}
	missing := []string{}
	for _, c := range RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// ParseSalesCSV parses raw CSV text into sales rows. Column order is free;
// headers are matched case-insensitively. Rows with an unparseable date or an
// empty product name are dropped rather than reported, and unparseable
// numbers coerce to 0 — merchant exports are messy and a bad row should
// never sink the whole upload. A header missing required columns is the one
// hard error.
func ParseSalesCSV(text string) ([]models.SalesRow, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV is empty")
	}

	header := records[0]
	if missing := MissingColumns(header); len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	index := make(map[string]int, len(header))
	for i, c := range header {
		index[strings.ToLower(strings.TrimSpace(c))] = i
	}

	rows := make([]models.SalesRow, 0, len(records)-1)
	for _, record := range records[1:] {
		field := func(name string) string {
			i := index[name]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		date, err := ParseFlexibleDate(field("date"))
		if err != nil {
			continue
		}
		name := field("product_name")
		if name == "" {
			continue
		}

		rows = append(rows, models.SalesRow{
			Date:         date,
			ProductName:  name,
			QuantitySold: parseNumber(field("quantity_sold")),
			Price:        parseNumber(field("price")),
			Revenue:      parseNumber(field("revenue")),
		})
	}
	return rows, nil
}

// ParseFlexibleDate tries the date formats merchant exports actually use.
func ParseFlexibleDate(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		"2006-01-02",
		"02/01/2006",
		"01-02-2006",
	}
	var lastErr error
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// parseNumber coerces a numeric field, treating anything unparseable as 0.
func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
