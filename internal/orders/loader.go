package orders

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// LoadStats describes what a loader kept and what it had to drop.
type LoadStats struct {
	Path    string `json:"path"`
	Rows    int    `json:"rows"`
	Kept    int    `json:"kept"`
	Dropped int    `json:"dropped"`
}

// ErrUnsupportedFormat is returned for file extensions no loader understands.
var ErrUnsupportedFormat = errors.New("unsupported order file format")

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
}

// column aliases seen in marketplace exports
var columnAliases = map[string][]string{
	"order_id":       {"order_id", "amazon-order-id", "order-id", "orderid"},
	"purchase_date":  {"purchase_date", "purchase-date", "order_date", "order-date"},
	"return_date":    {"return_date", "return-date", "returned_date"},
	"units_sold":     {"units_sold", "quantity", "qty", "units"},
	"units_returned": {"units_returned", "returned_quantity", "return_quantity", "returned-units"},
	"product_id":     {"product_id", "asin", "fasin", "sku", "product"},
}

// LoadFile reads order records from a CSV, XLSX or JSONL file.
func LoadFile(path string) ([]OrderRecord, LoadStats, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, LoadStats{Path: path}, fmt.Errorf("failed to open orders file: %w", err)
		}
		defer f.Close()
		records, stats, err := ReadCSV(f)
		stats.Path = path
		return records, stats, err
	case ".xlsx":
		return readXLSX(path)
	case ".jsonl", ".ndjson":
		f, err := os.Open(path)
		if err != nil {
			return nil, LoadStats{Path: path}, fmt.Errorf("failed to open orders file: %w", err)
		}
		defer f.Close()
		records, stats, err := ReadJSONL(f)
		stats.Path = path
		return records, stats, err
	default:
		return nil, LoadStats{Path: path}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadCSV parses a header-led CSV stream.
func ReadCSV(r io.Reader) ([]OrderRecord, LoadStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to read csv: %w", err)
	}
	return fromRows(rows)
}

func readXLSX(path string) ([]OrderRecord, LoadStats, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, LoadStats{Path: path}, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, LoadStats{Path: path}, fmt.Errorf("excel file %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, LoadStats{Path: path}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	records, stats, err := fromRows(rows)
	stats.Path = path
	return records, stats, err
}

type jsonRecord struct {
	OrderID       string `json:"order_id"`
	PurchaseDate  string `json:"purchase_date"`
	ReturnDate    string `json:"return_date"`
	UnitsSold     int    `json:"units_sold"`
	UnitsReturned int    `json:"units_returned"`
	ProductID     string `json:"product_id"`
}

// ReadJSONL parses one JSON object per line. Invalid lines are skipped.
func ReadJSONL(r io.Reader) ([]OrderRecord, LoadStats, error) {
	var records []OrderRecord
	var stats LoadStats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.Rows++

		var raw jsonRecord
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			log.Warn().Err(err).Int("line", stats.Rows).Msg("Skipping invalid JSON line in orders file")
			stats.Dropped++
			continue
		}

		rec, err := buildRecord(raw.OrderID, raw.PurchaseDate, raw.ReturnDate, raw.ProductID, raw.UnitsSold, raw.UnitsReturned)
		if err != nil {
			log.Debug().Err(err).Int("line", stats.Rows).Msg("Dropping order line")
			stats.Dropped++
			continue
		}
		records = append(records, rec)
		stats.Kept++
	}

	if err := scanner.Err(); err != nil {
		return records, stats, fmt.Errorf("error reading orders: %w", err)
	}
	return records, stats, nil
}

func fromRows(rows [][]string) ([]OrderRecord, LoadStats, error) {
	var stats LoadStats
	if len(rows) == 0 {
		return nil, stats, nil
	}

	cols := resolveColumns(rows[0])
	if _, ok := cols["purchase_date"]; !ok {
		return nil, stats, fmt.Errorf("orders header has no purchase date column (got %v)", rows[0])
	}
	if _, ok := cols["units_sold"]; !ok {
		return nil, stats, fmt.Errorf("orders header has no units sold column (got %v)", rows[0])
	}

	records := make([]OrderRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		stats.Rows++

		get := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		sold, err := parseCount(get("units_sold"))
		if err != nil {
			log.Debug().Err(err).Int("row", i+2).Msg("Dropping order row with invalid units sold")
			stats.Dropped++
			continue
		}
		returned, err := parseCount(get("units_returned"))
		if err != nil {
			log.Debug().Err(err).Int("row", i+2).Msg("Dropping order row with invalid units returned")
			stats.Dropped++
			continue
		}

		rec, err := buildRecord(get("order_id"), get("purchase_date"), get("return_date"), get("product_id"), sold, returned)
		if err != nil {
			log.Debug().Err(err).Int("row", i+2).Msg("Dropping order row")
			stats.Dropped++
			continue
		}
		records = append(records, rec)
		stats.Kept++
	}

	return records, stats, nil
}

func buildRecord(orderID, purchase, ret, productID string, sold, returned int) (OrderRecord, error) {
	if purchase == "" {
		return OrderRecord{}, errors.New("missing purchase date")
	}
	pd, err := ParseDate(purchase)
	if err != nil {
		return OrderRecord{}, err
	}
	if sold < 0 || returned < 0 {
		return OrderRecord{}, fmt.Errorf("negative units (sold=%d, returned=%d)", sold, returned)
	}

	rec := OrderRecord{
		OrderID:       orderID,
		PurchaseDate:  pd,
		UnitsSold:     sold,
		UnitsReturned: returned,
		ProductID:     productID,
	}
	if ret != "" {
		rd, err := ParseDate(ret)
		if err != nil {
			return OrderRecord{}, err
		}
		rec.ReturnDate = &rd
	}
	return rec, nil
}

// ParseDate accepts the date layouts found in order exports and returns the calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	// spreadsheets like to render integers as "3.0"
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid count %q: not a whole number", s)
	}
	return int(f), nil
}

func resolveColumns(header []string) map[string]int {
	index := make(map[string]int)
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cols := make(map[string]int)
	for canonical, aliases := range columnAliases {
		for _, alias := range aliases {
			if idx, ok := index[alias]; ok {
				cols[canonical] = idx
				break
			}
		}
	}
	return cols
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
