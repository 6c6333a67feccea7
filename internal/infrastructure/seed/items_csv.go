package seed

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Item CSV errors
var (
	ErrEmptyFile       = errors.New("csv file is empty")
	ErrInvalidEncoding = errors.New("csv file is not valid UTF-8")
	ErrMissingHeader   = errors.New("csv header row is missing")
)

// itemColumns maps accepted CSV headers to ItemSpec fields. Headers are
// matched case-insensitively; unknown columns are ignored.
var itemColumns = map[string]func(*ItemSpec, string){
	"name":             func(s *ItemSpec, v string) { s.Name = v },
	"category":         func(s *ItemSpec, v string) { s.Category = v },
	"unit":             func(s *ItemSpec, v string) { s.Unit = v },
	"unit_price":       func(s *ItemSpec, v string) { s.UnitPrice = v },
	"min_threshold":    func(s *ItemSpec, v string) { s.MinThreshold = v },
	"tracking_mode":    func(s *ItemSpec, v string) { s.TrackingMode = v },
	"opening_quantity": func(s *ItemSpec, v string) { s.OpeningQuantity = v },
}

var requiredItemColumns = []string{"name", "unit"}

// RowError reports a problem on one CSV line (1-indexed, header is line 1)
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// LoadItemsCSVFile reads an ingredient price list exported from a spreadsheet
func LoadItemsCSVFile(path string) ([]ItemSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open items csv: %w", err)
	}
	defer f.Close()
	return LoadItemsCSV(f)
}

// LoadItemsCSV parses items from CSV. A UTF-8 byte order mark is dropped.
// Blank rows are skipped.
func LoadItemsCSV(r io.Reader) ([]ItemSpec, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	if err != nil {
		return nil, fmt.Errorf("read items csv: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, &RowError{Line: 1, Err: err}
	}

	columns := make([]string, len(header))
	present := make(map[string]bool, len(header))
	for i, h := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(h))
		present[columns[i]] = true
	}
	var missing []string
	for _, c := range requiredItemColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrMissingHeader, strings.Join(missing, ", "))
	}

	var (
		items []ItemSpec
		errs  []error
	)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errs = append(errs, &RowError{Line: line, Err: err})
			continue
		}
		if blank(record) {
			continue
		}

		var spec ItemSpec
		for i, value := range record {
			if i >= len(columns) {
				break
			}
			if set, ok := itemColumns[columns[i]]; ok {
				set(&spec, strings.TrimSpace(value))
			}
		}
		if spec.Name == "" {
			errs = append(errs, &RowError{Line: line, Err: errors.New("name is required")})
			continue
		}
		items = append(items, spec)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return items, nil
}

// MergeItems adds CSV items to the catalog. A CSV row replaces a catalog item
// with the same name so a fresh price list wins over the YAML defaults.
func (c *Catalog) MergeItems(items []ItemSpec) error {
	index := make(map[string]int, len(c.Items))
	for i, it := range c.Items {
		index[strings.ToLower(strings.TrimSpace(it.Name))] = i
	}
	for _, it := range items {
		key := strings.ToLower(strings.TrimSpace(it.Name))
		if i, ok := index[key]; ok {
			c.Items[i] = it
			continue
		}
		index[key] = len(c.Items)
		c.Items = append(c.Items, it)
	}
	return c.Validate()
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
