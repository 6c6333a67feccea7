// Package seed loads a YAML catalog of ingredients and dishes into the engine.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

// Catalog is the on-disk seed format.
//
//	items:
//	  - name: Basmati Rice
//	    category: grains
//	    unit: kg
//	    unit_price: "92.50"
//	    min_threshold: "10"
//	    opening_quantity: "25"
//	dishes:
//	  - name: Veg Pulao
//	    servings_per_batch: 10
//	    selling_price_per_plate: "180"
//	    lines:
//	      - item: Basmati Rice
//	        quantity: "0.12"
//	        unit: kg
type Catalog struct {
	Items  []ItemSpec `yaml:"items"`
	Dishes []DishSpec `yaml:"dishes"`
}

// ItemSpec describes one inventory item. Amounts are strings so that
// decimals survive YAML float parsing unchanged.
type ItemSpec struct {
	Name            string `yaml:"name"`
	Category        string `yaml:"category"`
	Unit            string `yaml:"unit"`
	UnitPrice       string `yaml:"unit_price"`
	MinThreshold    string `yaml:"min_threshold"`
	TrackingMode    string `yaml:"tracking_mode"`
	OpeningQuantity string `yaml:"opening_quantity"`
}

// DishSpec describes one dish; lines name items rather than IDs.
type DishSpec struct {
	Name                 string     `yaml:"name"`
	Category             string     `yaml:"category"`
	Description          string     `yaml:"description"`
	ServingsPerBatch     int        `yaml:"servings_per_batch"`
	SellingPricePerPlate string     `yaml:"selling_price_per_plate"`
	Lines                []LineSpec `yaml:"lines"`
}

// LineSpec is a per-plate ingredient line
type LineSpec struct {
	Item     string `yaml:"item"`
	Quantity string `yaml:"quantity"`
	Unit     string `yaml:"unit"`
	Note     string `yaml:"note"`
}

// LoadCatalogFile reads and validates a catalog file
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// LoadCatalog decodes and validates a catalog. Unknown keys are rejected.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks names, amounts and that every dish line names an item in
// the catalog. It does not check units; the services do.
func (c *Catalog) Validate() error {
	var errs []error
	items := make(map[string]bool, len(c.Items))
	for i, it := range c.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("items[%d]: name is required", i))
			continue
		}
		if items[strings.ToLower(name)] {
			errs = append(errs, fmt.Errorf("items[%d]: duplicate item %q", i, name))
		}
		items[strings.ToLower(name)] = true
		if it.Unit == "" {
			errs = append(errs, fmt.Errorf("item %q: unit is required", name))
		}
		for field, v := range map[string]string{
			"unit_price": it.UnitPrice, "min_threshold": it.MinThreshold, "opening_quantity": it.OpeningQuantity,
		} {
			if _, err := optionalDecimal(v); err != nil {
				errs = append(errs, fmt.Errorf("item %q: %s: %w", name, field, err))
			}
		}
	}

	dishes := make(map[string]bool, len(c.Dishes))
	for i, d := range c.Dishes {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("dishes[%d]: name is required", i))
			continue
		}
		if dishes[strings.ToLower(name)] {
			errs = append(errs, fmt.Errorf("dishes[%d]: duplicate dish %q", i, name))
		}
		dishes[strings.ToLower(name)] = true
		if _, err := optionalDecimal(d.SellingPricePerPlate); err != nil {
			errs = append(errs, fmt.Errorf("dish %q: selling_price_per_plate: %w", name, err))
		}
		for j, l := range d.Lines {
			if !items[strings.ToLower(strings.TrimSpace(l.Item))] {
				errs = append(errs, fmt.Errorf("dish %q line %d: unknown item %q", name, j+1, l.Item))
			}
			if q, err := optionalDecimal(l.Quantity); err != nil || !q.IsPositive() {
				errs = append(errs, fmt.Errorf("dish %q line %d: quantity must be a positive number", name, j+1))
			}
		}
	}
	return errors.Join(errs...)
}

func optionalDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
