package catalog

import (
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"go.yaml.in/yaml/v3"

	"studentsites/internal/domain"
)

//go:embed packages.yaml
var defaultPackages []byte

type file struct {
	Currency string        `yaml:"currency"`
	Packages []packageEntry `yaml:"packages"`
}

type packageEntry struct {
	Type     string   `yaml:"type"`
	Title    string   `yaml:"title"`
	Price    string   `yaml:"price"`
	Features []string `yaml:"features"`
	Popular  bool     `yaml:"popular"`
}

// Catalog is the fixed list of service tiers and their base prices.
type Catalog struct {
	currency string
	packages []domain.Package
}

func Default() (*Catalog, error) {
	return Parse(defaultPackages)
}

// Parse reads a catalog document. Every package type must appear exactly
// once and carry a positive whole-unit price.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	seen := make(map[domain.PackageType]bool)
	packages := make([]domain.Package, 0, len(f.Packages))
	for _, entry := range f.Packages {
		pkg, ok := domain.ParsePackageType(entry.Type)
		if !ok {
			return nil, fmt.Errorf("catalog: unknown package type %q", entry.Type)
		}
		if seen[pkg] {
			return nil, fmt.Errorf("catalog: duplicate package type %q", entry.Type)
		}
		seen[pkg] = true

		price, err := decimal.NewFromString(entry.Price)
		if err != nil {
			return nil, fmt.Errorf("catalog: price of %s: %w", entry.Type, err)
		}
		if !price.IsPositive() || !price.Equal(price.Truncate(0)) {
			return nil, fmt.Errorf("catalog: price of %s must be a positive whole amount", entry.Type)
		}

		packages = append(packages, domain.Package{
			Type:     pkg,
			Title:    entry.Title,
			Price:    price,
			Features: entry.Features,
			Popular:  entry.Popular,
		})
	}

	for _, pkg := range domain.PackageTypes() {
		if !seen[pkg] {
			return nil, fmt.Errorf("catalog: package %q missing", pkg)
		}
	}

	return &Catalog{currency: f.Currency, packages: packages}, nil
}

func (c *Catalog) Currency() string {
	return c.currency
}

// Packages returns the packages in catalog order.
func (c *Catalog) Packages() []domain.Package {
	out := make([]domain.Package, len(c.packages))
	copy(out, c.packages)
	return out
}

func (c *Catalog) Find(pkg domain.PackageType) (domain.Package, bool) {
	for _, p := range c.packages {
		if p.Type == pkg {
			return p, true
		}
	}
	return domain.Package{}, false
}
