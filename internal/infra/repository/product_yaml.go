package repository

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog/products.yaml
var defaultCatalog []byte

// catalog file layout
type catalogFile struct {
	Products []productRecord `yaml:"products"`
}

type productRecord struct {
	ID           int64    `yaml:"id"`
	Name         string   `yaml:"name"`
	Price        string   `yaml:"price"`
	Image        string   `yaml:"image"`
	Description  string   `yaml:"description"`
	RoastOptions []string `yaml:"roasting_options"`
	Origin       string   `yaml:"origin"`
	Flavor       []string `yaml:"flavor"`
}

type ProductYAMLRepository struct {
	products []model.Product
	byID     map[int64]int
}

// NewDefaultProductRepository loads the embedded catalog.
func NewDefaultProductRepository() (*ProductYAMLRepository, error) {
	return NewProductYAMLRepository(bytes.NewReader(defaultCatalog))
}

// NewProductRepositoryFromFile loads path, or the embedded catalog when path is empty.
func NewProductRepositoryFromFile(path string) (*ProductYAMLRepository, error) {
	if path == "" {
		return NewDefaultProductRepository()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return NewProductYAMLRepository(f)
}

func NewProductYAMLRepository(r io.Reader) (*ProductYAMLRepository, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog is empty")
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(file.Products) == 0 {
		return nil, errors.New("catalog has no products")
	}

	out := &ProductYAMLRepository{
		products: make([]model.Product, 0, len(file.Products)),
		byID:     make(map[int64]int, len(file.Products)),
	}
	for i, rec := range file.Products {
		p, err := rec.toModel()
		if err != nil {
			return nil, fmt.Errorf("catalog product #%d: %w", i+1, err)
		}
		if _, dup := out.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog product #%d: duplicate id %d", i+1, p.ID)
		}
		out.byID[p.ID] = len(out.products)
		out.products = append(out.products, p)
	}
	return out, nil
}

func (rec productRecord) toModel() (model.Product, error) {
	if rec.ID <= 0 {
		return model.Product{}, fmt.Errorf("invalid id %d", rec.ID)
	}
	if strings.TrimSpace(rec.Name) == "" {
		return model.Product{}, errors.New("name is required")
	}

	price, err := decimal.NewFromString(rec.Price)
	if err != nil {
		return model.Product{}, fmt.Errorf("invalid price %q: %w", rec.Price, err)
	}
	if price.IsNegative() {
		return model.Product{}, fmt.Errorf("negative price %s", price)
	}

	//roast labels: at least one, no blanks, no duplicates
	if len(rec.RoastOptions) == 0 {
		return model.Product{}, errors.New("at least one roast option is required")
	}
	seen := make(map[string]bool, len(rec.RoastOptions))
	for _, r := range rec.RoastOptions {
		if strings.TrimSpace(r) == "" {
			return model.Product{}, errors.New("blank roast option")
		}
		if seen[r] {
			return model.Product{}, fmt.Errorf("duplicate roast option %q", r)
		}
		seen[r] = true
	}

	return model.Product{
		ID:           rec.ID,
		Name:         rec.Name,
		UnitPrice:    price,
		Image:        rec.Image,
		Description:  rec.Description,
		RoastOptions: rec.RoastOptions,
		Origin:       rec.Origin,
		Flavor:       rec.Flavor,
	}, nil
}

// List and FindByID hand out deep copies; the catalog is read-only.
func (r *ProductYAMLRepository) List(ctx context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func (r *ProductYAMLRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return cloneProduct(r.products[i]), nil
}

func cloneProduct(p model.Product) model.Product {
	p.RoastOptions = slices.Clone(p.RoastOptions)
	p.Flavor = slices.Clone(p.Flavor)
	return p
}
