package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// the home page shows this many products as large cards
const featuredCount = 3

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

type ProductDTO struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Price           string   `json:"price"`
	Image           string   `json:"image"`
	Description     string   `json:"description"`
	RoastingOptions []string `json:"roasting_options"`
	Origin          string   `json:"origin"`
	Flavor          []string `json:"flavor"`
}

func toProductDTO(p model.Product) ProductDTO {
	return ProductDTO{
		ID:              p.ID,
		Name:            p.Name,
		Price:           p.UnitPrice.StringFixed(2),
		Image:           p.Image,
		Description:     p.Description,
		RoastingOptions: p.RoastOptions,
		Origin:          p.Origin,
		Flavor:          p.Flavor,
	}
}

func toProductDTOs(ps []model.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductDTO(p))
	}
	return out
}

// GET /products
type ListProductsInput struct {
	Q      string
	Origin string
	Roast  string
}

type ProductListOutput struct {
	Items []ProductDTO `json:"items"`
	Total int          `json:"total"`
}

type HomeSectionsOutput struct {
	Featured []ProductDTO `json:"featured"`
	More     []ProductDTO `json:"more"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}

	all, err := u.productRepo.List(ctx)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}

	q := strings.ToLower(strings.TrimSpace(in.Q))
	items := make([]ProductDTO, 0, len(all))
	for _, p := range all {
		if in.Origin != "" && !strings.EqualFold(p.Origin, in.Origin) {
			continue
		}
		if in.Roast != "" && !p.OffersRoast(in.Roast) {
			continue
		}
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		items = append(items, toProductDTO(p))
	}

	return ProductListOutput{Items: items, Total: len(items)}, nil
}

// case-insensitive match on name, origin and flavor notes
func matchesQuery(p model.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Origin), q) {
		return true
	}
	for _, f := range p.Flavor {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (ProductDTO, error) {
	if productID <= 0 {
		return ProductDTO{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductDTO{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductDTO{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}
	return toProductDTO(p), nil
}

// HomeSections splits the catalog into the featured row and the rest.
func (u *ProductUsecase) HomeSections(ctx context.Context) (HomeSectionsOutput, error) {
	all, err := u.productRepo.List(ctx)
	if err != nil {
		return HomeSectionsOutput{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}

	n := min(featuredCount, len(all))
	return HomeSectionsOutput{
		Featured: toProductDTOs(all[:n]),
		More:     toProductDTOs(all[n:]),
	}, nil
}

// Origins lists distinct origins in catalog order.
func (u *ProductUsecase) Origins(ctx context.Context) ([]string, error) {
	all, err := u.productRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}

	seen := make(map[string]bool, len(all))
	out := make([]string, 0, len(all))
	for _, p := range all {
		if p.Origin == "" || seen[p.Origin] {
			continue
		}
		seen[p.Origin] = true
		out = append(out, p.Origin)
	}
	return out, nil
}
