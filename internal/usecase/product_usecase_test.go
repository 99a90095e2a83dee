package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// List
// =====================

func TestProductUsecase_ListProducts_All(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("List", mock.Anything).Return(catalog(), nil)

	out, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Total)
	require.Len(t, out.Items, 4)
	assert.Equal(t, "24.99", out.Items[0].Price)
	assert.Equal(t, []string{"Light Roast", "Medium Roast", "Medium-Dark Roast"}, out.Items[0].RoastingOptions)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_ListProducts_Filters(t *testing.T) {
	cases := []struct {
		name string
		in   usecase.ListProductsInput
		want []int64
	}{
		{name: "origin is case-insensitive", in: usecase.ListProductsInput{Origin: "ethiopia"}, want: []int64{1, 4}},
		{name: "roast", in: usecase.ListProductsInput{Roast: "Dark Roast"}, want: []int64{2, 3}},
		{name: "q matches name", in: usecase.ListProductsInput{Q: "supremo"}, want: []int64{2}},
		{name: "q matches flavor", in: usecase.ListProductsInput{Q: "chocolate"}, want: []int64{2, 4}},
		{name: "q matches origin", in: usecase.ListProductsInput{Q: " Guatemala "}, want: []int64{3}},
		{name: "combined", in: usecase.ListProductsInput{Origin: "Ethiopia", Roast: "Medium-Dark Roast"}, want: []int64{1}},
		{name: "no match", in: usecase.ListProductsInput{Q: "decaf"}, want: []int64{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pRepo := new(ProductRepoMock)
			pRepo.On("List", mock.Anything).Return(catalog(), nil)
			uc := usecase.NewProductUsecase(pRepo)

			out, err := uc.ListProducts(context.Background(), tc.in)
			require.NoError(t, err)

			got := make([]int64, 0, len(out.Items))
			for _, it := range out.Items {
				got = append(got, it.ID)
			}
			assert.Equal(t, tc.want, got)
			assert.Equal(t, len(tc.want), out.Total)
		})
	}
}

func TestProductUsecase_ListProducts_QueryTooLong(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock))

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Q: strings.Repeat("a", 101)})
	assertHTTPError(t, err, http.StatusBadRequest, "q too long")
}

func TestProductUsecase_ListProducts_RepoError(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("List", mock.Anything).Return(nil, errors.New("boom"))
	uc := usecase.NewProductUsecase(pRepo)

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{})
	assertHTTPError(t, err, http.StatusInternalServerError, "catalog error")
}

// =====================
// Detail
// =====================

func TestProductUsecase_GetProductDetail_Success(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(3)).Return(antigua(), nil)
	uc := usecase.NewProductUsecase(pRepo)

	out, err := uc.GetProductDetail(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Guatemala Antigua", out.Name)
	assert.Equal(t, "26.99", out.Price)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_GetProductDetail_InvalidID(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock))

	_, err := uc.GetProductDetail(context.Background(), 0)
	assertHTTPError(t, err, http.StatusBadRequest, "invalid product id")
}

func TestProductUsecase_GetProductDetail_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)
	uc := usecase.NewProductUsecase(pRepo)

	_, err := uc.GetProductDetail(context.Background(), 99)
	assertErrContains(t, err, "not found")
	assertHTTPError(t, err, http.StatusNotFound, "not found")
}

// =====================
// Home / Origins
// =====================

func TestProductUsecase_HomeSections(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("List", mock.Anything).Return(catalog(), nil)
	uc := usecase.NewProductUsecase(pRepo)

	out, err := uc.HomeSections(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Featured, 3)
	require.Len(t, out.More, 1)
	assert.Equal(t, int64(1), out.Featured[0].ID)
	assert.Equal(t, int64(4), out.More[0].ID)
}

func TestProductUsecase_HomeSections_SmallCatalog(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("List", mock.Anything).Return([]model.Product{yirgacheffe()}, nil)
	uc := usecase.NewProductUsecase(pRepo)

	out, err := uc.HomeSections(context.Background())
	require.NoError(t, err)
	assert.Len(t, out.Featured, 1)
	assert.Empty(t, out.More)
}

func TestProductUsecase_Origins(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("List", mock.Anything).Return(catalog(), nil)
	uc := usecase.NewProductUsecase(pRepo)

	out, err := uc.Origins(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ethiopia", "Colombia", "Guatemala"}, out)
}
