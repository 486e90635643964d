// Package application exposes the product use cases to entrypoints.
package application

import (
	"context"
	"errors"
	"reflect"

	"productapi/internal/domain"
)

// ErrNilService is returned by NewProductUseCase when no service is given.
var ErrNilService = errors.New("product service cannot be nil")

// ProductUseCase forwards every call to the domain service unchanged.
type ProductUseCase struct {
	products domain.ProductService
}

var _ domain.ProductService = (*ProductUseCase)(nil)

func NewProductUseCase(products domain.ProductService) (*ProductUseCase, error) {
	if isNil(products) {
		return nil, ErrNilService
	}
	return &ProductUseCase{products: products}, nil
}

func (u *ProductUseCase) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	return u.products.CreateProduct(ctx, p)
}

func (u *ProductUseCase) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	return u.products.GetProduct(ctx, id)
}

func (u *ProductUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return u.products.ListProducts(ctx)
}

func (u *ProductUseCase) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	return u.products.UpdateProduct(ctx, p)
}

func (u *ProductUseCase) DeleteProduct(ctx context.Context, id int64) error {
	return u.products.DeleteProduct(ctx, id)
}

// isNil also catches an interface holding a nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
