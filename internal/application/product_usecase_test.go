package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"productapi/internal/domain"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockService) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.Product)
	return list, args.Error(1)
}

func (m *mockService) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockService) DeleteProduct(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestNewProductUseCase_NilService(t *testing.T) {
	_, err := NewProductUseCase(nil)
	assert.ErrorIs(t, err, ErrNilService)

	var svc *mockService
	_, err = NewProductUseCase(svc)
	assert.ErrorIs(t, err, ErrNilService)
}

func TestProductUseCase_ForwardsUnchanged(t *testing.T) {
	ctx := context.Background()
	svc := &mockService{}
	uc, err := NewProductUseCase(svc)
	require.NoError(t, err)

	in := domain.Product{Name: "Laptop", Price: decimal.RequireFromString("1299.99"), Quantity: 5}
	out := in
	out.ID = 1
	svc.On("CreateProduct", ctx, in).Return(out, nil).Once()
	svc.On("GetProduct", ctx, int64(1)).Return(out, nil).Once()
	svc.On("ListProducts", ctx).Return([]domain.Product{out}, nil).Once()
	svc.On("UpdateProduct", ctx, out).Return(out, nil).Once()
	svc.On("DeleteProduct", ctx, int64(1)).Return(nil).Once()

	got, err := uc.CreateProduct(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, out, got)

	got, err = uc.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, out, got)

	list, err := uc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{out}, list)

	got, err = uc.UpdateProduct(ctx, out)
	require.NoError(t, err)
	assert.Equal(t, out, got)

	require.NoError(t, uc.DeleteProduct(ctx, 1))
	svc.AssertExpectations(t)
}

func TestProductUseCase_PassesErrorsThrough(t *testing.T) {
	ctx := context.Background()
	svc := &mockService{}
	uc, _ := NewProductUseCase(svc)

	notFound := domain.NewNotFoundError("Product", 999)
	svc.On("GetProduct", ctx, int64(999)).Return(domain.Product{}, notFound)
	svc.On("DeleteProduct", ctx, int64(999)).Return(notFound)

	_, err := uc.GetProduct(ctx, 999)
	assert.Same(t, notFound, err)
	err = uc.DeleteProduct(ctx, 999)
	assert.True(t, errors.Is(err, notFound))
}
