package service

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"productapi/internal/domain"
)

const productResource = "Product"

// ErrNilRepository возвращается, когда репозиторий не передан
var ErrNilRepository = errors.New("product repository cannot be nil")

// ProductService инкапсулирует бизнес-логику вокруг товаров
type ProductService struct {
	repo domain.ProductRepository
}

var _ domain.ProductService = (*ProductService)(nil)

func NewProductService(repo domain.ProductRepository) (*ProductService, error) {
	if isNil(repo) {
		return nil, ErrNilRepository
	}
	return &ProductService{repo: repo}, nil
}

// CreateProduct проверяет и сохраняет товар. Переданный ID игнорируется.
func (s *ProductService) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return domain.Product{}, err
	}
	p.ID = 0
	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		return domain.Product{}, storageError("failed to store product", err)
	}
	return saved, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Product{}, domain.NewNotFoundError(productResource, id)
		}
		return domain.Product{}, storageError("failed to load product", err)
	}
	return p, nil
}

// ListProducts returns every stored product in repository order.
func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, storageError("failed to list products", err)
	}
	if list == nil {
		list = []domain.Product{}
	}
	return list, nil
}

// UpdateProduct заменяет существующую запись целиком
func (s *ProductService) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if _, err := s.GetProduct(ctx, p.ID); err != nil {
		return domain.Product{}, err
	}
	if err := validateProduct(p); err != nil {
		return domain.Product{}, err
	}
	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		return domain.Product{}, storageError("failed to store product", err)
	}
	return saved, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return storageError("failed to delete product", err)
	}
	return nil
}

func validateProduct(p domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.NewValidationError("product name is required")
	}
	if p.Price.IsNegative() {
		return domain.NewValidationError("product price must be zero or positive")
	}
	if p.Quantity < 0 {
		return domain.NewValidationError("product quantity must be zero or positive")
	}
	return nil
}

// storageError keeps adapter failures from crossing the service boundary
// with their own types.
func storageError(msg string, err error) error {
	var be *domain.BusinessError
	if errors.As(err, &be) {
		return err
	}
	return domain.NewBusinessError(domain.CodePersistence, msg, err)
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
