package domain

import "context"

// ProductRepository is the storage port. Adapters need not validate:
// the service never hands them an invalid product.
type ProductRepository interface {
	// Save inserts a product with a zero ID and assigns one; otherwise it
	// replaces (or creates) the record with that ID.
	Save(ctx context.Context, p Product) (Product, error)
	// FindByID returns ErrRecordNotFound when no record exists.
	FindByID(ctx context.Context, id int64) (Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	DeleteByID(ctx context.Context, id int64) error
}

// ProductService is the inbound port used by entrypoints.
type ProductService interface {
	CreateProduct(ctx context.Context, p Product) (Product, error)
	GetProduct(ctx context.Context, id int64) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	UpdateProduct(ctx context.Context, p Product) (Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}
