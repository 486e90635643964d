package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"productapi/internal/domain"
	"productapi/internal/repository"
)

func setupPS(t *testing.T) *ProductService {
	t.Helper()
	ps, err := NewProductService(repository.NewMemoryStore())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return ps
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewProductService_NilRepository(t *testing.T) {
	if _, err := NewProductService(nil); !errors.Is(err, ErrNilRepository) {
		t.Fatalf("expected ErrNilRepository, got %v", err)
	}
	var store *repository.MemoryStore
	if _, err := NewProductService(store); !errors.Is(err, ErrNilRepository) {
		t.Fatalf("expected ErrNilRepository for a nil *MemoryStore, got %v", err)
	}
}

func TestProduct_Create_Valid(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	p, err := ps.CreateProduct(ctx, domain.Product{Name: "Laptop", Price: price("1299.99"), Quantity: 5})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("expected id assigned")
	}
	if p.Name != "Laptop" {
		t.Fatalf("unexpected name %q", p.Name)
	}
}

func TestProduct_Create_IgnoresCallerID(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	p, err := ps.CreateProduct(ctx, domain.Product{ID: 42, Name: "Laptop", Price: price("1"), Quantity: 1})
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != 1 {
		t.Fatalf("storage should assign id 1, got %d", p.ID)
	}
}

func TestProduct_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	cases := []struct {
		name    string
		product domain.Product
		mention string
	}{
		{"empty name", domain.Product{Name: "", Price: price("10"), Quantity: 1}, "name is required"},
		{"blank name", domain.Product{Name: "   \t", Price: price("10"), Quantity: 1}, "name is required"},
		{"negative price", domain.Product{Name: "Laptop", Price: price("-0.01"), Quantity: 1}, "price"},
		{"negative quantity", domain.Product{Name: "Laptop", Price: price("10"), Quantity: -1}, "quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ps.CreateProduct(ctx, tc.product)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if ve.Code != domain.CodeValidation {
				t.Fatalf("unexpected code %q", ve.Code)
			}
			if !strings.Contains(ve.Message, tc.mention) {
				t.Fatalf("message %q should mention %q", ve.Message, tc.mention)
			}
		})
	}

	list, _ := ps.ListProducts(ctx)
	if len(list) != 0 {
		t.Fatalf("invalid products must not be stored, got %d", len(list))
	}
}

func TestProduct_Create_ZeroPriceAndQuantityAllowed(t *testing.T) {
	ps := setupPS(t)
	if _, err := ps.CreateProduct(context.Background(), domain.Product{Name: "Sample", Price: decimal.Zero}); err != nil {
		t.Fatalf("zero values are valid: %v", err)
	}
}

func TestProduct_Get_NotFound(t *testing.T) {
	ps := setupPS(t)
	_, err := ps.GetProduct(context.Background(), 999)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
	if nf.Error() != "Product with identifier 999 was not found" {
		t.Fatalf("unexpected message %q", nf.Error())
	}
	if nf.Code != domain.CodeNotFound {
		t.Fatalf("unexpected code %q", nf.Code)
	}
}

func TestProduct_Create_Get_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	created, err := ps.CreateProduct(ctx, domain.Product{Name: "Laptop", Description: "14 inch", Price: price("1299.99"), Quantity: 5})
	if err != nil {
		t.Fatal(err)
	}
	got, err := ps.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != created.ID || got.Name != created.Name || got.Description != created.Description ||
		!got.Price.Equal(created.Price) || got.Quantity != created.Quantity {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, created)
	}
}

func TestProduct_Update_Get_Delete(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	p, err := ps.CreateProduct(ctx, domain.Product{Name: "Laptop", Description: "old", Price: price("1299.99"), Quantity: 5})
	if err != nil {
		t.Fatal(err)
	}

	up, err := ps.UpdateProduct(ctx, domain.Product{ID: p.ID, Name: "Updated Laptop", Price: price("1199.99"), Quantity: 3})
	if err != nil {
		t.Fatalf("update err: %v", err)
	}
	if up.Name != "Updated Laptop" || !up.Price.Equal(price("1199.99")) || up.Quantity != 3 {
		t.Fatalf("not updated: %+v", up)
	}
	got, _ := ps.GetProduct(ctx, p.ID)
	if got.Description != "" {
		t.Fatalf("update must replace the whole record, description=%q", got.Description)
	}

	if err := ps.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("delete err: %v", err)
	}
	var nf *domain.NotFoundError
	if _, err := ps.GetProduct(ctx, p.ID); !errors.As(err, &nf) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestProduct_Update_NotFoundBeforeValidation(t *testing.T) {
	ps := setupPS(t)
	// invalid payload and missing id: existence is checked first
	_, err := ps.UpdateProduct(context.Background(), domain.Product{ID: 77, Name: ""})
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProduct_Update_Invalid(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	p, _ := ps.CreateProduct(ctx, domain.Product{Name: "Laptop", Price: price("10"), Quantity: 1})

	_, err := ps.UpdateProduct(ctx, domain.Product{ID: p.ID, Name: "Laptop", Price: price("10"), Quantity: -4})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	got, _ := ps.GetProduct(ctx, p.ID)
	if got.Quantity != 1 {
		t.Fatalf("stored product changed on failed update")
	}
}

func TestProduct_Delete_NotFound(t *testing.T) {
	ps := setupPS(t)
	var nf *domain.NotFoundError
	if err := ps.DeleteProduct(context.Background(), 5); !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProduct_List(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)

	empty, err := ps.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list on empty storage: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", empty)
	}

	for _, n := range []string{"Aspirin", "Paracetamol", "Ibuprofen"} {
		if _, err := ps.CreateProduct(ctx, domain.Product{Name: n, Price: price("1"), Quantity: 1}); err != nil {
			t.Fatal(err)
		}
	}
	first, _ := ps.ListProducts(ctx)
	second, _ := ps.ListProducts(ctx)
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 products")
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Name != second[i].Name {
			t.Fatalf("repeated list differs at %d", i)
		}
	}
}
