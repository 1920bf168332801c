package catalog

import (
	"context"
	"errors"
	"testing"

	"ivolexMarket/domain"
)

type fakeCatalogRepo struct {
	products map[uint64]domain.Product
	nextID   uint64
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{products: make(map[uint64]domain.Product), nextID: 1}
}

func (f *fakeCatalogRepo) Create(ctx context.Context, product *domain.Product) error {
	product.ID = f.nextID
	f.nextID++
	f.products[product.ID] = *product
	return nil
}

func (f *fakeCatalogRepo) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, errors.New("record not found")
	}
	return p, nil
}

func (f *fakeCatalogRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalogRepo) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	out := make([]domain.Product, 0)
	for _, p := range f.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return errors.New("record not found")
	}
	f.products[product.ID] = *product
	return nil
}

func (f *fakeCatalogRepo) Delete(ctx context.Context, id uint64) error {
	delete(f.products, id)
	return nil
}

func validProduct() *domain.Product {
	return &domain.Product{
		ProductName: "Classic Leather Wallet",
		Category:    "leather",
		Subcategory: "wallets",
		Segment:     "accessories",
		Price:       1500,
		Rating:      4.5,
	}
}

func TestCreateProduct(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo())

	created, err := svc.CreateProduct(context.Background(), validProduct())
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if created.ID == 0 {
		t.Error("created product has no id")
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*domain.Product)
	}{
		{"missing name", func(p *domain.Product) { p.ProductName = "" }},
		{"missing category", func(p *domain.Product) { p.Category = "" }},
		{"zero price", func(p *domain.Product) { p.Price = 0 }},
		{"negative rating", func(p *domain.Product) { p.Rating = -1 }},
		{"rating above 5", func(p *domain.Product) { p.Rating = 5.5 }},
	}
	for _, tc := range cases {
		p := validProduct()
		tc.mutate(p)
		if _, err := svc.CreateProduct(ctx, p); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestGetProductByID(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo())
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validProduct())
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	got, err := svc.GetProductByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProductByID: %v", err)
	}
	if got.ProductName != "Classic Leather Wallet" {
		t.Errorf("ProductName = %s, want Classic Leather Wallet", got.ProductName)
	}

	if _, err := svc.GetProductByID(ctx, 0); err == nil {
		t.Error("expected error for zero id")
	}
	if _, err := svc.GetProductByID(ctx, 999); err == nil {
		t.Error("expected error for missing product")
	}
}

func TestGetProductsByCategory(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo())
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, validProduct()); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	other := validProduct()
	other.Category = "furniture"
	if _, err := svc.CreateProduct(ctx, other); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	got, err := svc.GetProductsByCategory(ctx, "leather")
	if err != nil {
		t.Fatalf("GetProductsByCategory: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}

	if _, err := svc.GetProductsByCategory(ctx, ""); err == nil {
		t.Error("expected error for empty category")
	}
}

func TestUpdateProduct(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo())
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validProduct())
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	created.Price = 1800
	updated, err := svc.UpdateProduct(ctx, created)
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Price != 1800 {
		t.Errorf("Price = %v, want 1800", updated.Price)
	}

	missing := validProduct()
	missing.ID = 999
	if _, err := svc.UpdateProduct(ctx, missing); err == nil {
		t.Error("expected error for missing product")
	}
}

func TestDeleteProduct(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo())
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validProduct())
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	if err := svc.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := svc.GetProductByID(ctx, created.ID); err == nil {
		t.Error("deleted product still retrievable")
	}

	if err := svc.DeleteProduct(ctx, 999); err == nil {
		t.Error("expected error for missing product")
	}
}
