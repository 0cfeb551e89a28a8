package service

import (
	"sync"
	"testing"

	"github.com/SodaPop-byte/Casa-Orencia-App/internal/apperr"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/model"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/repository"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/ws"

	"github.com/google/uuid"
)

// recordingReleaser captures image references handed to the host.
type recordingReleaser struct {
	mu       sync.Mutex
	released [][]string
}

func (r *recordingReleaser) Release(refs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released = append(r.released, refs)
	return nil
}

func newCatalogFixture(t *testing.T) (CatalogService, *recordingBus, *recordingReleaser, repository.ProductRepository) {
	t.Helper()
	db := setupTestDB(t)
	bus := &recordingBus{}
	releaser := &recordingReleaser{}
	repo := repository.NewProductRepo(db)
	return NewCatalogService(repo, db, bus, releaser), bus, releaser, repo
}

func TestCreateProductValidation(t *testing.T) {
	svc, _, _, _ := newCatalogFixture(t)
	admin := model.Actor{ID: uuid.New(), Email: "admin@test.com", Role: model.RoleAdmin}

	tests := []struct {
		name string
		req  model.CreateProductRequest
	}{
		{"missing name", model.CreateProductRequest{Category: model.CategoryBarong, Price: floatPtr(100), Stock: intPtr(5), Images: []string{"img"}}},
		{"missing category", model.CreateProductRequest{Name: "Barong Tagalog", Price: floatPtr(100), Stock: intPtr(5), Images: []string{"img"}}},
		{"unknown category", model.CreateProductRequest{Name: "Barong Tagalog", Category: "Hats", Price: floatPtr(100), Stock: intPtr(5), Images: []string{"img"}}},
		{"missing price", model.CreateProductRequest{Name: "Barong Tagalog", Category: model.CategoryBarong, Stock: intPtr(5), Images: []string{"img"}}},
		{"negative price", model.CreateProductRequest{Name: "Barong Tagalog", Category: model.CategoryBarong, Price: floatPtr(-1), Stock: intPtr(5), Images: []string{"img"}}},
		{"missing stock", model.CreateProductRequest{Name: "Barong Tagalog", Category: model.CategoryBarong, Price: floatPtr(100), Images: []string{"img"}}},
		{"empty images", model.CreateProductRequest{Name: "Barong Tagalog", Category: model.CategoryBarong, Price: floatPtr(100), Stock: intPtr(5), Images: []string{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(admin, &tt.req)
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestCreateProductEmitsEvent(t *testing.T) {
	svc, bus, _, _ := newCatalogFixture(t)
	admin := model.Actor{ID: uuid.New(), Role: model.RoleAdmin}

	product, err := svc.CreateProduct(admin, &model.CreateProductRequest{
		Name:     "Barong Tagalog",
		Category: model.CategoryBarong,
		Price:    floatPtr(1500),
		Stock:    intPtr(10),
		Images:   []string{"casa-orencia/barong-1"},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if product.ID == uuid.Nil {
		t.Fatal("product was not assigned an id")
	}
	if !bus.has(ws.EventProductCreated) {
		t.Fatalf("want %s event, got %v", ws.EventProductCreated, bus.names())
	}
}

func TestListProductsFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProductRepo(db)
	svc := NewCatalogService(repo, db, &recordingBus{}, &recordingReleaser{})

	seedProduct(t, db, "Saya Set", model.CategorySaya, 800, 3)
	seedProduct(t, db, "Barong Tagalog", model.CategoryBarong, 1500, 10)
	seedProduct(t, db, "Embroidered Fabric", model.CategoryFabric, 250, 40)

	t.Run("search is case-insensitive substring", func(t *testing.T) {
		got, err := svc.ListProducts(repository.ProductFilter{Search: "bar"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Barong Tagalog" {
			t.Fatalf("search 'bar': want only Barong Tagalog, got %+v", got)
		}

		got, err = svc.ListProducts(repository.ProductFilter{Search: "BARONG"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("search 'BARONG': want 1 product, got %d", len(got))
		}
	})

	t.Run("category is exact", func(t *testing.T) {
		got, err := svc.ListProducts(repository.ProductFilter{Category: "Saya"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 || got[0].Category != model.CategorySaya {
			t.Fatalf("category Saya: got %+v", got)
		}
	})

	t.Run("unfiltered returns all newest first", func(t *testing.T) {
		got, err := svc.ListProducts(repository.ProductFilter{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("want 3 products, got %d", len(got))
		}
		if got[0].Name != "Embroidered Fabric" || got[2].Name != "Saya Set" {
			t.Fatalf("want newest first, got order %s, %s, %s", got[0].Name, got[1].Name, got[2].Name)
		}
	})
}

func TestUpdateProductPartial(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProductRepo(db)
	bus := &recordingBus{}
	svc := NewCatalogService(repo, db, bus, &recordingReleaser{})
	admin := model.Actor{ID: uuid.New(), Role: model.RoleAdmin}

	product := seedProduct(t, db, "Barong Tagalog", model.CategoryBarong, 1500, 10)

	updated, err := svc.UpdateProduct(admin, product.ID, &model.UpdateProductRequest{Price: floatPtr(1800)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 1800 {
		t.Fatalf("want price 1800, got %v", updated.Price)
	}
	if updated.Name != "Barong Tagalog" || updated.Stock != 10 {
		t.Fatalf("unprovided fields changed: %+v", updated)
	}
	if !bus.has(ws.EventProductUpdated) {
		t.Fatalf("want %s event, got %v", ws.EventProductUpdated, bus.names())
	}

	if _, err := svc.UpdateProduct(admin, uuid.New(), &model.UpdateProductRequest{Price: floatPtr(1)}); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("unknown id: want not-found, got %v", err)
	}
}

// An admin edit holding a copy of the product read before a sale committed
// must not write the pre-sale stock back when it only changes other fields.
func TestUpdateWritesOnlyProvidedColumns(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProductRepo(db)

	product := seedProduct(t, db, "Barong Tagalog", model.CategoryBarong, 1500, 5)

	// Stale copy taken before the sale.
	stale := *product

	// A sale commits: conditional decrement takes the last 5 units.
	if err := repo.DecrementStock(db, product.ID, 5); err != nil {
		t.Fatalf("decrement: %v", err)
	}

	// Repricing from the stale copy touches only the price column.
	stale.Price = 1800
	if err := repo.UpdateFields(nil, &stale, []string{"price"}); err != nil {
		t.Fatalf("update fields: %v", err)
	}

	var after model.Product
	if err := db.First(&after, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if after.Stock != 0 {
		t.Fatalf("partial update resurrected sold stock: got %d, want 0", after.Stock)
	}
	if after.Price != 1800 {
		t.Fatalf("price not applied: got %v", after.Price)
	}
}

func TestUpdateProductExplicitStock(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProductRepo(db)
	svc := NewCatalogService(repo, db, &recordingBus{}, &recordingReleaser{})
	admin := model.Actor{ID: uuid.New(), Role: model.RoleAdmin}

	product := seedProduct(t, db, "Saya Set", model.CategorySaya, 800, 3)

	// Stock provided explicitly is an intentional overwrite and must land.
	updated, err := svc.UpdateProduct(admin, product.ID, &model.UpdateProductRequest{Stock: intPtr(12)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Stock != 12 {
		t.Fatalf("want stock 12, got %d", updated.Stock)
	}

	var after model.Product
	db.First(&after, "id = ?", product.ID)
	if after.Stock != 12 || after.Price != 800 {
		t.Fatalf("persisted state wrong: stock %d price %v", after.Stock, after.Price)
	}
}

func TestDeleteProductReleasesImages(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProductRepo(db)
	bus := &recordingBus{}
	releaser := &recordingReleaser{}
	svc := NewCatalogService(repo, db, bus, releaser)
	admin := model.Actor{ID: uuid.New(), Role: model.RoleAdmin}

	product := seedProduct(t, db, "Saya Set", model.CategorySaya, 800, 3)

	if err := svc.DeleteProduct(admin, product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(releaser.released) != 1 || len(releaser.released[0]) != 1 || releaser.released[0][0] != "casa-orencia/Saya Set" {
		t.Fatalf("image refs were not released: %+v", releaser.released)
	}
	if !bus.has(ws.EventProductDeleted) {
		t.Fatalf("want %s event, got %v", ws.EventProductDeleted, bus.names())
	}

	if _, err := svc.ListProducts(repository.ProductFilter{}); err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	got, _ := svc.ListProducts(repository.ProductFilter{})
	if len(got) != 0 {
		t.Fatalf("product still listed after delete: %+v", got)
	}

	if err := svc.DeleteProduct(admin, product.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("second delete: want not-found, got %v", err)
	}
}
