package service

import (
	"errors"
	"log"
	"strings"

	"github.com/SodaPop-byte/Casa-Orencia-App/internal/apperr"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/imagehost"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/model"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/repository"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/ws"
	"github.com/SodaPop-byte/Casa-Orencia-App/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogService interface {
	ListProducts(filter repository.ProductFilter) ([]model.Product, error)
	CreateProduct(actor model.Actor, req *model.CreateProductRequest) (*model.Product, error)
	UpdateProduct(actor model.Actor, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error)
	DeleteProduct(actor model.Actor, id uuid.UUID) error
}

type catalogService struct {
	productRepo repository.ProductRepository
	db          *gorm.DB
	bus         ws.Broadcaster
	images      imagehost.Releaser
}

func NewCatalogService(pRepo repository.ProductRepository, db *gorm.DB, bus ws.Broadcaster, images imagehost.Releaser) CatalogService {
	return &catalogService{
		productRepo: pRepo,
		db:          db,
		bus:         bus,
		images:      images,
	}
}

// validationError folds field failures into one user-correctable error.
func validationError(errs []validator.FieldError) error {
	details := make([]string, len(errs))
	for i, e := range errs {
		details[i] = e.Error()
	}
	return apperr.Validation("validation failed: " + strings.Join(details, "; "))
}

func (s *catalogService) ListProducts(filter repository.ProductFilter) ([]model.Product, error) {
	return s.productRepo.FindAll(filter)
}

func (s *catalogService) CreateProduct(actor model.Actor, req *model.CreateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	product := &model.Product{
		Name:     req.Name,
		Category: req.Category,
		Price:    *req.Price,
		Stock:    *req.Stock,
		Images:   req.Images,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.bus.Emit(ws.EventProductCreated, product)
	return product, nil
}

func (s *catalogService) UpdateProduct(actor model.Actor, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var updated *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product not found")
			}
			return err
		}

		// Apply only the provided fields, and write only those columns:
		// a concurrent order may have decremented stock after our read,
		// and an unrestricted save would resurrect the sold units.
		fields := make([]string, 0, 5)
		if req.Name != nil {
			existing.Name = *req.Name
			fields = append(fields, "name")
		}
		if req.Category != nil {
			existing.Category = *req.Category
			fields = append(fields, "category")
		}
		if req.Price != nil {
			existing.Price = *req.Price
			fields = append(fields, "price")
		}
		if req.Stock != nil {
			existing.Stock = *req.Stock
			fields = append(fields, "stock")
		}
		// Images stay non-empty; an absent or empty list leaves them alone.
		if len(req.Images) > 0 {
			existing.Images = req.Images
			fields = append(fields, "images")
		}

		if len(fields) > 0 {
			if err := s.productRepo.UpdateFields(tx, &existing, fields); err != nil {
				return err
			}
		}
		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.bus.Emit(ws.EventProductUpdated, updated)
	return updated, nil
}

func (s *catalogService) DeleteProduct(actor model.Actor, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(product); err != nil {
		return err
	}

	// Release hosted images. The record is already gone; a failed release
	// only leaves orphans at the host, so it is logged, not surfaced.
	if err := s.images.Release(product.Images); err != nil {
		log.Printf("catalog: release images for product %s: %v", id, err)
	}

	s.bus.Emit(ws.EventProductDeleted, map[string]interface{}{"id": id})
	return nil
}
