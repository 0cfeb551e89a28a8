package repository

import (
	"errors"
	"strings"

	"github.com/SodaPop-byte/Casa-Orencia-App/internal/apperr"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	Search   string
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(filter ProductFilter) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	UpdateFields(tx *gorm.DB, product *model.Product, fields []string) error
	DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int) error
	IncrementStock(tx *gorm.DB, id uuid.UUID, quantity int) error
	Delete(product *model.Product) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(filter ProductFilter) ([]model.Product, error) {
	var products []model.Product
	q := r.db.Order("created_at DESC")
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("product not found")
	}
	return &product, err
}

// UpdateFields persists only the named columns. Writing every column back
// (gorm's Save) would let a read taken before a concurrent stock decrement
// overwrite that decrement with the stale value; restricting the write set
// keeps the stock column untouched unless the caller explicitly supplied it.
func (r *productRepo) UpdateFields(tx *gorm.DB, product *model.Product, fields []string) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(product).Select(fields).Updates(product).Error
}

// DecrementStock is a single conditional update: the stock check and the
// subtraction happen in one statement, so two callers racing for the last
// units can never both pass the check.
func (r *productRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int) error {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Disambiguate: missing product vs not enough stock.
		var exists int64
		if err := tx.Model(&model.Product{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return apperr.NotFound("product not found")
		}
		return apperr.InsufficientStock("insufficient stock")
	}
	return nil
}

func (r *productRepo) IncrementStock(tx *gorm.DB, id uuid.UUID, quantity int) error {
	res := tx.Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("product not found")
	}
	return nil
}

func (r *productRepo) Delete(product *model.Product) error {
	return r.db.Delete(product).Error
}
