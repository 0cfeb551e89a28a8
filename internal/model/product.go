package model

// Category is the fixed set of product lines the shop carries.
type Category string

const (
	CategoryBarong Category = "Barong"
	CategorySaya   Category = "Saya"
	CategoryFabric Category = "Fabric"
)

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryBarong, CategorySaya, CategoryFabric:
		return true
	}
	return false
}

type Product struct {
	BaseModel
	Name     string   `gorm:"type:varchar(255);not null" json:"name"`
	Category Category `gorm:"type:varchar(20);not null;index" json:"category"`
	Price    float64  `gorm:"not null;default:0" json:"price"`
	Stock    int      `gorm:"not null;default:0" json:"stock"`

	// References issued by the image-hosting collaborator. Stored opaquely.
	Images []string `gorm:"serializer:json" json:"images"`
}

// CreateProductRequest is the payload for creating a product. Pointer fields
// distinguish "missing" from a legitimate zero value.
type CreateProductRequest struct {
	Name     string   `json:"name" validate:"required"`
	Category Category `json:"category" validate:"required,oneof=Barong Saya Fabric"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Stock    *int     `json:"stock" validate:"required,gte=0"`
	Images   []string `json:"images" validate:"required,min=1"`
}

// UpdateProductRequest applies only the fields that are present.
type UpdateProductRequest struct {
	Name     *string   `json:"name" validate:"omitempty,min=1"`
	Category *Category `json:"category" validate:"omitempty,oneof=Barong Saya Fabric"`
	Price    *float64  `json:"price" validate:"omitempty,gte=0"`
	Stock    *int      `json:"stock" validate:"omitempty,gte=0"`
	Images   []string  `json:"images" validate:"omitempty,min=1"`
}
