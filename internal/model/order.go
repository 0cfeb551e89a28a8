package model

import "github.com/google/uuid"

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusCompleted OrderStatus = "Completed"
	StatusCancelled OrderStatus = "Cancelled"
)

// IsTerminal reports whether s allows no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Order struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"uuid_required"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`

	Quantity int `gorm:"not null" json:"quantity" validate:"required,gt=0"`

	// Snapshot of unit price * quantity at placement time. Never recomputed.
	TotalPrice float64     `gorm:"not null" json:"total_price"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
}

// PlaceOrderRequest is the payload for placing an order.
type PlaceOrderRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}
