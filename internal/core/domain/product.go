// internal/core/domain/product.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category represents a product category
type Category string

// Category constants
const (
	CategoryTShirt    Category = "t-shirt"
	CategoryPoloShirt Category = "polo-shirt"
	CategoryHoodie    Category = "hoodie"
	CategoryToteBag   Category = "tote-bag"
)

// CategoryAll matches every category when filtering inventory.
const CategoryAll Category = "all"

// Categories lists the product categories in display order.
var Categories = []Category{CategoryTShirt, CategoryPoloShirt, CategoryHoodie, CategoryToteBag}

// IsValid reports whether c is a known product category.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product sizes, colors and genders offered by the catalog.
var (
	Sizes   = []string{"xs", "s", "m", "l", "xl", "xxl"}
	Colors  = []string{"white", "black", "gray", "blue"}
	Genders = []string{"unisex", "men", "women"}
)

// CustomizableAreaName identifies a printable area on a product
type CustomizableAreaName string

const (
	AreaFront     CustomizableAreaName = "front"
	AreaBack      CustomizableAreaName = "back"
	AreaLeftHand  CustomizableAreaName = "left_hand"
	AreaRightHand CustomizableAreaName = "right_hand"
)

// AreaSize is the maximum print size of a customizable area.
type AreaSize struct {
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

// CustomizableArea describes where and how large a product can be printed on.
type CustomizableArea struct {
	Area    CustomizableAreaName `json:"area" validate:"required,oneof=front back left_hand right_hand"`
	MaxSize AreaSize             `json:"maxSize"`
}

// Dimensions of a packed variant.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

// Product is a catalog entry; it owns many variants.
type Product struct {
	ID                uuid.UUID          `json:"id"`
	Name              string             `json:"name"`
	Description       *string            `json:"description"`
	Category          Category           `json:"category"`
	Tags              []string           `json:"tags"`
	CustomizableAreas []CustomizableArea `json:"customizableAreas"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`

	Variants []ProductVariant `json:"productVariants"`
}

// ProductVariant is one size/color combination of a product.
type ProductVariant struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	SKU         string          `json:"sku"`
	Size        *string         `json:"size"`
	Color       *string         `json:"color"`
	ColorHex    *string         `json:"colorHex"`
	WeightGrams *int            `json:"weightGrams"`
	Dimensions  *Dimensions     `json:"dimensions"`
	ImageURLs   []string        `json:"imageUrls"`
	Material    *string         `json:"material"`
	Gender      string          `json:"gender"`
	BuyPrice    decimal.Decimal `json:"buyPrice"`
	SellPrice   decimal.Decimal `json:"sellPrice"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Category *Category
	Limit    *int
	Offset   *int
}

// ProductInput carries the writable fields of a product. Nil fields are left
// untouched on update.
type ProductInput struct {
	Name              *string             `json:"name" validate:"omitempty,min=1,max=200"`
	Description       *string             `json:"description"`
	Category          *Category           `json:"category" validate:"omitempty,oneof=t-shirt polo-shirt hoodie tote-bag"`
	Tags              *[]string           `json:"tags"`
	CustomizableAreas *[]CustomizableArea `json:"customizableAreas" validate:"omitempty,dive"`
}

// Apply copies the non-nil input fields onto p.
func (in ProductInput) Apply(p *Product) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Tags != nil {
		p.Tags = *in.Tags
	}
	if in.CustomizableAreas != nil {
		p.CustomizableAreas = *in.CustomizableAreas
	}
}

// PrepareForStorage assigns an id and timestamps to a new product.
func (p *Product) PrepareForStorage() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
