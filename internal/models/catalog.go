package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Product struct {
	ID          string                      `json:"id,omitempty" gorm:"primaryKey"`
	Name        string                      `json:"name"`
	Price       decimal.Decimal             `json:"price" gorm:"type:numeric"`
	Image       *string                     `json:"image,omitempty"`
	Description *string                     `json:"description,omitempty"`
	Category    *string                     `json:"category,omitempty"`
	Sizes       datatypes.JSONSlice[string] `json:"sizes,omitempty"`
	Colors      datatypes.JSONSlice[string] `json:"colors,omitempty"`
	IsAvailable bool                        `json:"is_available"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

type Design struct {
	ID               int                         `json:"id,omitempty" gorm:"primaryKey;autoIncrement"`
	Title            string                      `json:"title"`
	Description      *string                     `json:"description,omitempty"`
	Category         string                      `json:"category"`
	Images           datatypes.JSONSlice[string] `json:"images"`
	Price            decimal.Decimal             `json:"price" gorm:"type:numeric"`
	Fabric           *string                     `json:"fabric,omitempty"`
	Colors           datatypes.JSONSlice[string] `json:"colors,omitempty"`
	Sizes            datatypes.JSONSlice[string] `json:"sizes,omitempty"`
	Features         datatypes.JSONSlice[string] `json:"features,omitempty"`
	Occasions        datatypes.JSONSlice[string] `json:"occasions,omitempty"`
	CareInstructions datatypes.JSONSlice[string] `json:"care_instructions,omitempty"`
	Rating           *float64                    `json:"rating,omitempty"`
	ReviewsCount     *int                        `json:"reviews_count,omitempty"`
	IsAvailable      bool                        `json:"is_available"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

func (Design) TableName() string { return "designs" }

type Fabric struct {
	ID            string           `json:"id,omitempty" gorm:"primaryKey"`
	NameAr        string           `json:"name_ar"`
	NameEn        *string          `json:"name_en,omitempty"`
	DescriptionAr *string          `json:"description_ar,omitempty"`
	DescriptionEn *string          `json:"description_en,omitempty"`
	ImageURL      *string          `json:"image_url,omitempty"`
	PricePerMeter *decimal.Decimal `json:"price_per_meter,omitempty" gorm:"type:numeric"`
	IsAvailable   bool             `json:"is_available"`
	Category      *string          `json:"category,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (Fabric) TableName() string { return "fabrics" }
