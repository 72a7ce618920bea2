package models

import "time"

// Favorite is a favorites row. Product is populated when the read embeds the
// products relation.
type Favorite struct {
	ID        string    `json:"id,omitempty" gorm:"primaryKey"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
	Product   *Product  `json:"products,omitempty" gorm:"foreignKey:ProductID"`
}

func (Favorite) TableName() string { return "favorites" }

// CartItem is a cart_items row. An empty SelectedSize or SelectedColor means
// the line carries no size or color choice.
type CartItem struct {
	ID            string    `json:"id,omitempty" gorm:"primaryKey"`
	UserID        string    `json:"user_id"`
	ProductID     string    `json:"product_id"`
	Quantity      int       `json:"quantity"`
	SelectedSize  string    `json:"selected_size"`
	SelectedColor string    `json:"selected_color"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Product       *Product  `json:"products,omitempty" gorm:"foreignKey:ProductID"`
}

func (CartItem) TableName() string { return "cart_items" }
