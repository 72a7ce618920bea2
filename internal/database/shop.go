package database

import (
	"context"
	"errors"

	"yasmin-alsham-backend/internal/models"
)

var withProduct = []Embed{{Table: "products", Field: "Product"}}

type FavoriteService struct {
	t table[models.Favorite]
}

func NewFavoriteService(b Backend) *FavoriteService {
	return &FavoriteService{t: table[models.Favorite]{backend: b, name: "favorites"}}
}

// GetUserFavorites lists a user's favorites with their products embedded.
func (s *FavoriteService) GetUserFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	return s.t.list(ctx, Query{
		Filters: []Filter{Eq("user_id", userID)},
		Order:   newestFirst,
		Embeds:  withProduct,
	})
}

func (s *FavoriteService) Add(ctx context.Context, userID, productID string) (*models.Favorite, error) {
	f := &models.Favorite{UserID: userID, ProductID: productID}
	stamp(&f.ID, &f.CreatedAt, nil)
	return s.t.create(ctx, f)
}

func (s *FavoriteService) Remove(ctx context.Context, userID, productID string) error {
	return s.t.delete(ctx, Eq("user_id", userID), Eq("product_id", productID))
}

// Clear removes all of a user's favorites.
func (s *FavoriteService) Clear(ctx context.Context, userID string) error {
	return s.t.delete(ctx, Eq("user_id", userID))
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, productID string) (bool, error) {
	_, err := s.t.get(ctx, Eq("user_id", userID), Eq("product_id", productID))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type CartService struct {
	t table[models.CartItem]
}

func NewCartService(b Backend) *CartService {
	return &CartService{t: table[models.CartItem]{backend: b, name: "cart_items"}}
}

func (s *CartService) GetUserCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	return s.t.list(ctx, Query{
		Filters: []Filter{Eq("user_id", userID)},
		Order:   newestFirst,
		Embeds:  withProduct,
	})
}

func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int, size, color string) (*models.CartItem, error) {
	item := &models.CartItem{
		UserID:        userID,
		ProductID:     productID,
		Quantity:      quantity,
		SelectedSize:  size,
		SelectedColor: color,
	}
	stamp(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	return s.t.create(ctx, item)
}

// UpdateQuantity sets the quantity of the line identified by
// (user, product, size, color).
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID, size, color string, quantity int) (*models.CartItem, error) {
	return s.t.update(ctx, map[string]any{"quantity": quantity},
		Eq("user_id", userID),
		Eq("product_id", productID),
		Eq("selected_size", size),
		Eq("selected_color", color),
	)
}

// SetProductQuantity sets the quantity of every line of the product in one
// write, whatever their size or color.
func (s *CartService) SetProductQuantity(ctx context.Context, userID, productID string, quantity int) error {
	return s.t.updateAll(ctx, map[string]any{"quantity": quantity},
		Eq("user_id", userID),
		Eq("product_id", productID),
	)
}

// Remove deletes every line of the product regardless of size or color.
func (s *CartService) Remove(ctx context.Context, userID, productID string) error {
	return s.t.delete(ctx, Eq("user_id", userID), Eq("product_id", productID))
}

// RemoveLine deletes the single line (user, product, size, color).
func (s *CartService) RemoveLine(ctx context.Context, userID, productID, size, color string) error {
	return s.t.delete(ctx,
		Eq("user_id", userID),
		Eq("product_id", productID),
		Eq("selected_size", size),
		Eq("selected_color", color),
	)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.t.delete(ctx, Eq("user_id", userID))
}
