package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"yasmin-alsham-backend/internal/database"
	"yasmin-alsham-backend/internal/models"
	"yasmin-alsham-backend/internal/persist"
)

// IdentityResolver finds the user an operation acts for; nil means nobody.
type IdentityResolver interface {
	Resolve(ctx context.Context) (*models.Identity, error)
}

// basket is one user's favorites and cart. Its slices are replaced, never
// mutated in place.
type basket struct {
	Favorites []Product  `json:"favorites"`
	Cart      []CartItem `json:"cart"`
}

func (b basket) normalized() basket {
	return basket{Favorites: nonNil(b.Favorites), Cart: nonNil(b.Cart)}
}

// ShopStore holds favorites and carts, one basket per user. Every operation
// acts on the basket of the user resolved from its context.
type ShopStore struct {
	status
	services *database.Services
	identity IdentityResolver
	mirror   persist.Mirror
	locks    keyedMutex
	saveMu   sync.Mutex

	mu    sync.RWMutex
	users map[string]basket
}

type shopSnapshot struct {
	Users map[string]basket `json:"users"`
}

func NewShopStore(services *database.Services, identity IdentityResolver, mirror persist.Mirror, logger *slog.Logger) *ShopStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShopStore{
		status:   status{logger: logger.With("store", "shop")},
		services: services,
		identity: identity,
		mirror:   mirror,
		users:    map[string]basket{},
	}
}

func (s *ShopStore) Restore(ctx context.Context) error {
	var snap shopSnapshot
	ok, err := s.mirror.Load(ctx, persist.ShopKey, &snap)
	if err != nil || !ok {
		return err
	}
	users := make(map[string]basket, len(snap.Users))
	for id, b := range snap.Users {
		users[id] = b.normalized()
	}
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return nil
}

// save writes the current baskets to the mirror. Snapshot and write happen
// under saveMu so an older snapshot never overwrites a newer one.
func (s *ShopStore) save(ctx context.Context) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	snap := shopSnapshot{Users: maps.Clone(s.users)}
	s.mu.RUnlock()

	if err := s.mirror.Save(context.WithoutCancel(ctx), persist.ShopKey, snap); err != nil {
		s.logger.Error("failed to save snapshot", "error", err)
	}
}

func (s *ShopStore) currentUser(ctx context.Context) (string, error) {
	user, err := s.identity.Resolve(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve user: %w", err)
	}
	if user == nil || user.ID == "" {
		return "", ErrNoIdentity
	}
	return user.ID, nil
}

func (s *ShopStore) basket(userID string) basket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[userID].normalized()
}

func (s *ShopStore) update(userID string, fn func(b basket) basket) {
	s.mu.Lock()
	s.users[userID] = fn(s.users[userID].normalized())
	s.mu.Unlock()
}

// view returns the basket of the user in ctx, or an empty one when nobody
// resolves.
func (s *ShopStore) view(ctx context.Context) basket {
	userID, err := s.currentUser(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoIdentity) {
			s.logger.Warn("failed to resolve user", "error", err)
		}
		return basket{}.normalized()
	}
	return s.basket(userID)
}

// ReloadAll refreshes the basket of every user held in memory.
func (s *ShopStore) ReloadAll(ctx context.Context) (err error) {
	defer s.track("reload baskets")(&err)

	s.mu.RLock()
	ids := slices.Sorted(maps.Keys(s.users))
	s.mu.RUnlock()

	var errs []error
	for _, id := range ids {
		errs = append(errs, s.loadFavorites(ctx, id), s.loadCart(ctx, id))
	}
	s.save(ctx)
	return errors.Join(errs...)
}

// Favorites

func (s *ShopStore) LoadFavorites(ctx context.Context) (err error) {
	defer s.track("load favorites")(&err)

	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.loadFavorites(ctx, userID); err != nil {
		return err
	}
	s.save(ctx)
	return nil
}

func (s *ShopStore) loadFavorites(ctx context.Context, userID string) error {
	rows, err := s.services.Favorites.GetUserFavorites(ctx, userID)
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}
	list := make([]Product, len(rows))
	for i, r := range rows {
		list[i] = embeddedProduct(r.ProductID, r.Product)
	}
	s.update(userID, func(b basket) basket {
		b.Favorites = list
		return b
	})
	return nil
}

// AddToFavorites is a no-op in memory when the product is already there.
func (s *ShopStore) AddToFavorites(ctx context.Context, p Product) (err error) {
	defer s.track("add favorite")(&err)

	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	defer s.locks.Lock("favorite:" + userID + ":" + p.ID)()

	if _, err := s.services.Favorites.Add(ctx, userID, p.ID); err != nil {
		return fmt.Errorf("add favorite %s: %w", p.ID, err)
	}

	s.update(userID, func(b basket) basket {
		if !slices.ContainsFunc(b.Favorites, func(x Product) bool { return x.ID == p.ID }) {
			b.Favorites = append(slices.Clip(b.Favorites), p)
		}
		return b
	})
	s.save(ctx)
	return nil
}

func (s *ShopStore) RemoveFromFavorites(ctx context.Context, productID string) (err error) {
	defer s.track("remove favorite")(&err)

	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	defer s.locks.Lock("favorite:" + userID + ":" + productID)()

	if err := s.services.Favorites.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("remove favorite %s: %w", productID, err)
	}

	s.update(userID, func(b basket) basket {
		b.Favorites = removeByID(b.Favorites, productID, func(x Product) string { return x.ID })
		return b
	})
	s.save(ctx)
	return nil
}

func (s *ShopStore) ClearFavorites(ctx context.Context) (err error) {
	defer s.track("clear favorites")(&err)

	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.services.Favorites.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}

	s.update(userID, func(b basket) basket {
		b.Favorites = []Product{}
		return b
	})
	s.save(ctx)
	return nil
}

func (s *ShopStore) IsFavorite(ctx context.Context, productID string) bool {
	return slices.ContainsFunc(s.view(ctx).Favorites, func(x Product) bool { return x.ID == productID })
}

func (s *ShopStore) Favorites(ctx context.Context) []Product {
	return slices.Clone(s.view(ctx).Favorites)
}

// Cart

func (s *ShopStore) LoadCart(ctx context.Context) (err error) {
	defer s.track("load cart")(&err)

	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.loadCart(ctx, userID); err != nil {
		return err
	}
	s.save(ctx)
	return nil
}

func (s *ShopStore) loadCart(ctx context.Context, userID string) error {
	rows, err := s.services.Cart.GetUserCart(ctx, userID)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	list := make([]CartItem, len(rows))
	for i, r := range rows {
		list[i] = cartItemFromRow(r)
	}
	s.update(userID, func(b basket) basket {
		b.Cart = list
		return b
	})
	return nil
}

// AddToCart adds quantity of product as the line (product, size, color). An
// existing line has its quantity raised instead of gaining a duplicate.
// A quantity below one counts as one.
func (s *ShopStore) AddToCart(ctx context.Context, p Product, quantity int, size, color string) (err error) {
	defer s.track("add to cart")(&err)

	if quantity < 1 {
		quantity = 1
	}
	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	defer s.locks.Lock("cart:" + userID + ":" + p.ID)()

	existing, found := line(s.basket(userID).Cart, p.ID, size, color)
	if found {
		total := existing.Quantity + quantity
		if _, err := s.services.Cart.UpdateQuantity(ctx, userID, p.ID, size, color, total); err != nil {
			return fmt.Errorf("add to cart %s: %w", p.ID, err)
		}
		s.update(userID, func(b basket) basket {
			b.Cart = setQuantity(b.Cart, total, func(c CartItem) bool { return c.sameLine(p.ID, size, color) })
			return b
		})
	} else {
		if _, err := s.services.Cart.Add(ctx, userID, p.ID, quantity, size, color); err != nil {
			return fmt.Errorf("add to cart %s: %w", p.ID, err)
		}
		item := CartItem{Product: p, Quantity: quantity, SelectedSize: size, SelectedColor: color}
		s.update(userID, func(b basket) basket {
			b.Cart = append(slices.Clip(b.Cart), item)
			return b
		})
	}
	s.save(ctx)
	return nil
}

// RemoveFromCart drops every line of the product.
func (s *ShopStore) RemoveFromCart(ctx context.Context, productID string) (err error) {
	defer s.track("remove from cart")(&err)

	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	defer s.locks.Lock("cart:" + userID + ":" + productID)()

	if err := s.removeProduct(ctx, userID, productID); err != nil {
		return fmt.Errorf("remove from cart %s: %w", productID, err)
	}
	s.save(ctx)
	return nil
}

// UpdateCartItemQuantity sets the quantity of every line of the product in a
// single write. A quantity of zero or less removes them; a product not in the
// cart is left alone.
func (s *ShopStore) UpdateCartItemQuantity(ctx context.Context, productID string, quantity int) (err error) {
	defer s.track("update cart quantity")(&err)

	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	defer s.locks.Lock("cart:" + userID + ":" + productID)()

	ofProduct := func(c CartItem) bool { return c.ID == productID }
	if !slices.ContainsFunc(s.basket(userID).Cart, ofProduct) {
		return nil
	}

	if quantity <= 0 {
		if err := s.removeProduct(ctx, userID, productID); err != nil {
			return fmt.Errorf("update cart quantity %s: %w", productID, err)
		}
		s.save(ctx)
		return nil
	}

	if err := s.services.Cart.SetProductQuantity(ctx, userID, productID, quantity); err != nil {
		return fmt.Errorf("update cart quantity %s: %w", productID, err)
	}
	s.update(userID, func(b basket) basket {
		b.Cart = setQuantity(b.Cart, quantity, ofProduct)
		return b
	})
	s.save(ctx)
	return nil
}

// UpdateCartLineQuantity is UpdateCartItemQuantity for a single line.
func (s *ShopStore) UpdateCartLineQuantity(ctx context.Context, productID, size, color string, quantity int) (err error) {
	defer s.track("update cart line")(&err)

	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	defer s.locks.Lock("cart:" + userID + ":" + productID)()

	sameLine := func(c CartItem) bool { return c.sameLine(productID, size, color) }
	if !slices.ContainsFunc(s.basket(userID).Cart, sameLine) {
		return nil
	}

	if quantity <= 0 {
		if err := s.services.Cart.RemoveLine(ctx, userID, productID, size, color); err != nil {
			return fmt.Errorf("update cart line %s: %w", productID, err)
		}
		s.update(userID, func(b basket) basket {
			b.Cart = slices.DeleteFunc(slices.Clone(b.Cart), sameLine)
			return b
		})
	} else {
		if _, err := s.services.Cart.UpdateQuantity(ctx, userID, productID, size, color, quantity); err != nil {
			return fmt.Errorf("update cart line %s: %w", productID, err)
		}
		s.update(userID, func(b basket) basket {
			b.Cart = setQuantity(b.Cart, quantity, sameLine)
			return b
		})
	}
	s.save(ctx)
	return nil
}

func (s *ShopStore) ClearCart(ctx context.Context) (err error) {
	defer s.track("clear cart")(&err)

	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.services.Cart.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	s.update(userID, func(b basket) basket {
		b.Cart = []CartItem{}
		return b
	})
	s.save(ctx)
	return nil
}

func (s *ShopStore) IsInCart(ctx context.Context, productID string) bool {
	return slices.ContainsFunc(s.view(ctx).Cart, func(c CartItem) bool { return c.ID == productID })
}

func (s *ShopStore) Cart(ctx context.Context) []CartItem {
	return slices.Clone(s.view(ctx).Cart)
}

// CartTotal is the sum of price times quantity over all lines.
func (s *ShopStore) CartTotal(ctx context.Context) decimal.Decimal {
	return cartTotal(s.view(ctx).Cart)
}

func (s *ShopStore) CartItemsCount(ctx context.Context) int {
	n := 0
	for _, c := range s.view(ctx).Cart {
		n += c.Quantity
	}
	return n
}

func (s *ShopStore) removeProduct(ctx context.Context, userID, productID string) error {
	if err := s.services.Cart.Remove(ctx, userID, productID); err != nil {
		return err
	}
	s.update(userID, func(b basket) basket {
		b.Cart = removeByID(b.Cart, productID, func(c CartItem) string { return c.ID })
		return b
	})
	return nil
}

func line(cart []CartItem, productID, size, color string) (CartItem, bool) {
	for _, c := range cart {
		if c.sameLine(productID, size, color) {
			return c, true
		}
	}
	return CartItem{}, false
}

// setQuantity returns a copy of cart with every line matching match set to
// quantity.
func setQuantity(cart []CartItem, quantity int, match func(CartItem) bool) []CartItem {
	out := slices.Clone(cart)
	for i := range out {
		if match(out[i]) {
			out[i].Quantity = quantity
		}
	}
	return out
}

func cartTotal(cart []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, c := range cart {
		total = total.Add(c.Subtotal())
	}
	return total
}
