package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yasmin-alsham-backend/internal/database"
	"yasmin-alsham-backend/internal/models"
	"yasmin-alsham-backend/internal/store"
)

// ShopHandler exposes the favorites and cart of the bearer token's user.
type ShopHandler struct {
	shop     *store.ShopStore
	products *database.ProductService
	whatsApp string
}

func NewShopHandler(shop *store.ShopStore, products *database.ProductService, whatsAppNumber string) *ShopHandler {
	return &ShopHandler{shop: shop, products: products, whatsApp: whatsAppNumber}
}

type CartResponse struct {
	Items []store.CartItem `json:"items"`
	Total string           `json:"total"`
	Count int              `json:"count"`
}

func (h *ShopHandler) cart(c *gin.Context) CartResponse {
	ctx := c.Request.Context()
	return CartResponse{
		Items: h.shop.Cart(ctx),
		Total: h.shop.CartTotal(ctx).String(),
		Count: h.shop.CartItemsCount(ctx),
	}
}

func (h *ShopHandler) product(c *gin.Context, id string) (store.Product, bool) {
	row, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "product not found", err)
		return store.Product{}, false
	}
	return store.ProductFromRow(*row), true
}

func (h *ShopHandler) ListFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, h.shop.Favorites(c.Request.Context()))
}

func (h *ShopHandler) AddFavorite(c *gin.Context) {
	var req models.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid favorite", err)
		return
	}
	p, ok := h.product(c, req.ProductID)
	if !ok {
		return
	}
	if err := h.shop.AddToFavorites(c.Request.Context(), p); err != nil {
		respondError(c, "failed to add favorite", err)
		return
	}
	c.JSON(http.StatusOK, h.shop.Favorites(c.Request.Context()))
}

func (h *ShopHandler) RemoveFavorite(c *gin.Context) {
	if err := h.shop.RemoveFromFavorites(c.Request.Context(), c.Param("product_id")); err != nil {
		respondError(c, "failed to remove favorite", err)
		return
	}
	c.JSON(http.StatusOK, h.shop.Favorites(c.Request.Context()))
}

func (h *ShopHandler) ClearFavorites(c *gin.Context) {
	if err := h.shop.ClearFavorites(c.Request.Context()); err != nil {
		respondError(c, "failed to clear favorites", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ShopHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cart(c))
}

// AddToCart godoc
// @Summary     Add a product to the cart
// @Description Adding a product with the same size and color raises the
// @Description quantity of the existing line.
// @Tags        cart
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.AddToCartRequest true "Cart line"
// @Success     200 {object} handlers.CartResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /cart [post]
func (h *ShopHandler) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid cart line", err)
		return
	}
	p, ok := h.product(c, req.ProductID)
	if !ok {
		return
	}
	if err := h.shop.AddToCart(c.Request.Context(), p, req.Quantity, req.SelectedSize, req.SelectedColor); err != nil {
		respondError(c, "failed to add to cart", err)
		return
	}
	c.JSON(http.StatusOK, h.cart(c))
}

func (h *ShopHandler) UpdateCartQuantity(c *gin.Context) {
	var req models.CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid quantity", err)
		return
	}
	ctx := c.Request.Context()
	productID := c.Param("product_id")

	var err error
	if req.LineOnly {
		err = h.shop.UpdateCartLineQuantity(ctx, productID, req.SelectedSize, req.SelectedColor, req.Quantity)
	} else {
		err = h.shop.UpdateCartItemQuantity(ctx, productID, req.Quantity)
	}
	if err != nil {
		respondError(c, "failed to update cart", err)
		return
	}
	c.JSON(http.StatusOK, h.cart(c))
}

func (h *ShopHandler) RemoveFromCart(c *gin.Context) {
	if err := h.shop.RemoveFromCart(c.Request.Context(), c.Param("product_id")); err != nil {
		respondError(c, "failed to remove from cart", err)
		return
	}
	c.JSON(http.StatusOK, h.cart(c))
}

func (h *ShopHandler) ClearCart(c *gin.Context) {
	if err := h.shop.ClearCart(c.Request.Context()); err != nil {
		respondError(c, "failed to clear cart", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CartMessage godoc
// @Summary     WhatsApp order message
// @Description Returns the escaped order summary for the cart and a wa.me
// @Description link that opens a chat with the boutique. Both are empty
// @Description strings when the cart is empty.
// @Tags        cart
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.CartMessageResponse
// @Router      /cart/message [get]
func (h *ShopHandler) CartMessage(c *gin.Context) {
	cart := h.shop.Cart(c.Request.Context())
	msg := store.OrderMessage(cart)
	resp := models.CartMessageResponse{Message: msg}
	if msg != "" {
		resp.Link = store.WhatsAppLink(h.whatsApp, msg)
	}
	if raw, _ := strconv.ParseBool(c.Query("raw")); raw {
		resp.Message = store.OrderSummary(cart)
	}
	c.JSON(http.StatusOK, resp)
}
