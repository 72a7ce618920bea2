package models

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type FavoriteRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	// Quantity below one is treated as one.
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selected_size"`
	SelectedColor string `json:"selected_color"`
}

// CartQuantityRequest sets the quantity of every line of a product, or of a
// single line when LineOnly is set. Zero or less removes.
type CartQuantityRequest struct {
	Quantity      int    `json:"quantity"`
	LineOnly      bool   `json:"line_only"`
	SelectedSize  string `json:"selected_size"`
	SelectedColor string `json:"selected_color"`
}

type CompleteOrderRequest struct {
	WorkerID        string   `json:"worker_id"`
	CompletedImages []string `json:"completed_images"`
}

type StartOrderRequest struct {
	WorkerID string `json:"worker_id"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
