package store

import (
	"time"

	"github.com/shopspring/decimal"

	"yasmin-alsham-backend/internal/models"
)

// Shapes held in memory and written to the mirror. They use the storefront's
// camelCase field names; rows on the wire use snake_case (see models).

type Appointment struct {
	ID              string    `json:"id"`
	ClientName      string    `json:"clientName"`
	ClientPhone     string    `json:"clientPhone"`
	AppointmentDate string    `json:"appointmentDate"`
	AppointmentTime string    `json:"appointmentTime"`
	Notes           string    `json:"notes,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type AppointmentDraft struct {
	ClientName      string `json:"clientName" binding:"required"`
	ClientPhone     string `json:"clientPhone" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	AppointmentTime string `json:"appointmentTime" binding:"required"`
	Notes           string `json:"notes"`
	Status          string `json:"status"`
}

// AppointmentPatch carries only the fields to change; nil means untouched.
type AppointmentPatch struct {
	ClientName      *string `json:"clientName"`
	ClientPhone     *string `json:"clientPhone"`
	AppointmentDate *string `json:"appointmentDate"`
	AppointmentTime *string `json:"appointmentTime"`
	Status          *string `json:"status"`
	Notes           *string `json:"notes"`
}

type Order struct {
	ID              string              `json:"id"`
	ClientName      string              `json:"clientName"`
	ClientPhone     string              `json:"clientPhone"`
	Description     string              `json:"description"`
	Fabric          string              `json:"fabric"`
	Measurements    models.Measurements `json:"measurements"`
	Price           decimal.Decimal     `json:"price"`
	Status          string              `json:"status"`
	AssignedWorker  string              `json:"assignedWorker,omitempty"`
	DueDate         string              `json:"dueDate"`
	Notes           string              `json:"notes,omitempty"`
	VoiceNotes      []models.VoiceNote  `json:"voiceNotes,omitempty"`
	Images          []string            `json:"images,omitempty"`
	CompletedImages []string            `json:"completedImages,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

type OrderDraft struct {
	ClientName      string              `json:"clientName" binding:"required"`
	ClientPhone     string              `json:"clientPhone" binding:"required"`
	Description     string              `json:"description"`
	Fabric          string              `json:"fabric"`
	Measurements    models.Measurements `json:"measurements"`
	Price           decimal.Decimal     `json:"price"`
	Status          string              `json:"status"`
	AssignedWorker  string              `json:"assignedWorker"`
	DueDate         string              `json:"dueDate" binding:"required"`
	Notes           string              `json:"notes"`
	VoiceNotes      []models.VoiceNote  `json:"voiceNotes"`
	Images          []string            `json:"images"`
	CompletedImages []string            `json:"completedImages"`
}

type OrderPatch struct {
	ClientName      *string              `json:"clientName"`
	ClientPhone     *string              `json:"clientPhone"`
	Description     *string              `json:"description"`
	Fabric          *string              `json:"fabric"`
	Measurements    *models.Measurements `json:"measurements"`
	Price           *decimal.Decimal     `json:"price"`
	Status          *string              `json:"status"`
	AssignedWorker  *string              `json:"assignedWorker"`
	DueDate         *string              `json:"dueDate"`
	Notes           *string              `json:"notes"`
	VoiceNotes      *[]models.VoiceNote  `json:"voiceNotes"`
	Images          *[]string            `json:"images"`
	CompletedImages *[]string            `json:"completedImages"`
}

// Worker keeps the dashboard's historical field names. Password is write-only
// and is always empty once a worker has been read back. UserID is the auth
// account the worker signs in with.
type Worker struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Specialty string    `json:"specialty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type WorkerDraft struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FullName  string `json:"full_name" binding:"required"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
	IsActive  bool   `json:"is_active"`
}

type WorkerPatch struct {
	UserID    *string `json:"user_id"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	Specialty *string `json:"specialty"`
	IsActive  *bool   `json:"is_active"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
}

// CartItem is a product line. A line is identified by product id, size and
// color together; empty size or color means none was chosen.
type CartItem struct {
	Product
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
}

func (c CartItem) sameLine(productID, size, color string) bool {
	return c.ID == productID && c.SelectedSize == size && c.SelectedColor == color
}

// Subtotal is price times quantity.
func (c CartItem) Subtotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Stats is computed from memory on every call.
type Stats struct {
	TotalAppointments   int             `json:"totalAppointments"`
	TotalOrders         int             `json:"totalOrders"`
	TotalWorkers        int             `json:"totalWorkers"`
	PendingAppointments int             `json:"pendingAppointments"`
	ActiveOrders        int             `json:"activeOrders"`
	CompletedOrders     int             `json:"completedOrders"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
}
