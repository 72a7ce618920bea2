package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Measurements is stored verbatim in the orders.measurements JSON column.
// Every field is optional; absent values are omitted from the document.
type Measurements struct {
	Shoulder              *float64 `json:"shoulder,omitempty"`
	ShoulderCircumference *float64 `json:"shoulderCircumference,omitempty"`
	Chest                 *float64 `json:"chest,omitempty"`
	Waist                 *float64 `json:"waist,omitempty"`
	Hips                  *float64 `json:"hips,omitempty"`

	DartLength   *float64 `json:"dartLength,omitempty"`
	BodiceLength *float64 `json:"bodiceLength,omitempty"`
	Neckline     *float64 `json:"neckline,omitempty"`
	Armpit       *float64 `json:"armpit,omitempty"`

	SleeveLength *float64 `json:"sleeveLength,omitempty"`
	Forearm      *float64 `json:"forearm,omitempty"`
	Cuff         *float64 `json:"cuff,omitempty"`

	FrontLength *float64 `json:"frontLength,omitempty"`
	BackLength  *float64 `json:"backLength,omitempty"`

	// Legacy fields still present on older orders.
	Length    *float64 `json:"length,omitempty"`
	Shoulders *float64 `json:"shoulders,omitempty"`
	Sleeves   *float64 `json:"sleeves,omitempty"`
}

type VoiceNote struct {
	ID        string   `json:"id"`
	Data      string   `json:"data"`
	Timestamp int64    `json:"timestamp"`
	Duration  *float64 `json:"duration,omitempty"`
}

type Order struct {
	ID               string                           `json:"id,omitempty" gorm:"primaryKey"`
	ClientName       string                           `json:"client_name"`
	ClientPhone      string                           `json:"client_phone"`
	Description      string                           `json:"description"`
	Fabric           *string                          `json:"fabric,omitempty"`
	Measurements     datatypes.JSONType[Measurements] `json:"measurements"`
	Price            decimal.Decimal                  `json:"price" gorm:"type:numeric"`
	Status           string                           `json:"status"`
	AssignedWorkerID *string                          `json:"assigned_worker_id,omitempty"`
	DueDate          string                           `json:"due_date"`
	Notes            *string                          `json:"notes,omitempty"`
	VoiceNotes       datatypes.JSONSlice[VoiceNote]   `json:"voice_notes,omitempty"`
	Images           datatypes.JSONSlice[string]      `json:"images,omitempty"`
	CompletedImages  datatypes.JSONSlice[string]      `json:"completed_images,omitempty"`
	CreatedAt        time.Time                        `json:"created_at"`
	UpdatedAt        time.Time                        `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

// OrderStats mirrors the order_stats view.
type OrderStats struct {
	TotalOrders      int             `json:"total_orders"`
	PendingOrders    int             `json:"pending_orders"`
	InProgressOrders int             `json:"in_progress_orders"`
	CompletedOrders  int             `json:"completed_orders"`
	DeliveredOrders  int             `json:"delivered_orders"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
}
