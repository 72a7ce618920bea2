package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleWorker = "worker"
	RoleClient = "client"
)

type User struct {
	ID        string    `json:"id,omitempty" gorm:"primaryKey"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

type Worker struct {
	ID                   string    `json:"id,omitempty" gorm:"primaryKey"`
	UserID               *string   `json:"user_id,omitempty"`
	Email                string    `json:"email"`
	PasswordHash         string    `json:"password_hash,omitempty"`
	FullName             string    `json:"full_name"`
	Phone                string    `json:"phone"`
	Specialty            string    `json:"specialty"`
	Role                 string    `json:"role"`
	IsActive             bool      `json:"is_active"`
	ExperienceYears      *int      `json:"experience_years,omitempty"`
	HourlyRate           *float64  `json:"hourly_rate,omitempty"`
	PerformanceRating    *float64  `json:"performance_rating,omitempty"`
	TotalCompletedOrders *int      `json:"total_completed_orders,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (Worker) TableName() string { return "workers" }

// Identity is an authenticated user, taken from a bearer token or remembered
// from the last sign-in.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
