package store

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"yasmin-alsham-backend/internal/models"
)

// Translation between rows and in-memory shapes. Fields not listed are not
// carried: row timestamps are read but never written from here (the data
// layer stamps them), and a worker's password only travels outward, as a
// bcrypt hash.

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func appointmentFromRow(r models.Appointment) Appointment {
	return Appointment{
		ID:              r.ID,
		ClientName:      r.ClientName,
		ClientPhone:     r.ClientPhone,
		AppointmentDate: r.AppointmentDate,
		AppointmentTime: r.AppointmentTime,
		Notes:           deref(r.Notes),
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func appointmentToRow(d AppointmentDraft) *models.Appointment {
	status := d.Status
	if status == "" {
		status = models.AppointmentStatusPending
	}
	return &models.Appointment{
		ClientName:      d.ClientName,
		ClientPhone:     d.ClientPhone,
		AppointmentDate: d.AppointmentDate,
		AppointmentTime: d.AppointmentTime,
		Status:          status,
		Notes:           optional(d.Notes),
	}
}

func appointmentPatchToRow(p AppointmentPatch) map[string]any {
	m := map[string]any{}
	set(m, "client_name", p.ClientName)
	set(m, "client_phone", p.ClientPhone)
	set(m, "appointment_date", p.AppointmentDate)
	set(m, "appointment_time", p.AppointmentTime)
	set(m, "status", p.Status)
	if p.Notes != nil {
		m["notes"] = optional(*p.Notes)
	}
	return m
}

func set[T any](m map[string]any, column string, v *T) {
	if v != nil {
		m[column] = *v
	}
}

func orderFromRow(r models.Order) Order {
	return Order{
		ID:              r.ID,
		ClientName:      r.ClientName,
		ClientPhone:     r.ClientPhone,
		Description:     r.Description,
		Fabric:          deref(r.Fabric),
		Measurements:    r.Measurements.Data(),
		Price:           r.Price,
		Status:          r.Status,
		AssignedWorker:  deref(r.AssignedWorkerID),
		DueDate:         r.DueDate,
		Notes:           deref(r.Notes),
		VoiceNotes:      r.VoiceNotes,
		Images:          r.Images,
		CompletedImages: r.CompletedImages,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func orderToRow(d OrderDraft) *models.Order {
	return &models.Order{
		ClientName:       d.ClientName,
		ClientPhone:      d.ClientPhone,
		Description:      d.Description,
		Fabric:           optional(d.Fabric),
		Measurements:     datatypes.NewJSONType(d.Measurements),
		Price:            d.Price,
		Status:           d.Status,
		AssignedWorkerID: optional(d.AssignedWorker),
		DueDate:          d.DueDate,
		Notes:            optional(d.Notes),
		VoiceNotes:       d.VoiceNotes,
		Images:           d.Images,
		CompletedImages:  d.CompletedImages,
	}
}

func orderPatchToRow(p OrderPatch) map[string]any {
	m := map[string]any{}
	set(m, "client_name", p.ClientName)
	set(m, "client_phone", p.ClientPhone)
	set(m, "description", p.Description)
	if p.Fabric != nil {
		m["fabric"] = optional(*p.Fabric)
	}
	if p.Measurements != nil {
		m["measurements"] = datatypes.NewJSONType(*p.Measurements)
	}
	set(m, "price", p.Price)
	set(m, "status", p.Status)
	if p.AssignedWorker != nil {
		m["assigned_worker_id"] = optional(*p.AssignedWorker)
	}
	set(m, "due_date", p.DueDate)
	if p.Notes != nil {
		m["notes"] = optional(*p.Notes)
	}
	if p.VoiceNotes != nil {
		m["voice_notes"] = datatypes.JSONSlice[models.VoiceNote](*p.VoiceNotes)
	}
	if p.Images != nil {
		m["images"] = datatypes.JSONSlice[string](*p.Images)
	}
	if p.CompletedImages != nil {
		m["completed_images"] = datatypes.JSONSlice[string](*p.CompletedImages)
	}
	return m
}

func workerFromRow(r models.Worker) Worker {
	return Worker{
		ID:        r.ID,
		UserID:    deref(r.UserID),
		Email:     r.Email,
		FullName:  r.FullName,
		Phone:     r.Phone,
		Specialty: r.Specialty,
		Role:      models.RoleWorker,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func workerToRow(d WorkerDraft) (*models.Worker, error) {
	hash, err := hashPassword(d.Password)
	if err != nil {
		return nil, err
	}
	return &models.Worker{
		UserID:       optional(d.UserID),
		Email:        d.Email,
		PasswordHash: hash,
		FullName:     d.FullName,
		Phone:        d.Phone,
		Specialty:    d.Specialty,
		Role:         models.RoleWorker,
		IsActive:     d.IsActive,
	}, nil
}

func workerPatchToRow(p WorkerPatch) (map[string]any, error) {
	m := map[string]any{}
	if p.UserID != nil {
		m["user_id"] = optional(*p.UserID)
	}
	set(m, "email", p.Email)
	set(m, "full_name", p.FullName)
	set(m, "phone", p.Phone)
	set(m, "specialty", p.Specialty)
	set(m, "is_active", p.IsActive)
	if p.Password != nil && *p.Password != "" {
		hash, err := hashPassword(*p.Password)
		if err != nil {
			return nil, err
		}
		m["password_hash"] = hash
	}
	return m, nil
}

// ProductFromRow converts a products row into the shape held in favorites
// and cart lines.
func ProductFromRow(r models.Product) Product {
	p := Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Image:       deref(r.Image),
		Description: deref(r.Description),
		Category:    deref(r.Category),
		Sizes:       []string(r.Sizes),
		Colors:      []string(r.Colors),
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if p.Colors == nil {
		p.Colors = []string{}
	}
	return p
}

// embeddedProduct falls back to a bare id when the product row was not
// embedded, e.g. it has since been deleted.
func embeddedProduct(productID string, r *models.Product) Product {
	if r == nil {
		return Product{ID: productID, Price: decimal.Zero, Sizes: []string{}, Colors: []string{}}
	}
	return ProductFromRow(*r)
}

func cartItemFromRow(r models.CartItem) CartItem {
	return CartItem{
		Product:       embeddedProduct(r.ProductID, r.Product),
		Quantity:      r.Quantity,
		SelectedSize:  r.SelectedSize,
		SelectedColor: r.SelectedColor,
	}
}
