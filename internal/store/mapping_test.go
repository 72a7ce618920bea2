package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"yasmin-alsham-backend/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestOrderMapping_RoundTrip(t *testing.T) {
	draft := OrderDraft{
		ClientName:     "Layla",
		ClientPhone:    "0500000000",
		Description:    "evening dress",
		Fabric:         "silk",
		Measurements:   models.Measurements{Chest: ptr(90.0), FrontLength: ptr(140.0)},
		Price:          decimal.RequireFromString("350.50"),
		Status:         models.OrderStatusPending,
		AssignedWorker: "worker-1",
		DueDate:        "2026-12-01",
		Images:         []string{"a.jpg"},
	}

	o := orderFromRow(*orderToRow(draft))

	assert.Equal(t, draft.ClientName, o.ClientName)
	assert.Equal(t, draft.Fabric, o.Fabric)
	assert.Equal(t, draft.Measurements, o.Measurements)
	assert.True(t, draft.Price.Equal(o.Price))
	assert.Equal(t, draft.AssignedWorker, o.AssignedWorker)
	assert.Equal(t, draft.Images, o.Images)
	assert.Empty(t, o.Notes)
}

func TestOrderPatchToRow_OnlySetFields(t *testing.T) {
	m := orderPatchToRow(OrderPatch{
		Status:          ptr(models.OrderStatusDelivered),
		Notes:           ptr(""),
		CompletedImages: &[]string{"done.jpg"},
	})

	assert.Len(t, m, 3)
	assert.Equal(t, models.OrderStatusDelivered, m["status"])
	assert.Nil(t, m["notes"])
	assert.Equal(t, datatypes.JSONSlice[string]{"done.jpg"}, m["completed_images"])
}

func TestAppointmentMapping_DefaultsStatus(t *testing.T) {
	row := appointmentToRow(AppointmentDraft{ClientName: "Sara", AppointmentDate: "2026-11-05", AppointmentTime: "09:30"})
	assert.Equal(t, models.AppointmentStatusPending, row.Status)
	assert.Nil(t, row.Notes)

	a := appointmentFromRow(*row)
	assert.Equal(t, "09:30", a.AppointmentTime)
}

func TestWorkerMapping_HashesPassword(t *testing.T) {
	row, err := workerToRow(WorkerDraft{Email: "noor@example.com", Password: "secret123", FullName: "Noor"})
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte("secret123")))

	w := workerFromRow(*row)
	assert.Empty(t, w.Password)
	assert.Equal(t, models.RoleWorker, w.Role)

	m, err := workerPatchToRow(WorkerPatch{Password: ptr("")})
	require.NoError(t, err)
	assert.NotContains(t, m, "password_hash")
}

func TestWorkerMapping_UserID(t *testing.T) {
	row, err := workerToRow(WorkerDraft{UserID: "auth-1", Email: "noor@example.com", Password: "secret123", FullName: "Noor"})
	require.NoError(t, err)
	require.NotNil(t, row.UserID)
	assert.Equal(t, "auth-1", workerFromRow(*row).UserID)

	row, err = workerToRow(WorkerDraft{Email: "noor@example.com", Password: "secret123", FullName: "Noor"})
	require.NoError(t, err)
	assert.Nil(t, row.UserID)

	m, err := workerPatchToRow(WorkerPatch{UserID: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"user_id": (*string)(nil)}, m)
}

func TestProductFromRow_EmptyListsNotNil(t *testing.T) {
	p := ProductFromRow(models.Product{ID: "p1", Name: "Dress", Price: decimal.NewFromInt(10)})
	assert.NotNil(t, p.Sizes)
	assert.NotNil(t, p.Colors)

	bare := embeddedProduct("gone", nil)
	assert.Equal(t, "gone", bare.ID)
	assert.True(t, bare.Price.IsZero())
}
