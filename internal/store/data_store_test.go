package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yasmin-alsham-backend/internal/models"
	"yasmin-alsham-backend/internal/store"
)

func newDataStore(t *testing.T) (*store.DataStore, *fixture) {
	t.Helper()
	f := newFixture(t)
	return store.NewDataStore(f.services, f.mirror, nil), f
}

func appointmentDraft(name string) store.AppointmentDraft {
	return store.AppointmentDraft{
		ClientName:      name,
		ClientPhone:     "0500000000",
		AppointmentDate: "2026-11-05",
		AppointmentTime: "10:00",
	}
}

func TestDataStore_AddAppointment(t *testing.T) {
	s, _ := newDataStore(t)
	ctx := context.Background()

	a, err := s.AddAppointment(ctx, appointmentDraft("Layla"))
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, models.AppointmentStatusPending, a.Status)
	require.Len(t, s.Appointments(), 1)
	assert.Equal(t, a.ID, s.Appointments()[0].ID)
	assert.Empty(t, s.Err())
	assert.False(t, s.Busy())
}

func TestDataStore_UpdateAppointmentKeepsOmittedFields(t *testing.T) {
	s, _ := newDataStore(t)
	ctx := context.Background()

	a, err := s.AddAppointment(ctx, appointmentDraft("Layla"))
	require.NoError(t, err)

	updated, err := s.UpdateAppointment(ctx, a.ID, store.AppointmentPatch{Status: ptr(models.AppointmentStatusConfirmed)})
	require.NoError(t, err)

	assert.Equal(t, models.AppointmentStatusConfirmed, updated.Status)
	assert.Equal(t, "Layla", updated.ClientName)
	assert.Equal(t, "10:00", updated.AppointmentTime)

	got, ok := s.Appointment(a.ID)
	require.True(t, ok)
	assert.Equal(t, updated, got)
	assert.Len(t, s.Appointments(), 1)
}

func TestDataStore_DeleteAppointment(t *testing.T) {
	s, _ := newDataStore(t)
	ctx := context.Background()

	a, err := s.AddAppointment(ctx, appointmentDraft("Layla"))
	require.NoError(t, err)
	b, err := s.AddAppointment(ctx, appointmentDraft("Sara"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteAppointment(ctx, a.ID))

	require.Len(t, s.Appointments(), 1)
	assert.Equal(t, b.ID, s.Appointments()[0].ID)
	_, ok := s.Appointment(a.ID)
	assert.False(t, ok)
}

func TestDataStore_FailedWriteLeavesCollectionUnchanged(t *testing.T) {
	s, f := newDataStore(t)
	ctx := context.Background()

	a, err := s.AddAppointment(ctx, appointmentDraft("Layla"))
	require.NoError(t, err)
	before := s.Appointments()

	f.backend.fail.Store(true)

	_, err = s.AddAppointment(ctx, appointmentDraft("Sara"))
	assert.ErrorIs(t, err, errBackendDown)
	_, err = s.UpdateAppointment(ctx, a.ID, store.AppointmentPatch{ClientName: ptr("Mona")})
	assert.ErrorIs(t, err, errBackendDown)
	assert.ErrorIs(t, s.DeleteAppointment(ctx, a.ID), errBackendDown)

	assert.Equal(t, before, s.Appointments())
	assert.Contains(t, s.Err(), "backend unavailable")
	assert.False(t, s.Busy())

	f.backend.fail.Store(false)
	require.NoError(t, s.LoadAppointments(ctx))
	assert.Empty(t, s.Err())
}

func TestDataStore_ClearError(t *testing.T) {
	s, f := newDataStore(t)
	f.backend.fail.Store(true)

	require.Error(t, s.LoadOrders(context.Background()))
	require.NotEmpty(t, s.Err())

	s.ClearError()
	assert.Empty(t, s.Err())
}

func TestDataStore_OrderLifecycle(t *testing.T) {
	s, _ := newDataStore(t)
	ctx := context.Background()

	o, err := s.AddOrder(ctx, store.OrderDraft{
		ClientName:   "Huda",
		ClientPhone:  "0511111111",
		Description:  "wedding dress",
		Measurements: models.Measurements{Waist: ptr(70.0)},
		Price:        decimal.NewFromInt(1200),
		DueDate:      "2026-12-01",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, o.Status)

	started, err := s.StartOrderWork(ctx, o.ID, "worker-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusInProgress, started.Status)
	assert.Equal(t, "worker-1", started.AssignedWorker)

	done, err := s.CompleteOrder(ctx, o.ID, "worker-1", []string{"https://cdn/done.jpg"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, done.Status)
	assert.Equal(t, []string{"https://cdn/done.jpg"}, done.CompletedImages)
	assert.Equal(t, "wedding dress", done.Description)
	require.NotNil(t, done.Measurements.Waist)
	assert.Equal(t, 70.0, *done.Measurements.Waist)

	got, ok := s.Order(o.ID)
	require.True(t, ok)
	assert.Equal(t, models.OrderStatusCompleted, got.Status)
}

func TestDataStore_CompleteOrderByAnotherWorker(t *testing.T) {
	s, _ := newDataStore(t)
	ctx := context.Background()

	o, err := s.AddOrder(ctx, store.OrderDraft{
		ClientName:     "Huda",
		ClientPhone:    "0511111111",
		AssignedWorker: "worker-1",
		Status:         models.OrderStatusInProgress,
		DueDate:        "2026-12-01",
	})
	require.NoError(t, err)

	_, err = s.CompleteOrder(ctx, o.ID, "worker-2", nil)
	assert.ErrorIs(t, err, store.ErrWorkerMismatch)
	assert.NotEmpty(t, s.Err())

	got, _ := s.Order(o.ID)
	assert.Equal(t, models.OrderStatusInProgress, got.Status)
}

func TestDataStore_StartOrderAssignedToAnotherWorker(t *testing.T) {
	s, _ := newDataStore(t)
	ctx := context.Background()

	o, err := s.AddOrder(ctx, store.OrderDraft{
		ClientName:     "Huda",
		ClientPhone:    "0511111111",
		AssignedWorker: "worker-1",
		DueDate:        "2026-12-01",
	})
	require.NoError(t, err)

	_, err = s.StartOrderWork(ctx, o.ID, "worker-2")
	assert.ErrorIs(t, err, store.ErrWorkerMismatch)

	got, _ := s.Order(o.ID)
	assert.Equal(t, "worker-1", got.AssignedWorker)
	assert.Equal(t, models.OrderStatusPending, got.Status)

	// the assigned worker may still start it
	started, err := s.StartOrderWork(ctx, o.ID, "worker-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusInProgress, started.Status)
}

func TestDataStore_CompleteUnassignedOrderAsWorker(t *testing.T) {
	s, _ := newDataStore(t)
	ctx := context.Background()

	o, err := s.AddOrder(ctx, store.OrderDraft{ClientName: "Huda", ClientPhone: "1", DueDate: "2026-12-01"})
	require.NoError(t, err)

	_, err = s.CompleteOrder(ctx, o.ID, "worker-1", nil)
	assert.ErrorIs(t, err, store.ErrWorkerMismatch)

	// admins complete without naming a worker
	done, err := s.CompleteOrder(ctx, o.ID, "", nil)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, done.Status)
}

func TestDataStore_AttachOrderImages(t *testing.T) {
	s, _ := newDataStore(t)
	ctx := context.Background()

	o, err := s.AddOrder(ctx, store.OrderDraft{
		ClientName:     "Huda",
		ClientPhone:    "1",
		AssignedWorker: "worker-1",
		DueDate:        "2026-12-01",
		Images:         []string{"https://cdn/a.jpg"},
	})
	require.NoError(t, err)

	got, err := s.AttachOrderImages(ctx, o.ID, "worker-1", []string{"https://cdn/b.jpg"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}, got.Images)

	got, err = s.AttachOrderImages(ctx, o.ID, "", []string{"https://cdn/done.jpg"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/done.jpg"}, got.CompletedImages)

	_, err = s.AttachOrderImages(ctx, o.ID, "worker-2", []string{"https://cdn/x.jpg"}, false)
	assert.ErrorIs(t, err, store.ErrWorkerMismatch)
	got, _ = s.Order(o.ID)
	assert.Len(t, got.Images, 2)
}

func TestDataStore_StartOrderNotYetLoaded(t *testing.T) {
	s, f := newDataStore(t)
	ctx := context.Background()

	row, err := f.services.Orders.Create(ctx, &models.Order{
		ClientName: "Sara", ClientPhone: "2", DueDate: "2026-11-09", AssignedWorkerID: ptr("worker-1"),
	})
	require.NoError(t, err)

	_, err = s.StartOrderWork(ctx, row.ID, "worker-2")
	assert.ErrorIs(t, err, store.ErrWorkerMismatch)

	_, err = s.StartOrderWork(ctx, "missing", "worker-2")
	assert.Error(t, err)
}

func TestDataStore_UpdateUnknownOrder(t *testing.T) {
	s, _ := newDataStore(t)

	_, err := s.UpdateOrder(context.Background(), "missing", store.OrderPatch{Notes: ptr("x")})
	require.Error(t, err)
	assert.Empty(t, s.Orders())
}

func TestDataStore_Workers(t *testing.T) {
	s, f := newDataStore(t)
	ctx := context.Background()

	w, err := s.AddWorker(ctx, store.WorkerDraft{
		Email:     "noor@example.com",
		Password:  "secret123",
		FullName:  "Noor",
		Specialty: "embroidery",
		IsActive:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleWorker, w.Role)
	assert.Empty(t, w.Password)

	row, err := f.services.Workers.Get(ctx, w.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", row.PasswordHash)
	assert.NotEmpty(t, row.PasswordHash)

	updated, err := s.UpdateWorker(ctx, w.ID, store.WorkerPatch{IsActive: ptr(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Noor", updated.FullName)

	require.NoError(t, s.DeleteWorker(ctx, w.ID))
	assert.Empty(t, s.Workers())
}

func TestDataStore_WorkerForUser(t *testing.T) {
	s, _ := newDataStore(t)
	ctx := context.Background()

	w, err := s.AddWorker(ctx, store.WorkerDraft{
		UserID:   "auth-user-1",
		Email:    "noor@example.com",
		Password: "secret123",
		FullName: "Noor",
	})
	require.NoError(t, err)
	assert.Equal(t, "auth-user-1", w.UserID)
	assert.NotEqual(t, w.ID, w.UserID)

	got, ok := s.WorkerForUser("auth-user-1")
	require.True(t, ok)
	assert.Equal(t, w.ID, got.ID)

	_, ok = s.WorkerForUser(w.ID)
	assert.False(t, ok)
	_, ok = s.WorkerForUser("")
	assert.False(t, ok)
}

func TestDataStore_FailedLoadKeepsCollections(t *testing.T) {
	s, f := newDataStore(t)
	ctx := context.Background()

	_, err := f.services.Orders.Create(ctx, &models.Order{ClientName: "Sara", ClientPhone: "2", DueDate: "2026-11-09"})
	require.NoError(t, err)
	_, err = s.AddWorker(ctx, store.WorkerDraft{Email: "noor@example.com", Password: "secret123", FullName: "Noor"})
	require.NoError(t, err)
	require.NoError(t, s.LoadAll(ctx))
	orders, workers := s.Orders(), s.Workers()
	require.Len(t, orders, 1)
	require.Len(t, workers, 1)

	f.backend.fail.Store(true)
	assert.ErrorIs(t, s.LoadOrders(ctx), errBackendDown)
	assert.ErrorIs(t, s.LoadWorkers(ctx), errBackendDown)

	assert.Equal(t, orders, s.Orders())
	assert.Equal(t, workers, s.Workers())
	assert.NotEmpty(t, s.Err())
}

func TestDataStore_FailedOrderAndWorkerWritesLeaveMemory(t *testing.T) {
	s, f := newDataStore(t)
	ctx := context.Background()

	o, err := s.AddOrder(ctx, store.OrderDraft{ClientName: "Huda", ClientPhone: "1", DueDate: "2026-12-01"})
	require.NoError(t, err)
	w, err := s.AddWorker(ctx, store.WorkerDraft{Email: "noor@example.com", Password: "secret123", FullName: "Noor"})
	require.NoError(t, err)
	orders, workers := s.Orders(), s.Workers()

	f.backend.fail.Store(true)

	_, err = s.UpdateOrder(ctx, o.ID, store.OrderPatch{Notes: ptr("rush")})
	assert.ErrorIs(t, err, errBackendDown)
	_, err = s.StartOrderWork(ctx, o.ID, "worker-1")
	assert.ErrorIs(t, err, errBackendDown)
	assert.ErrorIs(t, s.DeleteOrder(ctx, o.ID), errBackendDown)
	_, err = s.UpdateWorker(ctx, w.ID, store.WorkerPatch{FullName: ptr("Noura")})
	assert.ErrorIs(t, err, errBackendDown)
	assert.ErrorIs(t, s.DeleteWorker(ctx, w.ID), errBackendDown)

	assert.Equal(t, orders, s.Orders())
	assert.Equal(t, workers, s.Workers())
	assert.Contains(t, s.Err(), "backend unavailable")
	assert.False(t, s.Busy())
}

func TestDataStore_LoadAll(t *testing.T) {
	s, f := newDataStore(t)
	ctx := context.Background()

	_, err := f.services.Appointments.Create(ctx, &models.Appointment{
		ClientName: "Layla", ClientPhone: "1", AppointmentDate: "2026-11-05", AppointmentTime: "10:00",
	})
	require.NoError(t, err)
	_, err = f.services.Orders.Create(ctx, &models.Order{ClientName: "Sara", ClientPhone: "2", DueDate: "2026-11-09"})
	require.NoError(t, err)

	require.NoError(t, s.LoadAll(ctx))
	assert.Len(t, s.Appointments(), 1)
	assert.Len(t, s.Orders(), 1)
	assert.Empty(t, s.Workers())
}

func TestDataStore_Stats(t *testing.T) {
	s, _ := newDataStore(t)
	ctx := context.Background()

	orders := []struct {
		status string
		price  int64
	}{
		{models.OrderStatusCompleted, 200},
		{models.OrderStatusDelivered, 150},
		{models.OrderStatusPending, 999},
		{models.OrderStatusInProgress, 80},
	}
	for _, o := range orders {
		_, err := s.AddOrder(ctx, store.OrderDraft{
			ClientName:  "c",
			ClientPhone: "1",
			Status:      o.status,
			Price:       decimal.NewFromInt(o.price),
			DueDate:     "2026-12-01",
		})
		require.NoError(t, err)
	}
	_, err := s.AddAppointment(ctx, appointmentDraft("Layla"))
	require.NoError(t, err)

	st := s.Stats()
	assert.Equal(t, 4, st.TotalOrders)
	assert.Equal(t, 1, st.ActiveOrders)
	assert.Equal(t, 1, st.CompletedOrders)
	assert.Equal(t, 1, st.PendingAppointments)
	assert.True(t, st.TotalRevenue.Equal(decimal.NewFromInt(350)), st.TotalRevenue.String())
}

func TestDataStore_RestoreFromMirror(t *testing.T) {
	s, f := newDataStore(t)
	ctx := context.Background()

	a, err := s.AddAppointment(ctx, appointmentDraft("Layla"))
	require.NoError(t, err)

	restored := store.NewDataStore(f.services, f.mirror, nil)
	require.NoError(t, restored.Restore(ctx))

	require.Len(t, restored.Appointments(), 1)
	assert.Equal(t, a.ID, restored.Appointments()[0].ID)
	assert.Empty(t, restored.Orders())
}

func TestDataStore_ConcurrentSavesKeepLatestSnapshot(t *testing.T) {
	f := newFixture(t)
	s := store.NewDataStore(f.services, &slowMirror{Mirror: f.mirror}, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, name := range []string{"Layla", "Sara"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddAppointment(ctx, appointmentDraft(name))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	restored := store.NewDataStore(f.services, f.mirror, nil)
	require.NoError(t, restored.Restore(ctx))
	assert.Len(t, restored.Appointments(), 2)
}
