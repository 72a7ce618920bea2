package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"yasmin-alsham-backend/internal/database"
	"yasmin-alsham-backend/internal/models"
	"yasmin-alsham-backend/internal/persist"
)

// DataStore holds the dashboard collections: appointments, orders and
// workers. Collections only change after the backend has accepted a write.
type DataStore struct {
	status
	services *database.Services
	mirror   persist.Mirror
	locks    keyedMutex
	saveMu   sync.Mutex

	mu           sync.RWMutex
	appointments []Appointment
	orders       []Order
	workers      []Worker
}

type dataSnapshot struct {
	Appointments []Appointment `json:"appointments"`
	Orders       []Order       `json:"orders"`
	Workers      []Worker      `json:"workers"`
}

func NewDataStore(services *database.Services, mirror persist.Mirror, logger *slog.Logger) *DataStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataStore{
		status:       status{logger: logger.With("store", "data")},
		services:     services,
		mirror:       mirror,
		appointments: []Appointment{},
		orders:       []Order{},
		workers:      []Worker{},
	}
}

// Restore loads the last saved snapshot, if any, into memory.
func (s *DataStore) Restore(ctx context.Context) error {
	var snap dataSnapshot
	ok, err := s.mirror.Load(ctx, persist.DataKey, &snap)
	if err != nil || !ok {
		return err
	}
	s.mu.Lock()
	s.appointments = nonNil(snap.Appointments)
	s.orders = nonNil(snap.Orders)
	s.workers = nonNil(snap.Workers)
	s.mu.Unlock()
	return nil
}

// save writes the current collections. saveMu makes snapshot and write one
// step, so an older snapshot never lands after a newer one.
func (s *DataStore) save(ctx context.Context) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	snap := dataSnapshot{
		Appointments: s.appointments,
		Orders:       s.orders,
		Workers:      s.workers,
	}
	// collections are replaced, never mutated in place, so the snapshot can
	// be encoded outside the lock
	s.mu.RUnlock()

	if err := s.mirror.Save(context.WithoutCancel(ctx), persist.DataKey, snap); err != nil {
		s.logger.Error("failed to save snapshot", "error", err)
	}
}

// LoadAll refreshes the three collections concurrently. Each collection is
// replaced independently; the first failure is returned.
func (s *DataStore) LoadAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.LoadAppointments(ctx) })
	g.Go(func() error { return s.LoadOrders(ctx) })
	g.Go(func() error { return s.LoadWorkers(ctx) })
	return g.Wait()
}

// Appointments

func (s *DataStore) LoadAppointments(ctx context.Context) (err error) {
	defer s.track("load appointments")(&err)

	rows, err := s.services.Appointments.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load appointments: %w", err)
	}
	list := make([]Appointment, len(rows))
	for i, r := range rows {
		list[i] = appointmentFromRow(r)
	}

	s.mu.Lock()
	s.appointments = list
	s.mu.Unlock()
	s.save(ctx)
	return nil
}

func (s *DataStore) AddAppointment(ctx context.Context, draft AppointmentDraft) (a Appointment, err error) {
	defer s.track("add appointment")(&err)

	row, err := s.services.Appointments.Create(ctx, appointmentToRow(draft))
	if err != nil {
		return Appointment{}, fmt.Errorf("add appointment: %w", err)
	}
	a = appointmentFromRow(*row)

	s.mu.Lock()
	s.appointments = append(slices.Clip(s.appointments), a)
	s.mu.Unlock()
	s.save(ctx)
	s.logger.Info("appointment added", "id", a.ID)
	return a, nil
}

func (s *DataStore) UpdateAppointment(ctx context.Context, id string, patch AppointmentPatch) (a Appointment, err error) {
	defer s.track("update appointment")(&err)
	defer s.locks.Lock("appointment:" + id)()

	row, err := s.services.Appointments.Update(ctx, id, appointmentPatchToRow(patch))
	if err != nil {
		return Appointment{}, fmt.Errorf("update appointment %s: %w", id, err)
	}
	a = appointmentFromRow(*row)

	s.mu.Lock()
	s.appointments = replaceByID(s.appointments, a, func(x Appointment) string { return x.ID })
	s.mu.Unlock()
	s.save(ctx)
	return a, nil
}

func (s *DataStore) DeleteAppointment(ctx context.Context, id string) (err error) {
	defer s.track("delete appointment")(&err)
	defer s.locks.Lock("appointment:" + id)()

	if err := s.services.Appointments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete appointment %s: %w", id, err)
	}

	s.mu.Lock()
	s.appointments = removeByID(s.appointments, id, func(x Appointment) string { return x.ID })
	s.mu.Unlock()
	s.save(ctx)
	return nil
}

func (s *DataStore) Appointment(id string) (Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.appointments, id, func(x Appointment) string { return x.ID })
}

func (s *DataStore) Appointments() []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.appointments)
}

// Orders

func (s *DataStore) LoadOrders(ctx context.Context) (err error) {
	defer s.track("load orders")(&err)

	rows, err := s.services.Orders.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	list := make([]Order, len(rows))
	for i, r := range rows {
		list[i] = orderFromRow(r)
	}

	s.mu.Lock()
	s.orders = list
	s.mu.Unlock()
	s.save(ctx)
	return nil
}

func (s *DataStore) AddOrder(ctx context.Context, draft OrderDraft) (o Order, err error) {
	defer s.track("add order")(&err)

	row, err := s.services.Orders.Create(ctx, orderToRow(draft))
	if err != nil {
		return Order{}, fmt.Errorf("add order: %w", err)
	}
	o = orderFromRow(*row)

	s.mu.Lock()
	s.orders = append(slices.Clip(s.orders), o)
	s.mu.Unlock()
	s.save(ctx)
	s.logger.Info("order added", "id", o.ID)
	return o, nil
}

func (s *DataStore) UpdateOrder(ctx context.Context, id string, patch OrderPatch) (o Order, err error) {
	defer s.track("update order")(&err)
	defer s.locks.Lock("order:" + id)()
	return s.applyOrderPatch(ctx, "update order", id, orderPatchToRow(patch))
}

// StartOrderWork moves an order to in progress and assigns it to workerID.
// An order already assigned to another worker is left alone.
func (s *DataStore) StartOrderWork(ctx context.Context, orderID, workerID string) (Order, error) {
	return s.writeOrder(ctx, "start order work", orderID, func(current Order) (map[string]any, error) {
		if current.AssignedWorker != "" && current.AssignedWorker != workerID {
			return nil, ErrWorkerMismatch
		}
		return map[string]any{
			"status":             models.OrderStatusInProgress,
			"assigned_worker_id": workerID,
		}, nil
	})
}

// CompleteOrder marks an order completed and attaches the finished-work
// photos in the same write, so the status never changes without them. A
// non-empty workerID must be the order's assigned worker.
func (s *DataStore) CompleteOrder(ctx context.Context, orderID, workerID string, completedImages []string) (Order, error) {
	return s.writeOrder(ctx, "complete order", orderID, func(current Order) (map[string]any, error) {
		if workerID != "" && current.AssignedWorker != workerID {
			return nil, ErrWorkerMismatch
		}
		patch := map[string]any{"status": models.OrderStatusCompleted}
		if completedImages != nil {
			patch["completed_images"] = datatypes.JSONSlice[string](completedImages)
		}
		return patch, nil
	})
}

// AttachOrderImages appends urls to an order's reference images, or to its
// finished-work images when completed is set. A non-empty workerID must be
// the order's assigned worker.
func (s *DataStore) AttachOrderImages(ctx context.Context, orderID, workerID string, urls []string, completed bool) (Order, error) {
	return s.writeOrder(ctx, "attach order images", orderID, func(current Order) (map[string]any, error) {
		if workerID != "" && current.AssignedWorker != workerID {
			return nil, ErrWorkerMismatch
		}
		if completed {
			return map[string]any{
				"completed_images": datatypes.JSONSlice[string](append(slices.Clone(current.CompletedImages), urls...)),
			}, nil
		}
		return map[string]any{
			"images": datatypes.JSONSlice[string](append(slices.Clone(current.Images), urls...)),
		}, nil
	})
}

// writeOrder builds a patch from the order's current state and applies it,
// all under the order's lock.
func (s *DataStore) writeOrder(ctx context.Context, op, id string, build func(current Order) (map[string]any, error)) (o Order, err error) {
	defer s.track(op)(&err)
	defer s.locks.Lock("order:" + id)()

	current, ok := s.Order(id)
	if !ok {
		row, getErr := s.services.Orders.Get(ctx, id)
		if getErr != nil {
			return Order{}, fmt.Errorf("%s %s: %w", op, id, getErr)
		}
		current = orderFromRow(*row)
	}
	patch, buildErr := build(current)
	if buildErr != nil {
		return Order{}, fmt.Errorf("%s %s: %w", op, id, buildErr)
	}
	return s.applyOrderPatch(ctx, op, id, patch)
}

// applyOrderPatch expects the caller to hold the order's lock.
func (s *DataStore) applyOrderPatch(ctx context.Context, op, id string, patch map[string]any) (Order, error) {
	row, err := s.services.Orders.Update(ctx, id, patch)
	if err != nil {
		return Order{}, fmt.Errorf("%s %s: %w", op, id, err)
	}
	o := orderFromRow(*row)

	s.mu.Lock()
	s.orders = replaceByID(s.orders, o, func(x Order) string { return x.ID })
	s.mu.Unlock()
	s.save(ctx)
	return o, nil
}

func (s *DataStore) DeleteOrder(ctx context.Context, id string) (err error) {
	defer s.track("delete order")(&err)
	defer s.locks.Lock("order:" + id)()

	if err := s.services.Orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}

	s.mu.Lock()
	s.orders = removeByID(s.orders, id, func(x Order) string { return x.ID })
	s.mu.Unlock()
	s.save(ctx)
	return nil
}

func (s *DataStore) Order(id string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.orders, id, func(x Order) string { return x.ID })
}

func (s *DataStore) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.orders)
}

// Workers

func (s *DataStore) LoadWorkers(ctx context.Context) (err error) {
	defer s.track("load workers")(&err)

	rows, err := s.services.Workers.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load workers: %w", err)
	}
	list := make([]Worker, len(rows))
	for i, r := range rows {
		list[i] = workerFromRow(r)
	}

	s.mu.Lock()
	s.workers = list
	s.mu.Unlock()
	s.save(ctx)
	return nil
}

func (s *DataStore) AddWorker(ctx context.Context, draft WorkerDraft) (w Worker, err error) {
	defer s.track("add worker")(&err)

	row, err := workerToRow(draft)
	if err != nil {
		return Worker{}, fmt.Errorf("add worker: %w", err)
	}
	row, err = s.services.Workers.Create(ctx, row)
	if err != nil {
		return Worker{}, fmt.Errorf("add worker: %w", err)
	}
	w = workerFromRow(*row)

	s.mu.Lock()
	s.workers = append(slices.Clip(s.workers), w)
	s.mu.Unlock()
	s.save(ctx)
	s.logger.Info("worker added", "id", w.ID)
	return w, nil
}

func (s *DataStore) UpdateWorker(ctx context.Context, id string, patch WorkerPatch) (w Worker, err error) {
	defer s.track("update worker")(&err)
	defer s.locks.Lock("worker:" + id)()

	fields, err := workerPatchToRow(patch)
	if err != nil {
		return Worker{}, fmt.Errorf("update worker %s: %w", id, err)
	}
	row, err := s.services.Workers.Update(ctx, id, fields)
	if err != nil {
		return Worker{}, fmt.Errorf("update worker %s: %w", id, err)
	}
	w = workerFromRow(*row)

	s.mu.Lock()
	s.workers = replaceByID(s.workers, w, func(x Worker) string { return x.ID })
	s.mu.Unlock()
	s.save(ctx)
	return w, nil
}

func (s *DataStore) DeleteWorker(ctx context.Context, id string) (err error) {
	defer s.track("delete worker")(&err)
	defer s.locks.Lock("worker:" + id)()

	if err := s.services.Workers.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete worker %s: %w", id, err)
	}

	s.mu.Lock()
	s.workers = removeByID(s.workers, id, func(x Worker) string { return x.ID })
	s.mu.Unlock()
	s.save(ctx)
	return nil
}

func (s *DataStore) Worker(id string) (Worker, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.workers, id, func(x Worker) string { return x.ID })
}

// WorkerForUser finds the worker record linked to an auth account.
func (s *DataStore) WorkerForUser(userID string) (Worker, bool) {
	if userID == "" {
		return Worker{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.workers, userID, func(x Worker) string { return x.UserID })
}

func (s *DataStore) Workers() []Worker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.workers)
}

// Stats recomputes the dashboard figures from memory.
func (s *DataStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		TotalAppointments: len(s.appointments),
		TotalOrders:       len(s.orders),
		TotalWorkers:      len(s.workers),
		TotalRevenue:      decimal.Zero,
	}
	for _, a := range s.appointments {
		if a.Status == models.AppointmentStatusPending {
			st.PendingAppointments++
		}
	}
	for _, o := range s.orders {
		switch o.Status {
		case models.OrderStatusInProgress:
			st.ActiveOrders++
		case models.OrderStatusCompleted:
			st.CompletedOrders++
			st.TotalRevenue = st.TotalRevenue.Add(o.Price)
		case models.OrderStatusDelivered:
			st.TotalRevenue = st.TotalRevenue.Add(o.Price)
		}
	}
	return st
}

func findByID[T any](list []T, id string, key func(T) string) (T, bool) {
	for _, x := range list {
		if key(x) == id {
			return x, true
		}
	}
	var zero T
	return zero, false
}

// replaceByID returns a copy of list with the element matching v's id
// replaced. Elements not already present are not added.
func replaceByID[T any](list []T, v T, key func(T) string) []T {
	out := slices.Clone(list)
	for i := range out {
		if key(out[i]) == key(v) {
			out[i] = v
		}
	}
	return out
}

func removeByID[T any](list []T, id string, key func(T) string) []T {
	return slices.DeleteFunc(slices.Clone(list), func(x T) bool { return key(x) == id })
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
