package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	appointmentRepo "salonbook/database/repository/appointment"
	lockRepo "salonbook/database/repository/lock"
	serviceRepo "salonbook/database/repository/service"
	staffRepo "salonbook/database/repository/staff"
	vendorRepo "salonbook/database/repository/vendor"
	"salonbook/models"
)

// In-memory repositories mirroring the Mongo implementations' semantics,
// shared by the service tests in this package.

type fakeVendorRepo struct {
	mu      sync.Mutex
	vendors map[string]*models.Vendor
}

func newFakeVendorRepo(vendors ...*models.Vendor) *fakeVendorRepo {
	repo := &fakeVendorRepo{vendors: make(map[string]*models.Vendor)}
	for _, v := range vendors {
		repo.vendors[v.ID] = v
	}
	return repo
}

func (r *fakeVendorRepo) GetByID(ctx context.Context, vendorID string) (*models.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vendors[vendorID]
	if !ok {
		return nil, vendorRepo.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVendorRepo) Search(ctx context.Context, criteria vendorRepo.SearchCriteria) ([]models.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Vendor
	for _, v := range r.vendors {
		if criteria.Category != "" && v.Category != criteria.Category {
			continue
		}
		if len(criteria.VendorIDs) > 0 {
			found := false
			for _, id := range criteria.VendorIDs {
				if id == v.ID {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeVendorRepo) UpdateWorkingHours(ctx context.Context, vendorID string, hours models.WeeklyHours, special []models.SpecialHours) (models.WeeklyHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vendors[vendorID]
	if !ok {
		return models.WeeklyHours{}, vendorRepo.ErrNotFound
	}
	previous := v.WorkingHours
	v.WorkingHours = hours
	v.SpecialHours = special
	return previous, nil
}

type fakeStaffRepo struct {
	mu      sync.Mutex
	staff   map[string]*models.StaffMember
	bulkErr error
	applied [][]staffRepo.WeekdayPatch
}

func newFakeStaffRepo(members ...*models.StaffMember) *fakeStaffRepo {
	repo := &fakeStaffRepo{staff: make(map[string]*models.StaffMember)}
	for _, m := range members {
		repo.staff[m.ID] = m
	}
	return repo
}

func (r *fakeStaffRepo) GetByID(ctx context.Context, staffID string) (*models.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.staff[staffID]
	if !ok {
		return nil, staffRepo.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeStaffRepo) ListByVendor(ctx context.Context, vendorID string) ([]models.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.StaffMember
	for _, m := range r.staff {
		if m.VendorID == vendorID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeStaffRepo) BulkApplyWeek(ctx context.Context, vendorID string, patches []staffRepo.WeekdayPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bulkErr != nil {
		return r.bulkErr
	}
	for _, m := range r.staff {
		if m.VendorID != vendorID {
			continue
		}
		for _, p := range patches {
			m.Week[p.Weekday].Available = p.Available
			if !p.Available {
				m.Week[p.Weekday].Slots = nil
			} else if !p.KeepSlots {
				m.Week[p.Weekday].Slots = p.Slots
			}
		}
	}
	r.applied = append(r.applied, patches)
	return nil
}

type fakeServiceRepo struct {
	services map[string]*models.Service
}

func newFakeServiceRepo(services ...*models.Service) *fakeServiceRepo {
	repo := &fakeServiceRepo{services: make(map[string]*models.Service)}
	for _, s := range services {
		repo.services[s.ID] = s
	}
	return repo
}

func (r *fakeServiceRepo) GetByID(ctx context.Context, serviceID string) (*models.Service, error) {
	s, ok := r.services[serviceID]
	if !ok {
		return nil, serviceRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeServiceRepo) GetByIDs(ctx context.Context, serviceIDs []string) ([]models.Service, error) {
	var out []models.Service
	for _, id := range serviceIDs {
		if s, ok := r.services[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) ListByVendor(ctx context.Context, vendorID string) ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.services {
		if s.VendorID == vendorID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments []models.Appointment
	listErr      error
}

func (r *fakeAppointmentRepo) GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.appointments {
		if r.appointments[i].ID == appointmentID {
			cp := r.appointments[i]
			return &cp, nil
		}
	}
	return nil, appointmentRepo.ErrNotFound
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments = append(r.appointments, *appointment)
	return nil
}

func (r *fakeAppointmentRepo) ListForStaffDate(ctx context.Context, staffID, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.Appointment
	for _, a := range r.appointments {
		if a.StaffID != staffID || a.Date != date {
			continue
		}
		if a.Status == models.AppointmentCancelled || a.Status == models.AppointmentNoShow {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(ctx context.Context, appointmentID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.appointments {
		if r.appointments[i].ID == appointmentID {
			r.appointments[i].Status = status
			return nil
		}
	}
	return appointmentRepo.ErrNotFound
}

// fakeLockRepo reproduces the transactional semantics of the Mongo lock
// repository with a single mutex: the conflict check and the insert happen
// under one critical section.
type fakeLockRepo struct {
	mu           sync.Mutex
	locks        map[string]*models.SlotLock
	appointments []models.Appointment
}

func newFakeLockRepo() *fakeLockRepo {
	return &fakeLockRepo{locks: make(map[string]*models.SlotLock)}
}

func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

func (r *fakeLockRepo) Acquire(ctx context.Context, lock *models.SlotLock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, l := range r.locks {
		if l.StaffID == lock.StaffID && l.Date == lock.Date && l.Active(now) &&
			overlaps(l.Start, l.End, lock.Start, lock.End) {
			return lockRepo.ErrConflict
		}
	}
	for _, a := range r.appointments {
		if a.StaffID == lock.StaffID && a.Date == lock.Date &&
			(a.Status == models.AppointmentPending || a.Status == models.AppointmentConfirmed) &&
			overlaps(a.Start, a.End, lock.Start, lock.End) {
			return lockRepo.ErrConflict
		}
	}
	cp := *lock
	r.locks[lock.ID] = &cp
	return nil
}

func (r *fakeLockRepo) GetByID(ctx context.Context, lockID string) (*models.SlotLock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[lockID]
	if !ok {
		return nil, lockRepo.ErrLockNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLockRepo) Release(ctx context.Context, lockID, holderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[lockID]
	if !ok || l.HolderID != holderID {
		return lockRepo.ErrLockNotFound
	}
	delete(r.locks, lockID)
	return nil
}

func (r *fakeLockRepo) ConsumeWithAppointment(ctx context.Context, lockID, holderID string, appointment *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[lockID]
	if !ok || l.HolderID != holderID || !l.Active(time.Now()) {
		return lockRepo.ErrLockNotFound
	}
	delete(r.locks, lockID)
	r.appointments = append(r.appointments, *appointment)
	return nil
}

func (r *fakeLockRepo) DeleteExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	var removed int64
	for id, l := range r.locks {
		if !l.Active(now) {
			delete(r.locks, id)
			removed++
		}
	}
	return removed, nil
}

// recordingEnqueuer captures resync retries for assertions.
type recordingEnqueuer struct {
	mu        sync.Mutex
	vendorIDs []string
}

func (e *recordingEnqueuer) EnqueueResync(vendorID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vendorIDs = append(e.vendorIDs, vendorID)
	return nil
}
