package commission

import (
	"context"
	"sort"
	"sync"
	"time"

	"shinepos-backend/internal/audit"
	"shinepos-backend/internal/models"

	"github.com/pkg/errors"
)

// memStore is an in-memory Store used by the package tests.
type memStore struct {
	mu          sync.Mutex
	nextID      uint
	logs        map[uint]models.CommissionLog
	salesPeople map[uint]models.SalesPerson
	restaurants map[uint]models.RestaurantRegistration

	failSubscribe error
}

var storeEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newMemStore() *memStore {
	return &memStore{
		logs:        map[uint]models.CommissionLog{},
		salesPeople: map[uint]models.SalesPerson{},
		restaurants: map[uint]models.RestaurantRegistration{},
	}
}

func (m *memStore) addSalesPerson(sp models.SalesPerson) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.salesPeople[sp.ID] = sp
}

func (m *memStore) addRestaurant(r models.RestaurantRegistration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.restaurants[r.ID] = r
}

func (m *memStore) insert(l *models.CommissionLog) {
	m.nextID++
	l.ID = m.nextID
	// Strictly increasing timestamps keep newest-first ordering stable.
	l.CreatedAt = storeEpoch.Add(time.Duration(l.ID) * time.Second)
	l.UpdatedAt = l.CreatedAt
	m.logs[l.ID] = *l
}

func (m *memStore) CreateLog(_ context.Context, l *models.CommissionLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insert(l)
	return nil
}

func (m *memStore) sorted(filter func(models.CommissionLog) bool) []models.CommissionLog {
	out := make([]models.CommissionLog, 0, len(m.logs))
	for _, l := range m.logs {
		if filter == nil || filter(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (m *memStore) PageLogs(_ context.Context, offset, limit int) ([]models.CommissionLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.sorted(nil)
	if offset >= len(all) {
		return nil, int64(len(all)), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], int64(len(all)), nil
}

func (m *memStore) LogsBySalesPerson(_ context.Context, salesPersonID uint) ([]models.CommissionLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(l models.CommissionLog) bool { return l.SalesPersonID == salesPersonID }), nil
}

func (m *memStore) SumBySalesPerson(_ context.Context, salesPersonID uint, status models.CommissionStatus) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, l := range m.logs {
		if l.SalesPersonID == salesPersonID && l.Status == status {
			total += l.CommissionAmount
		}
	}
	return total, nil
}

func (m *memStore) GetLog(_ context.Context, id uint) (*models.CommissionLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.logs[id]
	if !ok {
		return nil, ErrCommissionNotFound
	}
	return &l, nil
}

func (m *memStore) UpdateLog(_ context.Context, id uint, u LogUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.logs[id]
	if !ok {
		return ErrCommissionNotFound
	}
	if u.CommissionAmount != nil {
		l.CommissionAmount = *u.CommissionAmount
	}
	m.logs[id] = l
	return nil
}

func (m *memStore) MarkPaid(_ context.Context, id uint, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.logs[id]
	if !ok || l.Status != models.CommissionPending {
		return false, nil
	}
	l.Status = models.CommissionPaid
	l.PaidAt = &at
	m.logs[id] = l
	return true, nil
}

func (m *memStore) DeleteLog(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.logs[id]; !ok {
		return ErrCommissionNotFound
	}
	delete(m.logs, id)
	return nil
}

func (m *memStore) SalesPerson(_ context.Context, id uint) (*models.SalesPerson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sp, ok := m.salesPeople[id]
	if !ok {
		return nil, ErrSalesPersonNotFound
	}
	return &sp, nil
}

func (m *memStore) SalesPeople(_ context.Context, ids []uint) ([]models.SalesPerson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SalesPerson
	for _, id := range ids {
		if sp, ok := m.salesPeople[id]; ok {
			out = append(out, sp)
		}
	}
	return out, nil
}

func (m *memStore) Restaurant(_ context.Context, id uint) (*models.RestaurantRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.restaurants[id]
	if !ok {
		return nil, ErrRestaurantNotFound
	}
	return &r, nil
}

func (m *memStore) Restaurants(_ context.Context, ids []uint) ([]models.RestaurantRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.RestaurantRegistration
	for _, id := range ids {
		if r, ok := m.restaurants[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) Subscribe(_ context.Context, r *models.RestaurantRegistration, l *models.CommissionLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSubscribe != nil {
		return errors.Wrap(m.failSubscribe, "subscribe restaurant")
	}
	m.restaurants[r.ID] = *r
	m.insert(l)
	return nil
}

// recorder captures audit entries.
type recorder struct {
	mu      sync.Mutex
	entries []auditEntry
}

type auditEntry struct {
	action models.AuditAction
	id     uint
}

func (r *recorder) Record(_ context.Context, e audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, auditEntry{action: e.Action, id: e.EntityID})
	return nil
}

func (r *recorder) actions() []models.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.AuditAction, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.action)
	}
	return out
}
