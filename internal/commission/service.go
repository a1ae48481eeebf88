package commission

import (
	"context"
	"fmt"
	"time"

	"shinepos-backend/internal/audit"
	"shinepos-backend/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10

	entityType = "commission_log"
)

type CreateInput struct {
	SalesPersonID    uint                    `json:"salesPersonId" validate:"required"`
	RestaurantID     uint                    `json:"restaurantId" validate:"required"`
	CommissionAmount float64                 `json:"commissionAmount" validate:"required,gte=0"`
	Status           models.CommissionStatus `json:"status" validate:"omitempty,oneof=pending paid"`
}

// UpdateInput only knows commissionAmount and status; anything else in a
// request body is dropped while decoding.
type UpdateInput struct {
	CommissionAmount *float64                 `json:"commissionAmount" validate:"omitempty,gte=0"`
	Status           *models.CommissionStatus `json:"status" validate:"omitempty,oneof=pending paid"`
}

type SubscribeInput struct {
	RestaurantID uint    `json:"restaurantId" validate:"required"`
	PlanAmount   float64 `json:"planAmount"`
}

// LogView is a commission log joined with its sales person and restaurant.
type LogView struct {
	ID                 uint                           `json:"id"`
	SalesPersonID      uint                           `json:"salesPersonId"`
	RestaurantID       uint                           `json:"restaurantId"`
	SalesPerson        *models.SalesPerson            `json:"salesPerson,omitempty"`
	Restaurant         *models.RestaurantRegistration `json:"restaurant,omitempty"`
	Month              string                         `json:"month,omitempty"`
	SubscriptionAmount float64                        `json:"subscriptionAmount"`
	CommissionRate     float64                        `json:"commissionRate"`
	CommissionAmount   float64                        `json:"commissionAmount"`
	Status             models.CommissionStatus        `json:"status"`
	PaidAt             *time.Time                     `json:"paidAt"`
	CreatedAt          time.Time                      `json:"createdAt"`
	UpdatedAt          time.Time                      `json:"updatedAt"`
}

type Page struct {
	CommissionLogs []LogView `json:"commissionLogs"`
	Total          int64     `json:"total"`
	Page           int       `json:"page"`
	Pages          int       `json:"pages"`
}

type EarningsSummary struct {
	TotalEarned      float64 `json:"totalEarned"`
	TotalPending     float64 `json:"totalPending"`
	TotalCommissions int     `json:"totalCommissions"`
}

type SalesPersonCommissions struct {
	Commissions []LogView       `json:"commissions"`
	Summary     EarningsSummary `json:"summary"`
}

type SubscriptionCommission struct {
	Amount float64 `json:"amount"`
	Rate   float64 `json:"rate"`
	Month  string  `json:"month"`
}

type SubscribeResult struct {
	Restaurant *models.RestaurantRegistration `json:"restaurant"`
	Commission SubscriptionCommission         `json:"commission"`
}

type Service struct {
	store Store
	clock Clock
	audit audit.Recorder
}

type Option func(*Service)

func WithClock(c Clock) Option { return func(s *Service) { s.clock = c } }

func WithRecorder(r audit.Recorder) Option { return func(s *Service) { s.audit = r } }

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, clock: SystemClock{}, audit: audit.Nop{}}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*LogView, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = models.CommissionPending
	}

	l := &models.CommissionLog{
		SalesPersonID:    in.SalesPersonID,
		RestaurantID:     in.RestaurantID,
		CommissionAmount: in.CommissionAmount,
		Status:           in.Status,
	}
	if l.Status == models.CommissionPaid {
		now := s.clock.Now()
		l.PaidAt = &now
	}
	if err := s.store.CreateLog(ctx, l); err != nil {
		return nil, err
	}
	commissionsCreated.WithLabelValues("manual").Inc()

	s.record(ctx, audit.Entry{
		EntityID:    l.ID,
		Action:      models.AuditActionCreate,
		Description: fmt.Sprintf("commission %.2f for restaurant %d", l.CommissionAmount, l.RestaurantID),
		After:       l,
	})

	v := toView(*l)
	return &v, nil
}

// List returns one page of logs, newest first. page and limit below 1 fall
// back to the defaults.
func (s *Service) List(ctx context.Context, page, limit int) (*Page, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	logs, total, err := s.store.PageLogs(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	views, err := s.join(ctx, logs, true)
	if err != nil {
		return nil, err
	}
	return &Page{
		CommissionLogs: views,
		Total:          total,
		Page:           page,
		Pages:          pageCount(total, limit),
	}, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*LogView, error) {
	l, err := s.store.GetLog(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.joinOne(ctx, *l)
}

func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*LogView, error) {
	if err := check(in); err != nil {
		return nil, err
	}

	before, err := s.store.GetLog(ctx, id)
	if err != nil {
		return nil, err
	}

	// pending -> paid goes through the same conditional write as MarkPaid so
	// paidAt is only ever stamped once.
	markPaid := false
	if in.Status != nil && *in.Status != before.Status {
		switch *in.Status {
		case models.CommissionPending:
			return nil, ErrPaidIsFinal
		case models.CommissionPaid:
			markPaid = true
		}
	}

	if markPaid {
		if err := s.markPaid(ctx, id); err != nil {
			return nil, err
		}
	}
	u := LogUpdate{CommissionAmount: in.CommissionAmount}
	if !u.empty() {
		if err := s.store.UpdateLog(ctx, id, u); err != nil {
			return nil, err
		}
	}
	changed := markPaid || !u.empty()

	after, err := s.store.GetLog(ctx, id)
	if err != nil {
		return nil, err
	}
	if changed {
		s.record(ctx, audit.Entry{
			EntityID: id,
			Action:   models.AuditActionUpdate,
			Before:   before,
			After:    after,
		})
	}
	return s.joinOne(ctx, *after)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	before, err := s.store.GetLog(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteLog(ctx, id); err != nil {
		return err
	}
	s.record(ctx, audit.Entry{
		EntityID: id,
		Action:   models.AuditActionDelete,
		Before:   before,
	})
	return nil
}

// SalesPersonCommissions lists every log of a sales person with paid and
// pending totals. The list and both sums run concurrently; an unknown sales
// person aggregates to zero.
func (s *Service) SalesPersonCommissions(ctx context.Context, salesPersonID uint) (*SalesPersonCommissions, error) {
	var (
		logs            []models.CommissionLog
		earned, pending float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		logs, err = s.store.LogsBySalesPerson(gctx, salesPersonID)
		return err
	})
	g.Go(func() error {
		var err error
		earned, err = s.store.SumBySalesPerson(gctx, salesPersonID, models.CommissionPaid)
		return err
	})
	g.Go(func() error {
		var err error
		pending, err = s.store.SumBySalesPerson(gctx, salesPersonID, models.CommissionPending)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	views, err := s.join(ctx, logs, false)
	if err != nil {
		return nil, err
	}
	return &SalesPersonCommissions{
		Commissions: views,
		Summary: EarningsSummary{
			TotalEarned:      earned,
			TotalPending:     pending,
			TotalCommissions: len(logs),
		},
	}, nil
}

// MarkPaid moves a pending log to paid. Paid is terminal.
func (s *Service) MarkPaid(ctx context.Context, id uint) (*LogView, error) {
	before, err := s.store.GetLog(ctx, id)
	if err != nil {
		return nil, err
	}
	if before.Status == models.CommissionPaid {
		return nil, ErrAlreadyPaid
	}

	if err := s.markPaid(ctx, id); err != nil {
		return nil, err
	}

	after, err := s.store.GetLog(ctx, id)
	if err != nil {
		return nil, err
	}
	s.record(ctx, audit.Entry{
		EntityID:    id,
		Action:      models.AuditActionMarkPaid,
		Description: fmt.Sprintf("paid %.2f to sales person %d", after.CommissionAmount, after.SalesPersonID),
		Before:      before,
		After:       after,
	})
	return s.joinOne(ctx, *after)
}

// SubscribeRestaurant marks the restaurant subscribed and accrues a pending
// commission for its sales person. Duplicate requests are not deduplicated:
// each call writes its own log.
func (s *Service) SubscribeRestaurant(ctx context.Context, in SubscribeInput) (*SubscribeResult, error) {
	if err := check(in); err != nil {
		return nil, err
	}

	r, err := s.store.Restaurant(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}
	sp, err := s.store.SalesPerson(ctx, r.SalesPersonID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	r.Status = models.RegistrationSubscribed
	r.SubscriptionDate = &now

	month := MonthToken(now)
	amount := Amount(in.PlanAmount, sp.CommissionRate)

	l := &models.CommissionLog{
		SalesPersonID:      sp.ID,
		RestaurantID:       r.ID,
		Month:              month,
		SubscriptionAmount: in.PlanAmount,
		CommissionRate:     sp.CommissionRate,
		CommissionAmount:   amount,
		Status:             models.CommissionPending,
	}
	if err := s.store.Subscribe(ctx, r, l); err != nil {
		return nil, err
	}
	subscriptions.Inc()
	commissionsCreated.WithLabelValues("subscription").Inc()

	zerolog.Ctx(ctx).Info().
		Uint("restaurant_id", r.ID).
		Uint("sales_person_id", sp.ID).
		Float64("amount", amount).
		Str("month", month).
		Msg("restaurant subscribed")

	s.record(ctx, audit.Entry{
		EntityID:    l.ID,
		Action:      models.AuditActionSubscribe,
		Description: fmt.Sprintf("restaurant %d subscribed, plan %.2f at %.2f%%", r.ID, in.PlanAmount, sp.CommissionRate),
		After:       l,
	})

	return &SubscribeResult{
		Restaurant: r,
		Commission: SubscriptionCommission{Amount: amount, Rate: sp.CommissionRate, Month: month},
	}, nil
}

// markPaid flips a pending log to paid with a conditional write. When the
// write matches nothing the log was paid or deleted since it was read.
func (s *Service) markPaid(ctx context.Context, id uint) error {
	ok, err := s.store.MarkPaid(ctx, id, s.clock.Now())
	if err != nil {
		return err
	}
	if !ok {
		if _, err := s.store.GetLog(ctx, id); err != nil {
			return err
		}
		return ErrAlreadyPaid
	}
	commissionsPaid.Inc()
	return nil
}

func (s *Service) record(ctx context.Context, e audit.Entry) {
	e.EntityType = entityType
	if err := s.audit.Record(ctx, e); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Uint("entity_id", e.EntityID).Msg("audit write failed")
	}
}

func (s *Service) joinOne(ctx context.Context, l models.CommissionLog) (*LogView, error) {
	views, err := s.join(ctx, []models.CommissionLog{l}, true)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// join attaches restaurants (and, when withSalesPeople is set, sales people)
// to logs with one batched lookup per collaborator. Missing references are
// left nil.
func (s *Service) join(ctx context.Context, logs []models.CommissionLog, withSalesPeople bool) ([]LogView, error) {
	views := make([]LogView, 0, len(logs))
	if len(logs) == 0 {
		return views, nil
	}

	restaurantIDs := make([]uint, 0, len(logs))
	salesIDs := make([]uint, 0, len(logs))
	seenR := map[uint]bool{}
	seenS := map[uint]bool{}
	for _, l := range logs {
		if !seenR[l.RestaurantID] {
			seenR[l.RestaurantID] = true
			restaurantIDs = append(restaurantIDs, l.RestaurantID)
		}
		if !seenS[l.SalesPersonID] {
			seenS[l.SalesPersonID] = true
			salesIDs = append(salesIDs, l.SalesPersonID)
		}
	}

	rs, err := s.store.Restaurants(ctx, restaurantIDs)
	if err != nil {
		return nil, err
	}
	restaurants := make(map[uint]*models.RestaurantRegistration, len(rs))
	for i := range rs {
		restaurants[rs[i].ID] = &rs[i]
	}

	people := map[uint]*models.SalesPerson{}
	if withSalesPeople {
		sps, err := s.store.SalesPeople(ctx, salesIDs)
		if err != nil {
			return nil, err
		}
		for i := range sps {
			people[sps[i].ID] = &sps[i]
		}
	}

	for _, l := range logs {
		v := toView(l)
		v.Restaurant = restaurants[l.RestaurantID]
		v.SalesPerson = people[l.SalesPersonID]
		views = append(views, v)
	}
	return views, nil
}

func toView(l models.CommissionLog) LogView {
	return LogView{
		ID:                 l.ID,
		SalesPersonID:      l.SalesPersonID,
		RestaurantID:       l.RestaurantID,
		Month:              l.Month,
		SubscriptionAmount: l.SubscriptionAmount,
		CommissionRate:     l.CommissionRate,
		CommissionAmount:   l.CommissionAmount,
		Status:             l.Status,
		PaidAt:             l.PaidAt,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}
