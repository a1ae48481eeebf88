package commission

import (
	"context"
	"time"

	"shinepos-backend/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// LogUpdate carries the plain field edits allowed after creation. Nil fields
// are left alone. Status only moves through MarkPaid.
type LogUpdate struct {
	CommissionAmount *float64
}

func (u LogUpdate) empty() bool {
	return u.CommissionAmount == nil
}

// Store is everything the commission service needs from persistence: the
// commission ledger itself plus read access to the sales directory for the
// read-side joins.
type Store interface {
	CreateLog(ctx context.Context, l *models.CommissionLog) error
	PageLogs(ctx context.Context, offset, limit int) ([]models.CommissionLog, int64, error)
	LogsBySalesPerson(ctx context.Context, salesPersonID uint) ([]models.CommissionLog, error)
	SumBySalesPerson(ctx context.Context, salesPersonID uint, status models.CommissionStatus) (float64, error)
	GetLog(ctx context.Context, id uint) (*models.CommissionLog, error)
	UpdateLog(ctx context.Context, id uint, u LogUpdate) error
	// MarkPaid flips a pending log to paid. It reports false when no pending
	// log with that id exists.
	MarkPaid(ctx context.Context, id uint, at time.Time) (bool, error)
	DeleteLog(ctx context.Context, id uint) error

	SalesPerson(ctx context.Context, id uint) (*models.SalesPerson, error)
	SalesPeople(ctx context.Context, ids []uint) ([]models.SalesPerson, error)
	Restaurant(ctx context.Context, id uint) (*models.RestaurantRegistration, error)
	Restaurants(ctx context.Context, ids []uint) ([]models.RestaurantRegistration, error)

	// Subscribe persists the subscribed restaurant and its new commission log
	// together.
	Subscribe(ctx context.Context, r *models.RestaurantRegistration, l *models.CommissionLog) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateLog(ctx context.Context, l *models.CommissionLog) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(l).Error, "create commission log")
}

func (s *GormStore) PageLogs(ctx context.Context, offset, limit int) ([]models.CommissionLog, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.CommissionLog{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count commission logs")
	}

	var logs []models.CommissionLog
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list commission logs")
	}
	return logs, total, nil
}

func (s *GormStore) LogsBySalesPerson(ctx context.Context, salesPersonID uint) ([]models.CommissionLog, error) {
	var logs []models.CommissionLog
	err := s.db.WithContext(ctx).
		Where("sales_person_id = ?", salesPersonID).
		Order("created_at DESC, id DESC").
		Find(&logs).Error
	return logs, errors.Wrap(err, "list sales person commissions")
}

func (s *GormStore) SumBySalesPerson(ctx context.Context, salesPersonID uint, status models.CommissionStatus) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).
		Model(&models.CommissionLog{}).
		Select("COALESCE(SUM(commission_amount), 0)").
		Where("sales_person_id = ? AND status = ?", salesPersonID, status).
		Scan(&total).Error
	return total, errors.Wrapf(err, "sum %s commissions", status)
}

func (s *GormStore) GetLog(ctx context.Context, id uint) (*models.CommissionLog, error) {
	var l models.CommissionLog
	if err := s.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommissionNotFound
		}
		return nil, errors.Wrap(err, "get commission log")
	}
	return &l, nil
}

func (s *GormStore) UpdateLog(ctx context.Context, id uint, u LogUpdate) error {
	fields := map[string]interface{}{}
	if u.CommissionAmount != nil {
		fields["commission_amount"] = *u.CommissionAmount
	}
	if len(fields) == 0 {
		return nil
	}

	res := s.db.WithContext(ctx).Model(&models.CommissionLog{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update commission log")
	}
	if res.RowsAffected == 0 {
		return ErrCommissionNotFound
	}
	return nil
}

func (s *GormStore) MarkPaid(ctx context.Context, id uint, at time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.CommissionLog{}).
		Where("id = ? AND status = ?", id, models.CommissionPending).
		Updates(map[string]interface{}{
			"status":  models.CommissionPaid,
			"paid_at": at,
		})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "mark commission paid")
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) DeleteLog(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.CommissionLog{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete commission log")
	}
	if res.RowsAffected == 0 {
		return ErrCommissionNotFound
	}
	return nil
}

func (s *GormStore) SalesPerson(ctx context.Context, id uint) (*models.SalesPerson, error) {
	var sp models.SalesPerson
	if err := s.db.WithContext(ctx).First(&sp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSalesPersonNotFound
		}
		return nil, errors.Wrap(err, "get sales person")
	}
	return &sp, nil
}

func (s *GormStore) SalesPeople(ctx context.Context, ids []uint) ([]models.SalesPerson, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.SalesPerson
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, errors.Wrap(err, "load sales people")
}

func (s *GormStore) Restaurant(ctx context.Context, id uint) (*models.RestaurantRegistration, error) {
	var r models.RestaurantRegistration
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, errors.Wrap(err, "get restaurant")
	}
	return &r, nil
}

func (s *GormStore) Restaurants(ctx context.Context, ids []uint) ([]models.RestaurantRegistration, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.RestaurantRegistration
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, errors.Wrap(err, "load restaurants")
}

func (s *GormStore) Subscribe(ctx context.Context, r *models.RestaurantRegistration, l *models.CommissionLog) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(r).
			Updates(map[string]interface{}{
				"status":            r.Status,
				"subscription_date": r.SubscriptionDate,
			}).Error; err != nil {
			return err
		}
		return tx.Create(l).Error
	})
	return errors.Wrap(err, "subscribe restaurant")
}
