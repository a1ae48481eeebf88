package audit

import (
	"context"
	"encoding/json"

	"shinepos-backend/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Actor is the authenticated user behind a request.
type Actor struct {
	UserID uint
	Name   string
}

type actorKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the zero Actor (the system) when none was attached.
func ActorFrom(ctx context.Context) Actor {
	a, _ := ctx.Value(actorKey{}).(Actor)
	return a
}

type Entry struct {
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

type GormRecorder struct {
	db *gorm.DB
}

func NewGormRecorder(db *gorm.DB) *GormRecorder {
	return &GormRecorder{db: db}
}

func (r *GormRecorder) Record(ctx context.Context, e Entry) error {
	actor := ActorFrom(ctx)
	row := models.AuditLog{
		UserID:      actor.UserID,
		UserName:    actor.Name,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Action:      e.Action,
		Description: e.Description,
		BeforeData:  snapshot(e.Before),
		AfterData:   snapshot(e.After),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return errors.Wrap(err, "audit log could not be saved")
	}
	return nil
}

// snapshot renders v for a jsonb column; postgres rejects an empty string
// there, so absent values become JSON null.
func snapshot(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// Nop discards entries.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }
