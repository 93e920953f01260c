package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/epic-events-crm/internal"
	eventDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/event"
	"github.com/frahmantamala/epic-events-crm/internal/database"
	"github.com/frahmantamala/epic-events-crm/internal/event"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) event.RepositoryAPI {
	return &EventRepository{db: db}
}

func (r *EventRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("SupportContact")
}

func (r *EventRepository) find(query *gorm.DB) ([]*eventDatamodel.Event, error) {
	var list []*eventDatamodel.Event
	if err := query.Order("id ASC").Find(&list).Error; err != nil {
		return nil, database.Classify(err)
	}
	return list, nil
}

func (r *EventRepository) GetAll(ctx context.Context) ([]*eventDatamodel.Event, error) {
	return r.find(r.preloaded(ctx))
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*eventDatamodel.Event, error) {
	var e eventDatamodel.Event
	err := r.preloaded(ctx).Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError(fmt.Sprintf("Event %d not found", id), internal.ErrCodeEventNotFound)
		}
		return nil, database.Classify(err)
	}
	return &e, nil
}

func (r *EventRepository) ListBySupportState(ctx context.Context, assigned bool) ([]*eventDatamodel.Event, error) {
	if assigned {
		return r.find(r.preloaded(ctx).Where("support_contact_id IS NOT NULL"))
	}
	return r.find(r.preloaded(ctx).Where("support_contact_id IS NULL"))
}

func (r *EventRepository) ListBySupportContact(ctx context.Context, collaboratorID int64) ([]*eventDatamodel.Event, error) {
	return r.find(r.preloaded(ctx).Where("support_contact_id = ?", collaboratorID))
}

func (r *EventRepository) Create(ctx context.Context, e *eventDatamodel.Event) error {
	return database.Classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error)
}

func (r *EventRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&eventDatamodel.Event{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return database.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.NewNotFoundError(fmt.Sprintf("Event %d not found", id), internal.ErrCodeEventNotFound)
	}
	return nil
}
