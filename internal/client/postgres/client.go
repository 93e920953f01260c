package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/client"
	clientDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/client"
	contractDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/contract"
	eventDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/event"
	"github.com/frahmantamala/epic-events-crm/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) client.RepositoryAPI {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) GetAll(ctx context.Context) ([]*clientDatamodel.Client, error) {
	var list []*clientDatamodel.Client
	if err := r.db.WithContext(ctx).Preload("CommercialContact").Order("id ASC").Find(&list).Error; err != nil {
		return nil, database.Classify(err)
	}
	return list, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*clientDatamodel.Client, error) {
	var c clientDatamodel.Client
	err := r.db.WithContext(ctx).Preload("CommercialContact").Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError(fmt.Sprintf("Client %d not found", id), internal.ErrCodeClientNotFound)
		}
		return nil, database.Classify(err)
	}
	return &c, nil
}

func (r *ClientRepository) ListByCommercialContact(ctx context.Context, collaboratorID int64) ([]*clientDatamodel.Client, error) {
	var list []*clientDatamodel.Client
	err := r.db.WithContext(ctx).
		Preload("CommercialContact").
		Where("commercial_contact_id = ?", collaboratorID).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, database.Classify(err)
	}
	return list, nil
}

func (r *ClientRepository) Create(ctx context.Context, c *clientDatamodel.Client) error {
	return database.Classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error)
}

// Update refreshes last_update along with the given columns.
func (r *ClientRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&clientDatamodel.Client{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return database.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.NewNotFoundError(fmt.Sprintf("Client %d not found", id), internal.ErrCodeClientNotFound)
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contracts := tx.Model(&contractDatamodel.Contract{}).Select("id").Where("client_id = ?", id)
		if err := tx.Where("client_id = ? OR contract_id IN (?)", id, contracts).Delete(&eventDatamodel.Event{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&contractDatamodel.Contract{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&clientDatamodel.Client{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return internal.NewNotFoundError(fmt.Sprintf("Client %d not found", id), internal.ErrCodeClientNotFound)
		}
		return nil
	})
	return database.Classify(err)
}
