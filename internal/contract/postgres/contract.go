package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/contract"
	contractDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/contract"
	"github.com/frahmantamala/epic-events-crm/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) contract.RepositoryAPI {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Client").Preload("CommercialContact")
}

func (r *ContractRepository) GetAll(ctx context.Context) ([]*contractDatamodel.Contract, error) {
	var list []*contractDatamodel.Contract
	if err := r.preloaded(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, database.Classify(err)
	}
	return list, nil
}

func (r *ContractRepository) GetByID(ctx context.Context, id int64) (*contractDatamodel.Contract, error) {
	var c contractDatamodel.Contract
	err := r.preloaded(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError(fmt.Sprintf("Contract %d not found", id), internal.ErrCodeContractNotFound)
		}
		return nil, database.Classify(err)
	}
	return &c, nil
}

func (r *ContractRepository) ListByClientIDs(ctx context.Context, clientIDs []int64, status string) ([]*contractDatamodel.Contract, error) {
	if len(clientIDs) == 0 {
		return []*contractDatamodel.Contract{}, nil
	}

	query := r.preloaded(ctx).Where("client_id IN ?", clientIDs)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var list []*contractDatamodel.Contract
	if err := query.Order("id ASC").Find(&list).Error; err != nil {
		return nil, database.Classify(err)
	}
	return list, nil
}

func (r *ContractRepository) Create(ctx context.Context, c *contractDatamodel.Contract) error {
	return database.Classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error)
}

func (r *ContractRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&contractDatamodel.Contract{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return database.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.NewNotFoundError(fmt.Sprintf("Contract %d not found", id), internal.ErrCodeContractNotFound)
	}
	return nil
}
