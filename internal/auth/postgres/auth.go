package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/epic-events-crm/internal"
	collaboratorDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/collaborator"
	"github.com/frahmantamala/epic-events-crm/internal/database"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*collaboratorDatamodel.Collaborator, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*collaboratorDatamodel.Collaborator, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) first(ctx context.Context, query string, arg interface{}) (*collaboratorDatamodel.Collaborator, error) {
	var c collaboratorDatamodel.Collaborator
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Groups").
		Where(query, arg).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("collaborator not found", internal.ErrCodeCollaboratorNotFound)
		}
		return nil, database.Classify(err)
	}
	return &c, nil
}
