package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/collaborator"
	clientDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/client"
	collaboratorDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/collaborator"
	contractDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/contract"
	eventDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/event"
	"github.com/frahmantamala/epic-events-crm/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var searchableFields = map[string]string{
	"username":        "username",
	"email":           "email",
	"employee_number": "employee_number",
}

type CollaboratorRepository struct {
	db *gorm.DB
}

func NewCollaboratorRepository(db *gorm.DB) collaborator.RepositoryAPI {
	return &CollaboratorRepository{db: db}
}

func (r *CollaboratorRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Role").Preload("Groups")
}

func (r *CollaboratorRepository) GetAll(ctx context.Context) ([]*collaboratorDatamodel.Collaborator, error) {
	var list []*collaboratorDatamodel.Collaborator
	if err := r.preloaded(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, database.Classify(err)
	}
	return list, nil
}

func (r *CollaboratorRepository) GetByID(ctx context.Context, id int64) (*collaboratorDatamodel.Collaborator, error) {
	var c collaboratorDatamodel.Collaborator
	err := r.preloaded(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError(fmt.Sprintf("Collaborator %d not found", id), internal.ErrCodeCollaboratorNotFound)
		}
		return nil, database.Classify(err)
	}
	return &c, nil
}

func (r *CollaboratorRepository) FindByField(ctx context.Context, field, value string, excludeID int64) (*collaboratorDatamodel.Collaborator, error) {
	column, ok := searchableFields[field]
	if !ok {
		return nil, fmt.Errorf("field %q is not searchable", field)
	}

	query := r.db.WithContext(ctx).Where(column+" = ?", value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var c collaboratorDatamodel.Collaborator
	if err := query.First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, database.Classify(err)
	}
	return &c, nil
}

func (r *CollaboratorRepository) ListByRoleName(ctx context.Context, role string) ([]*collaboratorDatamodel.Collaborator, error) {
	var list []*collaboratorDatamodel.Collaborator
	roles := r.db.Model(&collaboratorDatamodel.Role{}).Select("id").Where("name = ?", role)
	err := r.preloaded(ctx).
		Where("role_id IN (?)", roles).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, database.Classify(err)
	}
	return list, nil
}

// Create inserts the collaborator with its role and group membership in one transaction.
func (r *CollaboratorRepository) Create(ctx context.Context, c *collaboratorDatamodel.Collaborator, role collaborator.RoleChange) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roleRecord, err := getOrCreateRole(tx, role.RoleName)
		if err != nil {
			return err
		}
		c.RoleID = &roleRecord.ID

		if err := tx.Omit(clause.Associations).Create(c).Error; err != nil {
			return err
		}
		return replaceGroups(tx, c.ID, role.GroupName)
	})
	return database.Classify(err)
}

func (r *CollaboratorRepository) Update(ctx context.Context, id int64, fields map[string]interface{}, role *collaborator.RoleChange) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := make(map[string]interface{}, len(fields)+1)
		for k, v := range fields {
			updates[k] = v
		}

		if role != nil {
			roleRecord, err := getOrCreateRole(tx, role.RoleName)
			if err != nil {
				return err
			}
			updates["role_id"] = roleRecord.ID
			if err := replaceGroups(tx, id, role.GroupName); err != nil {
				return err
			}
		}

		if len(updates) == 0 {
			return nil
		}

		result := tx.Model(&collaboratorDatamodel.Collaborator{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return internal.NewNotFoundError(fmt.Sprintf("Collaborator %d not found", id), internal.ErrCodeCollaboratorNotFound)
		}
		return nil
	})
	return database.Classify(err)
}

// Delete clears every reference to the collaborator, then removes it.
func (r *CollaboratorRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&clientDatamodel.Client{}).
			Where("commercial_contact_id = ?", id).
			Update("commercial_contact_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&contractDatamodel.Contract{}).
			Where("commercial_contact_id = ?", id).
			Update("commercial_contact_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&eventDatamodel.Event{}).
			Where("support_contact_id = ?", id).
			Update("support_contact_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("collaborator_id = ?", id).Delete(&collaboratorDatamodel.CollaboratorGroup{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&collaboratorDatamodel.Collaborator{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return internal.NewNotFoundError(fmt.Sprintf("Collaborator %d not found", id), internal.ErrCodeCollaboratorNotFound)
		}
		return nil
	})
	return database.Classify(err)
}

func getOrCreateRole(tx *gorm.DB, name string) (*collaboratorDatamodel.Role, error) {
	var role collaboratorDatamodel.Role
	if err := tx.Where(collaboratorDatamodel.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func getOrCreateGroup(tx *gorm.DB, name string) (*collaboratorDatamodel.Group, error) {
	var group collaboratorDatamodel.Group
	if err := tx.Where(collaboratorDatamodel.Group{Name: name}).FirstOrCreate(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// replaceGroups leaves the collaborator in exactly one group.
func replaceGroups(tx *gorm.DB, collaboratorID int64, groupName string) error {
	if err := tx.Where("collaborator_id = ?", collaboratorID).Delete(&collaboratorDatamodel.CollaboratorGroup{}).Error; err != nil {
		return err
	}
	if groupName == "" {
		return nil
	}
	group, err := getOrCreateGroup(tx, groupName)
	if err != nil {
		return err
	}
	return tx.Create(&collaboratorDatamodel.CollaboratorGroup{CollaboratorID: collaboratorID, GroupID: group.ID}).Error
}
