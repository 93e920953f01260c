package collaborator

import "time"

type Role struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;size:10;uniqueIndex;not null"`
}

func (Role) TableName() string {
	return "roles"
}

type Group struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;size:50;uniqueIndex;not null"`
}

func (Group) TableName() string {
	return "permission_groups"
}

type Collaborator struct {
	ID             int64     `gorm:"primaryKey"`
	FirstName      string    `gorm:"column:first_name;size:50;not null"`
	LastName       string    `gorm:"column:last_name;size:50;not null"`
	Username       string    `gorm:"column:username;size:50;uniqueIndex;not null"`
	Email          string    `gorm:"column:email;size:254;uniqueIndex;not null"`
	EmployeeNumber string    `gorm:"column:employee_number;size:50;uniqueIndex;not null"`
	PasswordHash   string    `gorm:"column:password_hash;not null"`
	RoleID         *int64    `gorm:"column:role_id;index"`
	Role           *Role     `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL"`
	IsActive       bool      `gorm:"column:is_active;default:true"`
	IsSuperuser    bool      `gorm:"column:is_superuser;default:false"`
	Groups         []Group   `gorm:"many2many:collaborator_groups;joinForeignKey:CollaboratorID;joinReferences:GroupID"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Collaborator) TableName() string {
	return "collaborators"
}

// RoleName is empty when no role is assigned.
func (c *Collaborator) RoleName() string {
	if c.Role == nil {
		return ""
	}
	return c.Role.Name
}

type CollaboratorGroup struct {
	CollaboratorID int64 `gorm:"column:collaborator_id;primaryKey"`
	GroupID        int64 `gorm:"column:group_id;primaryKey"`
}

func (CollaboratorGroup) TableName() string {
	return "collaborator_groups"
}
