package app

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/auth"
	"github.com/frahmantamala/epic-events-crm/internal/client"
	"github.com/frahmantamala/epic-events-crm/internal/collaborator"
	"github.com/frahmantamala/epic-events-crm/internal/contract"
	collaboratorDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/collaborator"
	"github.com/frahmantamala/epic-events-crm/internal/event"
	"github.com/shopspring/decimal"
)

// seeder acts with full rights; it is never a stored collaborator.
var seeder = &auth.Identity{Username: "seed", IsSuperuser: true}

type SeedReport struct {
	Collaborators []string
	Clients       int
	Contracts     int
	Events        int
	Skipped       bool
}

var demoCollaborators = []collaborator.CreateCollaboratorDTO{
	{FirstName: "Aurelien", LastName: "Martin", Username: "aurelien", Email: "aurelien@epicevents.com", EmployeeNumber: "1001", Role: internal.RoleManagement},
	{FirstName: "Boris", LastName: "Sales", Username: "borisSales", Email: "boris@epicevents.com", EmployeeNumber: "2001", Role: internal.RoleSales},
	{FirstName: "Emma", LastName: "Stone", Username: "emmaStone", Email: "emma@epicevents.com", EmployeeNumber: "3001", Role: internal.RoleSupport},
}

// EnsureRoles creates every configured role and group.
func (d *Dependencies) EnsureRoles(ctx context.Context) error {
	tx := d.DB.WithContext(ctx)
	for _, name := range internal.Roles {
		role := collaboratorDatamodel.Role{}
		if err := tx.Where(collaboratorDatamodel.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("ensure role %s: %w", name, err)
		}
	}
	for name := range d.Config.Permissions.Groups {
		group := collaboratorDatamodel.Group{}
		if err := tx.Where(collaboratorDatamodel.Group{Name: name}).FirstOrCreate(&group).Error; err != nil {
			return fmt.Errorf("ensure group %s: %w", name, err)
		}
	}
	return nil
}

// Seed fills an empty store with demo collaborators sharing password, plus
// a client with a signed contract and a staffed event. A store that already
// holds collaborators only gets its roles and groups ensured.
func (d *Dependencies) Seed(ctx context.Context, password string) (*SeedReport, error) {
	if err := d.EnsureRoles(ctx); err != nil {
		return nil, err
	}

	var count int64
	if err := d.DB.WithContext(ctx).Model(&collaboratorDatamodel.Collaborator{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count collaborators: %w", err)
	}
	if count > 0 {
		return &SeedReport{Skipped: true}, nil
	}

	report := &SeedReport{}
	created := make(map[string]*collaborator.Collaborator, len(demoCollaborators))
	for _, dto := range demoCollaborators {
		dto.Password = password
		c, err := d.Services.Collaborators.Create(ctx, seeder, dto)
		if err != nil {
			return nil, fmt.Errorf("seed collaborator %s: %w", dto.Username, err)
		}
		created[dto.Role] = c
		report.Collaborators = append(report.Collaborators, c.Username)
	}

	salesID := created[internal.RoleSales].ID
	acme, err := d.Services.Clients.Create(ctx, seeder, client.CreateClientDTO{
		Name:                "Kevin Casey",
		Email:               "kevin@startup.io",
		Phone:               "+678 123 456 78",
		CompanyName:         "Cool Startup LLC",
		CommercialContactID: &salesID,
	})
	if err != nil {
		return nil, fmt.Errorf("seed client: %w", err)
	}
	report.Clients++

	signed, err := d.Services.Contracts.Create(ctx, seeder, contract.CreateContractDTO{
		ClientID: acme.ID,
		Value:    decimal.RequireFromString("15000.00"),
		Due:      decimal.RequireFromString("5000.00"),
		Status:   contract.StatusSigned,
	})
	if err != nil {
		return nil, fmt.Errorf("seed contract: %w", err)
	}
	if _, err := d.Services.Contracts.Create(ctx, seeder, contract.CreateContractDTO{
		ClientID: acme.ID,
		Value:    decimal.RequireFromString("8000.00"),
		Due:      decimal.RequireFromString("8000.00"),
		Status:   contract.StatusNotSigned,
	}); err != nil {
		return nil, fmt.Errorf("seed contract: %w", err)
	}
	report.Contracts += 2

	start := event.DateOnly(time.Now().AddDate(0, 1, 0))
	launch, err := d.Services.Events.CreateFromContract(ctx, seeder, event.CreateEventDTO{
		ContractID:    signed.ID,
		Name:          "Startup launch party",
		ClientContact: "Kevin Casey, +678 123 456 78",
		DayStart:      start,
		DateEnd:       start.AddDate(0, 0, 1),
		Location:      "53 Rue du Château, 41120 Candé-sur-Beuvron",
		Attendees:     75,
		Notes:         "Wedding reception style setup.",
	})
	if err != nil {
		return nil, fmt.Errorf("seed event: %w", err)
	}
	if _, err := d.Services.Events.AssignSupport(ctx, seeder, launch.ID, created[internal.RoleSupport].ID); err != nil {
		return nil, fmt.Errorf("seed support: %w", err)
	}
	report.Events++

	d.Logger.InfoContext(ctx, "demo data seeded",
		"collaborators", len(report.Collaborators),
		"clients", report.Clients,
		"contracts", report.Contracts,
		"events", report.Events)
	return report, nil
}
