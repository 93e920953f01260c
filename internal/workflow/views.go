package workflow

import (
	"fmt"
	"strconv"

	"github.com/frahmantamala/epic-events-crm/internal/client"
	"github.com/frahmantamala/epic-events-crm/internal/collaborator"
	"github.com/frahmantamala/epic-events-crm/internal/contract"
	"github.com/frahmantamala/epic-events-crm/internal/event"
)

const none = "-"

func orNone(s string) string {
	if s == "" {
		return none
	}
	return s
}

func formatID(n int64) string {
	return strconv.FormatInt(n, 10)
}

func CollaboratorTable(list []*collaborator.Collaborator) Table {
	t := Table{Headers: []string{"ID", "Username", "Name", "Email", "Employee #", "Role"}}
	for _, c := range list {
		t.Rows = append(t.Rows, []string{formatID(c.ID), c.Username, c.FullName(), c.Email, c.EmployeeNumber, orNone(c.Role)})
	}
	return t
}

func ClientTable(list []*client.Client) Table {
	t := Table{Headers: []string{"ID", "Name", "Email", "Phone", "Company", "Created", "Updated", "Commercial"}}
	for _, c := range list {
		t.Rows = append(t.Rows, []string{
			formatID(c.ID), c.Name, c.Email, c.Phone, c.CompanyName,
			c.CreationDate.Format(DateLayout), c.LastUpdate.Format(DateLayout),
			orNone(c.CommercialContactName),
		})
	}
	return t
}

func ContractTable(list []*contract.Contract) Table {
	t := Table{Headers: []string{"ID", "Client", "Commercial", "Value", "Due", "Created", "Status"}}
	for _, c := range list {
		t.Rows = append(t.Rows, []string{
			formatID(c.ID), orNone(c.ClientName), orNone(c.CommercialContactName),
			c.Value.StringFixed(2), c.Due.StringFixed(2),
			c.CreationDate.Format(DateLayout), c.Status,
		})
	}
	return t
}

func EventTable(list []*event.Event) Table {
	t := Table{Headers: []string{"ID", "Contract", "Name", "Client", "Contact", "Start", "End", "Location", "Attendees", "Support", "Notes"}}
	for _, e := range list {
		contractID := none
		if e.ContractID != nil {
			contractID = formatID(*e.ContractID)
		}
		t.Rows = append(t.Rows, []string{
			formatID(e.ID), contractID, e.Name, e.ClientName, e.ClientContact,
			e.DayStart.Format(DateLayout), e.DateEnd.Format(DateLayout),
			e.Location, strconv.Itoa(e.Attendees), orNone(e.SupportContactName), orNone(e.Notes),
		})
	}
	return t
}

func collaboratorRows(list []*collaborator.Collaborator) []Row {
	rows := make([]Row, 0, len(list))
	for _, c := range list {
		rows = append(rows, Row{ID: c.ID, Label: fmt.Sprintf("%s (%s, %s)", c.Username, c.FullName(), orNone(c.Role))})
	}
	return rows
}

func clientRows(list []*client.Client) []Row {
	rows := make([]Row, 0, len(list))
	for _, c := range list {
		rows = append(rows, Row{ID: c.ID, Label: fmt.Sprintf("%s - %s", c.Name, c.CompanyName)})
	}
	return rows
}

func contractRows(list []*contract.Contract) []Row {
	rows := make([]Row, 0, len(list))
	for _, c := range list {
		rows = append(rows, Row{ID: c.ID, Label: fmt.Sprintf("#%d %s, %s, due %s", c.ID, orNone(c.ClientName), c.Status, c.Due.StringFixed(2))})
	}
	return rows
}

func eventRows(list []*event.Event) []Row {
	rows := make([]Row, 0, len(list))
	for _, e := range list {
		rows = append(rows, Row{ID: e.ID, Label: fmt.Sprintf("%s for %s on %s (support: %s)", e.Name, e.ClientName, e.DayStart.Format(DateLayout), orNone(e.SupportContactName))})
	}
	return rows
}

func collaboratorRecord(c *collaborator.Collaborator) []Pair {
	return []Pair{
		{"ID", formatID(c.ID)},
		{"Username", c.Username},
		{"Name", c.FullName()},
		{"Email", c.Email},
		{"Employee #", c.EmployeeNumber},
		{"Role", orNone(c.Role)},
	}
}

func clientRecord(c *client.Client) []Pair {
	return []Pair{
		{"ID", formatID(c.ID)},
		{"Name", c.Name},
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Company", c.CompanyName},
		{"Commercial", orNone(c.CommercialContactName)},
	}
}

func contractRecord(c *contract.Contract) []Pair {
	return []Pair{
		{"ID", formatID(c.ID)},
		{"Client", orNone(c.ClientName)},
		{"Commercial", orNone(c.CommercialContactName)},
		{"Value", c.Value.StringFixed(2)},
		{"Due", c.Due.StringFixed(2)},
		{"Status", c.Status},
	}
}

func eventRecord(e *event.Event) []Pair {
	return []Pair{
		{"ID", formatID(e.ID)},
		{"Name", e.Name},
		{"Client", e.ClientName},
		{"Contact", e.ClientContact},
		{"Start", e.DayStart.Format(DateLayout)},
		{"End", e.DateEnd.Format(DateLayout)},
		{"Location", e.Location},
		{"Attendees", strconv.Itoa(e.Attendees)},
		{"Support", orNone(e.SupportContactName)},
	}
}
