package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/domain/types"
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

var statusColors = map[types.CaseStatus]*color.Color{
	types.CaseStatusOpen:       color.New(color.FgGreen),
	types.CaseStatusAssigned:   color.New(color.FgCyan),
	types.CaseStatusInProgress: color.New(color.FgYellow),
	types.CaseStatusExported:   color.New(color.FgMagenta),
	types.CaseStatusClosed:     color.New(color.FgRed),
}

func statusLabel(status types.CaseStatus) string {
	if c, ok := statusColors[status]; ok {
		return c.Sprint(status.String())
	}
	return status.String()
}

func activeLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Bold(true)
			}
			return cellStyle
		}).
		Headers(headers...)
}

// CaseTable renders a one-line-per-case summary
func CaseTable(cases []*model.Case) string {
	t := newTable("ID", "Title", "Status", "Created", "Managers", "Actions")
	for _, c := range cases {
		t.Row(
			strconv.FormatInt(c.ID, 10),
			c.Title,
			statusLabel(c.Status),
			c.CreatedAt.Format(model.DateLayout),
			strings.Join(c.AssignedManagers, ", "),
			strconv.Itoa(len(c.Actions)),
		)
	}
	return t.Render()
}

// ManagerTable renders managers without their passwords
func ManagerTable(managers []*model.Manager) string {
	t := newTable("Name", "Department", "Status")
	for _, m := range managers {
		t.Row(m.Name, m.Department, activeLabel(m.Active))
	}
	return t.Render()
}

// CaseDetail renders every field of a case with its actions in order
func CaseDetail(c *model.Case) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Case ID: %d\n", c.ID)
	fmt.Fprintf(&b, "Title: %s\n", c.Title)
	fmt.Fprintf(&b, "Description: %s\n", c.Description)
	fmt.Fprintf(&b, "Created: %s at %s\n", c.CreatedAt.Format(model.DateLayout), c.CreatedAt.Format(model.TimeLayout))
	fmt.Fprintf(&b, "Source: %s\n", c.Source)
	fmt.Fprintf(&b, "Status: %s\n", statusLabel(c.Status))

	fmt.Fprintf(&b, "Assigned Managers (%d):\n", len(c.AssignedManagers))
	for _, name := range c.AssignedManagers {
		fmt.Fprintf(&b, "  - %s\n", name)
	}

	fmt.Fprintf(&b, "Actions (%d):\n", len(c.Actions))
	for i, a := range c.Actions {
		fmt.Fprintf(&b, "  %d. [%s %s] %s: %s\n", i+1, a.Date, a.Time, a.Manager, a.Description)
	}
	return b.String()
}
