// Package report renders the case summary report and stores it in a sink.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/secmon-lab/casekeeper/pkg/domain/model"
)

const separator = "------------------------"

// FileName returns the report name for the given generation time
func FileName(now time.Time) string {
	return "case_report_" + now.Format(model.DateLayout) + ".txt"
}

// Render produces the human-readable summary of cases
func Render(cases []*model.Case, now time.Time) []byte {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=== Case Management System Report ===")
	fmt.Fprintf(&buf, "Generated on: %s at %s\n", now.Format(model.DateLayout), now.Format(model.TimeLayout))
	fmt.Fprintf(&buf, "Total cases: %d\n\n", len(cases))

	for _, c := range cases {
		fmt.Fprintf(&buf, "Case ID: %d\n", c.ID)
		fmt.Fprintf(&buf, "Title: %s\n", c.Title)
		fmt.Fprintf(&buf, "Status: %s\n", c.Status.Normalize())
		fmt.Fprintf(&buf, "Created: %s\n", c.CreatedAt.Format(model.DateLayout))
		fmt.Fprintf(&buf, "Assigned Managers: %s\n", strings.Join(c.AssignedManagers, ", "))
		fmt.Fprintf(&buf, "Action Count: %d\n", len(c.Actions))
		fmt.Fprintln(&buf, separator)
	}

	return buf.Bytes()
}
