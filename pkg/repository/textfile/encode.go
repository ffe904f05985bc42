package textfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
)

// Encode writes snap in the data file format
func Encode(w io.Writer, snap *model.Snapshot) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, markerManagers)
	for i, m := range snap.Managers {
		status := statusInactive
		if m.Active {
			status = statusActive
		}
		fmt.Fprintf(bw, "%s%d:\n", prefixManagerHeader, i+1)
		fmt.Fprintln(bw, prefixName+m.Name)
		fmt.Fprintln(bw, prefixDepartment+m.Department)
		fmt.Fprintln(bw, prefixPassword+m.Password)
		fmt.Fprintln(bw, prefixStatus+status)
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw, markerCases)
	for _, c := range snap.Cases {
		encodeCase(bw, c)
	}

	fmt.Fprintln(bw, markerSystem)
	fmt.Fprintf(bw, "%s%d\n", prefixNextCaseID, snap.NextCaseID)

	if err := bw.Flush(); err != nil {
		return goerr.Wrap(err, "failed to write data")
	}
	return nil
}

func encodeCase(bw *bufio.Writer, c *model.Case) {
	fmt.Fprintf(bw, "%s%d\n", prefixCaseID, c.ID)
	fmt.Fprintln(bw, prefixTitle+c.Title)
	fmt.Fprintln(bw, prefixDescription+c.Description)
	fmt.Fprintln(bw, prefixCreated+c.CreatedAt.Format(model.DateLayout)+createdSeparator+c.CreatedAt.Format(model.TimeLayout))
	fmt.Fprintln(bw, prefixSource+c.Source)
	fmt.Fprintln(bw, prefixStatus+c.Status.Normalize().String())

	fmt.Fprintf(bw, "%s%d):\n", prefixAssigned, len(c.AssignedManagers))
	for _, name := range c.AssignedManagers {
		fmt.Fprintln(bw, prefixListItem+name)
	}

	fmt.Fprintf(bw, "%s%d):\n", prefixActions, len(c.Actions))
	for _, a := range c.Actions {
		fmt.Fprintln(bw, prefixListItem+encodeAction(a))
	}
	fmt.Fprintln(bw)
}

// encodeAction renders an action as `date time by "manager": "description"`.
// Quoting keeps descriptions containing " by " or ": " unambiguous.
func encodeAction(a model.Action) string {
	return a.Date + " " + a.Time + actionBy + strconv.Quote(a.Manager) + actionColon + strconv.Quote(a.Description)
}
