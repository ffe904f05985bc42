package shell

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/usecase"
)

var operationLabels = map[usecase.Operation]string{
	usecase.OpAddCase:        "Add case",
	usecase.OpListCases:      "View cases",
	usecase.OpViewCase:       "View case details",
	usecase.OpAssignManager:  "Assign manager to case",
	usecase.OpEditCase:       "Edit case",
	usecase.OpDeleteCase:     "Delete case",
	usecase.OpAppendAction:   "Add action to case",
	usecase.OpExportCase:     "Export case",
	usecase.OpCloseCase:      "Close case",
	usecase.OpAddManager:     "Add manager",
	usecase.OpListManagers:   "View managers",
	usecase.OpEditManager:    "Edit manager",
	usecase.OpToggleManager:  "Activate/deactivate manager",
	usecase.OpDeleteManager:  "Delete manager",
	usecase.OpGenerateReport: "Generate report",
	usecase.OpAddAdmin:       "Add admin",
}

func operationLabel(op usecase.Operation) string {
	if label, ok := operationLabels[op]; ok {
		return label
	}
	return op.String()
}

func (s *Shell) dispatch(ctx context.Context, op usecase.Operation) error {
	switch op {
	case usecase.OpAddCase:
		return s.addCase(ctx)
	case usecase.OpListCases:
		return s.listCases(ctx)
	case usecase.OpViewCase:
		return s.viewCase(ctx)
	case usecase.OpAssignManager:
		return s.assignManager(ctx)
	case usecase.OpEditCase:
		return s.editCase(ctx)
	case usecase.OpDeleteCase:
		return s.deleteCase(ctx)
	case usecase.OpAppendAction:
		return s.appendAction(ctx)
	case usecase.OpExportCase:
		return s.exportCase(ctx)
	case usecase.OpCloseCase:
		return s.closeCase(ctx)
	case usecase.OpAddManager:
		return s.addManager(ctx)
	case usecase.OpListManagers:
		return s.listManagers(ctx)
	case usecase.OpEditManager:
		return s.editManager(ctx)
	case usecase.OpToggleManager:
		return s.toggleManager(ctx)
	case usecase.OpDeleteManager:
		return s.deleteManager(ctx)
	case usecase.OpGenerateReport:
		return s.generateReport(ctx)
	case usecase.OpAddAdmin:
		return s.addAdmin(ctx)
	default:
		return goerr.New("unsupported operation", goerr.V(usecase.OperationKey, op.String()))
	}
}

func (s *Shell) addCase(ctx context.Context) error {
	title, err := s.prompt("Title")
	if err != nil {
		return err
	}
	description, err := s.prompt("Description")
	if err != nil {
		return err
	}
	source, err := s.prompt("Source")
	if err != nil {
		return err
	}

	c, err := s.uc.Case.CreateCase(ctx, title, description, source)
	if err != nil {
		return err
	}
	s.success("Case %d created.", c.ID)
	return nil
}

func (s *Shell) listCases(ctx context.Context) error {
	cases, err := s.uc.Case.ListCases(ctx)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		s.println("No cases found.")
		return nil
	}
	s.println(CaseTable(cases))
	return nil
}

func (s *Shell) viewCase(ctx context.Context) error {
	id, err := s.promptCaseID()
	if err != nil {
		return err
	}
	c, err := s.uc.Case.GetCase(ctx, id)
	if err != nil {
		return err
	}
	s.printf("%s", CaseDetail(c))
	return nil
}

func (s *Shell) assignManager(ctx context.Context) error {
	id, err := s.promptCaseID()
	if err != nil {
		return err
	}
	name, err := s.prompt("Manager name")
	if err != nil {
		return err
	}

	c, err := s.uc.Case.AssignManager(ctx, id, name)
	if err != nil {
		return err
	}
	s.success("Manager %s assigned to case %d. Status: %s", name, c.ID, c.Status)
	return nil
}

func (s *Shell) editCase(ctx context.Context) error {
	id, err := s.promptCaseID()
	if err != nil {
		return err
	}
	s.println("Leave a field blank to keep the current value.")

	var edit usecase.CaseEdit
	if edit.Title, err = s.prompt("New title"); err != nil {
		return err
	}
	if edit.Description, err = s.prompt("New description"); err != nil {
		return err
	}
	if edit.Source, err = s.prompt("New source"); err != nil {
		return err
	}

	if _, err := s.uc.Case.EditCase(ctx, id, edit); err != nil {
		return err
	}
	s.success("Case %d updated.", id)
	return nil
}

func (s *Shell) deleteCase(ctx context.Context) error {
	id, err := s.promptCaseID()
	if err != nil {
		return err
	}
	ok, err := s.confirm("Delete case permanently?")
	if err != nil || !ok {
		return err
	}

	if err := s.uc.Case.DeleteCase(ctx, id); err != nil {
		return err
	}
	s.success("Case %d deleted.", id)
	return nil
}

func (s *Shell) appendAction(ctx context.Context) error {
	id, err := s.promptCaseID()
	if err != nil {
		return err
	}
	description, err := s.prompt("Action description")
	if err != nil {
		return err
	}

	c, err := s.uc.Case.AppendAction(ctx, id, description)
	if err != nil {
		return err
	}
	s.success("Action added to case %d. Status: %s", c.ID, c.Status)
	return nil
}

func (s *Shell) exportCase(ctx context.Context) error {
	id, err := s.promptCaseID()
	if err != nil {
		return err
	}

	targets, err := s.uc.Case.ExportTargets(ctx, id)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		s.println("No managers available to export to.")
		return nil
	}
	s.println("Available managers:")
	for _, m := range targets {
		s.printf("  - %s (%s)\n", m.Name, m.Department)
	}

	target, err := s.prompt("Export to")
	if err != nil {
		return err
	}
	reason, err := s.prompt("Reason")
	if err != nil {
		return err
	}

	c, err := s.uc.Case.ExportCase(ctx, id, target, reason)
	if err != nil {
		return err
	}
	s.success("Case %d exported to %s.", c.ID, target)
	return nil
}

func (s *Shell) closeCase(ctx context.Context) error {
	id, err := s.promptCaseID()
	if err != nil {
		return err
	}
	if _, err := s.uc.Case.CloseCase(ctx, id); err != nil {
		return err
	}
	s.success("Case %d closed.", id)
	return nil
}

func (s *Shell) addManager(ctx context.Context) error {
	name, err := s.prompt("Manager name")
	if err != nil {
		return err
	}
	department, err := s.prompt("Department")
	if err != nil {
		return err
	}
	password, err := s.readPassword("Password")
	if err != nil {
		return err
	}

	m, err := s.uc.Manager.AddManager(ctx, name, department, password)
	if err != nil {
		return err
	}
	s.success("Manager %s added.", m.Name)
	return nil
}

func (s *Shell) listManagers(ctx context.Context) error {
	managers, err := s.uc.Manager.ListManagers(ctx)
	if err != nil {
		return err
	}
	if len(managers) == 0 {
		s.println("No managers found.")
		return nil
	}
	s.println(ManagerTable(managers))
	return nil
}

func (s *Shell) editManager(ctx context.Context) error {
	name, err := s.prompt("Manager name")
	if err != nil {
		return err
	}
	department, err := s.prompt("New department (blank keeps current)")
	if err != nil {
		return err
	}

	if _, err := s.uc.Manager.EditManager(ctx, name, department); err != nil {
		return err
	}
	s.success("Manager %s updated.", name)
	return nil
}

func (s *Shell) toggleManager(ctx context.Context) error {
	name, err := s.prompt("Manager name")
	if err != nil {
		return err
	}

	m, err := s.uc.Manager.ToggleManager(ctx, name)
	if err != nil {
		return err
	}
	s.success("Manager status updated to: %s", activeLabel(m.Active))
	return nil
}

func (s *Shell) deleteManager(ctx context.Context) error {
	name, err := s.prompt("Manager name")
	if err != nil {
		return err
	}
	ok, err := s.confirm("Delete manager permanently?")
	if err != nil || !ok {
		return err
	}

	if err := s.uc.Manager.DeleteManager(ctx, name); err != nil {
		return err
	}
	s.success("Manager %s deleted.", name)
	return nil
}

func (s *Shell) generateReport(ctx context.Context) error {
	location, err := s.uc.Report.GenerateReport(ctx)
	if err != nil {
		return err
	}
	s.success("Report generated: %s", location)
	return nil
}

func (s *Shell) addAdmin(ctx context.Context) error {
	username, err := s.prompt("Admin username")
	if err != nil {
		return err
	}
	password, err := s.readPassword("Password")
	if err != nil {
		return err
	}

	if err := s.uc.Auth.AddAdmin(ctx, username, password); err != nil {
		return err
	}
	s.success("Admin %s added.", username)
	return nil
}

func (s *Shell) confirm(question string) (bool, error) {
	answer, err := s.prompt(question + " (y/N)")
	if err != nil {
		return false, err
	}
	if strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes") {
		return true, nil
	}
	s.println("Cancelled.")
	return false, nil
}
