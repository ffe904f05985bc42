package textfile

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/domain/types"
)

const maxLineSize = 1024 * 1024

type section int

const (
	sectionNone section = iota
	sectionManagers
	sectionCases
	sectionSystem
)

type caseList int

const (
	listNone caseList = iota
	listAssigned
	listActions
)

// pendingCase is a case record under construction
type pendingCase struct {
	c                *model.Case
	list             caseList
	declaredAssigned int
	declaredActions  int
}

type decoder struct {
	limits   model.Limits
	location *time.Location
	snap     *model.Snapshot
	diags    []error

	section  section
	lineNum  int
	line     string
	manager  *model.Manager
	pending  *pendingCase
	skipping bool // inside a case block whose header failed to parse
	caseIDs  map[int64]struct{}
	maxID    int64 // largest case id seen, including dropped records
}

// Decode parses the data file format. Problems with individual lines or
// records are returned as diagnostics wrapping model.ErrParse and never abort
// the pass; the returned error is set only when reading fails.
func Decode(r io.Reader, limits model.Limits) (*model.Snapshot, []error, error) {
	d := &decoder{
		limits:   limits,
		location: time.Local,
		snap:     model.NewSnapshot(),
		caseIDs:  make(map[int64]struct{}),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		d.lineNum++
		d.line = strings.TrimSuffix(scanner.Text(), "\r")
		d.consume()
	}
	if err := scanner.Err(); err != nil {
		return nil, d.diags, goerr.Wrap(err, "failed to read data", goerr.V(model.LineNumKey, d.lineNum))
	}

	d.commit()
	if d.maxID >= d.snap.NextCaseID {
		d.snap.NextCaseID = model.CaseIDAfter(d.maxID)
	}

	return d.snap, d.diags, nil
}

func (d *decoder) report(msg string, opts ...goerr.Option) {
	opts = append(opts,
		goerr.V(model.LineNumKey, d.lineNum),
		goerr.V(model.LineKey, d.line),
	)
	d.diags = append(d.diags, goerr.Wrap(model.ErrParse, msg, opts...))
}

func (d *decoder) consume() {
	line := d.line

	if strings.TrimSpace(line) == "" {
		d.commit()
		return
	}
	if strings.HasPrefix(line, "#") {
		return
	}

	switch strings.TrimSpace(line) {
	case markerManagers:
		d.enter(sectionManagers)
		return
	case markerCases:
		d.enter(sectionCases)
		return
	case markerSystem:
		d.enter(sectionSystem)
		return
	}

	switch d.section {
	case sectionManagers:
		d.consumeManager(line)
	case sectionCases:
		d.consumeCase(line)
	case sectionSystem:
		d.consumeSystem(line)
	default:
		d.report("line outside of any section")
	}
}

func (d *decoder) enter(s section) {
	d.commit()
	d.section = s
}

// commit finalizes whichever record is under construction
func (d *decoder) commit() {
	d.commitManager()
	d.commitCase()
	d.skipping = false
}

func (d *decoder) commitManager() {
	if d.manager == nil {
		return
	}
	m := d.manager
	d.manager = nil

	if m.Name == "" {
		d.report("manager record without name")
		return
	}
	for _, existing := range d.snap.Managers {
		if existing.Name == m.Name {
			d.report("duplicate manager dropped", goerr.V(model.ManagerKey, m.Name))
			return
		}
	}
	if len(d.snap.Managers) >= d.limits.MaxManagers {
		d.report("manager dropped, table is full", goerr.V(model.ManagerKey, m.Name), goerr.V(model.LimitKey, d.limits.MaxManagers))
		return
	}
	d.snap.Managers = append(d.snap.Managers, m)
}

func (d *decoder) commitCase() {
	if d.pending == nil {
		return
	}
	p := d.pending
	d.pending = nil
	c := p.c

	if p.declaredAssigned >= 0 && p.declaredAssigned != len(c.AssignedManagers) {
		d.report("assigned manager count mismatch",
			goerr.V(model.CaseIDKey, c.ID),
			goerr.V("declared", p.declaredAssigned),
			goerr.V("actual", len(c.AssignedManagers)))
	}
	if p.declaredActions >= 0 && p.declaredActions != len(c.Actions) {
		d.report("action count mismatch",
			goerr.V(model.CaseIDKey, c.ID),
			goerr.V("declared", p.declaredActions),
			goerr.V("actual", len(c.Actions)))
	}

	if _, dup := d.caseIDs[c.ID]; dup {
		d.report("duplicate case dropped", goerr.V(model.CaseIDKey, c.ID))
		return
	}
	if len(d.snap.Cases) >= d.limits.MaxCases {
		d.report("case dropped, table is full", goerr.V(model.CaseIDKey, c.ID), goerr.V(model.LimitKey, d.limits.MaxCases))
		return
	}
	d.caseIDs[c.ID] = struct{}{}
	d.snap.Cases = append(d.snap.Cases, c)
}

func (d *decoder) consumeManager(line string) {
	if strings.HasPrefix(line, prefixManagerHeader) && strings.HasSuffix(line, ":") {
		d.commit()
		d.manager = &model.Manager{Active: true}
		return
	}

	// Field lines without a header still start a record.
	if d.manager == nil {
		d.manager = &model.Manager{Active: true}
	}

	switch {
	case strings.HasPrefix(line, prefixName):
		d.manager.Name = strings.TrimPrefix(line, prefixName)
	case strings.HasPrefix(line, prefixDepartment):
		d.manager.Department = strings.TrimPrefix(line, prefixDepartment)
	case strings.HasPrefix(line, prefixPassword):
		d.manager.Password = strings.TrimPrefix(line, prefixPassword)
	case strings.HasPrefix(line, prefixStatus):
		d.manager.Active = strings.TrimPrefix(line, prefixStatus) == statusActive
		d.commitManager()
	default:
		d.report("unknown manager line")
	}
}

func (d *decoder) consumeCase(line string) {
	if strings.HasPrefix(line, prefixCaseID) {
		d.commit()
		id, err := strconv.ParseInt(strings.TrimSpace(strings.TrimPrefix(line, prefixCaseID)), 10, 64)
		if err != nil {
			d.report("invalid case ID, case skipped", goerr.V("error", err.Error()))
			d.skipping = true
			return
		}
		d.maxID = max(d.maxID, id)
		d.pending = &pendingCase{
			c: &model.Case{
				ID:     id,
				Status: types.CaseStatusOpen,
			},
			declaredAssigned: -1,
			declaredActions:  -1,
		}
		return
	}

	if d.skipping {
		return
	}
	if d.pending == nil {
		d.report("case field outside of a case record")
		return
	}

	p := d.pending
	c := p.c
	switch {
	case strings.HasPrefix(line, prefixTitle):
		c.Title = strings.TrimPrefix(line, prefixTitle)
	case strings.HasPrefix(line, prefixDescription):
		c.Description = strings.TrimPrefix(line, prefixDescription)
	case strings.HasPrefix(line, prefixCreated):
		d.parseCreated(c, strings.TrimPrefix(line, prefixCreated))
	case strings.HasPrefix(line, prefixSource):
		c.Source = strings.TrimPrefix(line, prefixSource)
	case strings.HasPrefix(line, prefixStatus):
		status, err := types.ParseCaseStatus(strings.TrimPrefix(line, prefixStatus))
		if err != nil {
			d.report("invalid case status, keeping Open", goerr.V(model.CaseIDKey, c.ID))
			return
		}
		c.Status = status
	case strings.HasPrefix(line, prefixAssigned):
		p.list = listAssigned
		p.declaredAssigned = d.parseCount(strings.TrimPrefix(line, prefixAssigned))
	case strings.HasPrefix(line, prefixActions):
		p.list = listActions
		p.declaredActions = d.parseCount(strings.TrimPrefix(line, prefixActions))
	case strings.HasPrefix(line, prefixListItem):
		d.consumeListItem(p, strings.TrimPrefix(line, prefixListItem))
	default:
		d.report("unknown case line", goerr.V(model.CaseIDKey, c.ID))
	}
}

func (d *decoder) consumeListItem(p *pendingCase, item string) {
	c := p.c
	switch p.list {
	case listAssigned:
		if len(c.AssignedManagers) >= d.limits.MaxAssignedManagers {
			d.report("assigned manager dropped, list is full", goerr.V(model.CaseIDKey, c.ID))
			return
		}
		if c.IsAssigned(item) {
			d.report("duplicate assignment dropped", goerr.V(model.CaseIDKey, c.ID), goerr.V(model.ManagerKey, item))
			return
		}
		c.AssignedManagers = append(c.AssignedManagers, item)

	case listActions:
		if len(c.Actions) >= d.limits.MaxActions {
			d.report("action dropped, list is full", goerr.V(model.CaseIDKey, c.ID))
			return
		}
		action, err := decodeAction(item)
		if err != nil {
			d.report("malformed action dropped", goerr.V(model.CaseIDKey, c.ID), goerr.V("error", err.Error()))
			return
		}
		c.Actions = append(c.Actions, action)

	default:
		d.report("list item without list header", goerr.V(model.CaseIDKey, c.ID))
	}
}

func (d *decoder) parseCreated(c *model.Case, value string) {
	date, clock, ok := strings.Cut(value, createdSeparator)
	if !ok {
		d.report("invalid creation timestamp", goerr.V(model.CaseIDKey, c.ID))
		return
	}
	createdAt, err := time.ParseInLocation(model.DateLayout+" "+model.TimeLayout, date+" "+clock, d.location)
	if err != nil {
		d.report("invalid creation timestamp", goerr.V(model.CaseIDKey, c.ID), goerr.V("error", err.Error()))
		return
	}
	c.CreatedAt = createdAt
}

// parseCount reads the N out of "N):". It returns -1 when N is malformed.
func (d *decoder) parseCount(rest string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(rest, "):"))
	if err != nil || n < 0 {
		d.report("invalid list count")
		return -1
	}
	return n
}

func (d *decoder) consumeSystem(line string) {
	if !strings.HasPrefix(line, prefixNextCaseID) {
		d.report("unknown system line")
		return
	}
	next, err := strconv.ParseInt(strings.TrimSpace(strings.TrimPrefix(line, prefixNextCaseID)), 10, 64)
	if err != nil {
		d.report("invalid next case ID", goerr.V("error", err.Error()))
		return
	}
	d.snap.NextCaseID = next
}

// decodeAction parses `date time by "manager": "description"`. The legacy
// unquoted form `date time by manager: description` is accepted as well; it
// splits at the first " by " and the first ": " after it.
func decodeAction(item string) (model.Action, error) {
	stamp, rest, ok := strings.Cut(item, actionBy)
	if !ok {
		return model.Action{}, goerr.New("missing actor separator")
	}
	date, clock, ok := strings.Cut(stamp, " ")
	if !ok {
		return model.Action{}, goerr.New("missing action time")
	}

	action := model.Action{Date: date, Time: clock}

	if strings.HasPrefix(rest, `"`) {
		quoted, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return model.Action{}, goerr.Wrap(err, "invalid quoted manager")
		}
		manager, err := strconv.Unquote(quoted)
		if err != nil {
			return model.Action{}, goerr.Wrap(err, "invalid quoted manager")
		}
		description, ok := strings.CutPrefix(rest[len(quoted):], actionColon)
		if !ok {
			return model.Action{}, goerr.New("missing description separator")
		}
		if strings.HasPrefix(description, `"`) {
			description, err = strconv.Unquote(description)
			if err != nil {
				return model.Action{}, goerr.Wrap(err, "invalid quoted description")
			}
		}
		action.Manager = manager
		action.Description = description
		return action, nil
	}

	manager, description, ok := strings.Cut(rest, actionColon)
	if !ok {
		return model.Action{}, goerr.New("missing description separator")
	}
	action.Manager = manager
	action.Description = description
	return action, nil
}
