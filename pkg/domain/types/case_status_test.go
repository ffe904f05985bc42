package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casekeeper/pkg/domain/types"
)

func TestCaseStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status types.CaseStatus
		want   bool
	}{
		{name: "open", status: types.CaseStatusOpen, want: true},
		{name: "assigned", status: types.CaseStatusAssigned, want: true},
		{name: "in progress", status: types.CaseStatusInProgress, want: true},
		{name: "exported", status: types.CaseStatusExported, want: true},
		{name: "closed", status: types.CaseStatusClosed, want: true},
		{name: "upper case is not accepted", status: types.CaseStatus("OPEN"), want: false},
		{name: "empty status", status: types.CaseStatus(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, tt.status.IsValid()).Equal(tt.want)
		})
	}
}

func TestParseCaseStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.CaseStatus
		wantErr bool
	}{
		{name: "open", input: "Open", want: types.CaseStatusOpen},
		{name: "in progress keeps the space", input: "In Progress", want: types.CaseStatusInProgress},
		{name: "closed", input: "Closed", want: types.CaseStatusClosed},
		{name: "underscore form", input: "In_Progress", wantErr: true},
		{name: "empty status", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseCaseStatus(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
				gt.V(t, got).Equal(tt.want)
			}
		})
	}
}

func TestAllCaseStatuses(t *testing.T) {
	statuses := types.AllCaseStatuses()
	gt.A(t, statuses).Length(5)

	for _, status := range statuses {
		gt.B(t, status.IsValid()).
			Describef("Status %s should be valid", status).
			True()
	}
}

func TestCaseStatus_IsTerminal(t *testing.T) {
	for _, status := range types.AllCaseStatuses() {
		gt.V(t, status.IsTerminal()).Equal(status == types.CaseStatusClosed)
	}
}

func TestCaseStatus_Normalize(t *testing.T) {
	gt.V(t, types.CaseStatus("").Normalize()).Equal(types.CaseStatusOpen)
	gt.V(t, types.CaseStatusExported.Normalize()).Equal(types.CaseStatusExported)
}
