package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casekeeper/pkg/domain/types"
)

func TestParseRole(t *testing.T) {
	role, err := types.ParseRole("admin")
	gt.NoError(t, err)
	gt.V(t, role).Equal(types.RoleAdmin)

	role, err = types.ParseRole("manager")
	gt.NoError(t, err)
	gt.V(t, role).Equal(types.RoleManager)

	_, err = types.ParseRole("root")
	gt.Error(t, err)
}
