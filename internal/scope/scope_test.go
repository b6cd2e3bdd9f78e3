package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/auth"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/models"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/fault"
)

var (
	privileged = auth.Identity{ID: 1, Role: models.RolePrivileged}
	deptAdmin  = auth.Identity{ID: 2, Role: models.RoleDepartmentAdmin, DepartmentID: 7}
	basic      = auth.Identity{ID: 3, Role: models.RoleBasic, DepartmentID: 7}
)

func TestCanView(t *testing.T) {
	type testCase struct {
		name      string
		id        auth.Identity
		complaint models.Complaint
		want      bool
	}

	testCases := []testCase{
		{name: "privileged sees everything", id: privileged, complaint: models.Complaint{DepartmentID: 99}, want: true},
		{name: "dept admin sees own department", id: deptAdmin, complaint: models.Complaint{DepartmentID: 7}, want: true},
		{name: "dept admin blind to other departments", id: deptAdmin, complaint: models.Complaint{DepartmentID: 8}, want: false},
		{name: "basic sees own submission", id: basic, complaint: models.Complaint{DepartmentID: 8, SubmittedBy: 3}, want: true},
		{name: "basic blind to others in same department", id: basic, complaint: models.Complaint{DepartmentID: 7, SubmittedBy: 2}, want: false},
		{name: "unknown role sees nothing", id: auth.Identity{ID: 9, Role: "auditor"}, complaint: models.Complaint{SubmittedBy: 9}, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanView(tc.id, tc.complaint))
		})
	}
}

func TestCanMutate(t *testing.T) {
	own := models.Complaint{DepartmentID: 7, SubmittedBy: basic.ID}

	assert.True(t, CanMutate(privileged, own))
	assert.True(t, CanMutate(deptAdmin, own))
	assert.False(t, CanMutate(deptAdmin, models.Complaint{DepartmentID: 8}))

	// submitting is the only thing a basic account does; even its own
	// complaint is read-only afterwards
	assert.False(t, CanMutate(basic, own))
}

func TestRequireDepartment(t *testing.T) {
	assert.NoError(t, RequireDepartment(privileged, 42))
	assert.NoError(t, RequireDepartment(deptAdmin, 7))
	assert.ErrorIs(t, RequireDepartment(deptAdmin, 8), fault.ErrAuthorization)

	// a basic account's rows are pinned to its own submissions already, so
	// any department filter is a harmless narrowing
	assert.NoError(t, RequireDepartment(basic, 7))
	assert.NoError(t, RequireDepartment(basic, 8))

	assert.ErrorIs(t, RequireDepartment(auth.Identity{ID: 9, Role: "auditor"}, 7), fault.ErrAuthorization)
}

func TestDeny(t *testing.T) {
	// only the unrestricted role learns a row does not exist
	assert.ErrorIs(t, Deny(privileged, true), fault.ErrNotFound)
	assert.ErrorIs(t, Deny(privileged, false), fault.ErrAuthorization)

	// scoped actors get the same answer either way
	assert.ErrorIs(t, Deny(deptAdmin, true), fault.ErrAuthorization)
	assert.ErrorIs(t, Deny(deptAdmin, false), fault.ErrAuthorization)
	assert.ErrorIs(t, Deny(basic, true), fault.ErrAuthorization)
	assert.ErrorIs(t, Deny(basic, false), fault.ErrAuthorization)
}
