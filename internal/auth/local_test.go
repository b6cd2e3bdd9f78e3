package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/auth"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/models"
)

func newProviderDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.Staff{}))

	return db
}

func newProvider(t *testing.T) *auth.LocalProvider {
	t.Helper()

	return auth.NewLocalProvider(newProviderDB(t))
}

func TestCreateAccountAndAuthenticate(t *testing.T) {
	lp := newProvider(t)

	account, err := lp.CreateAccount(root, "bob", "bob@example.com", "secret", "Bob", "Miller", models.RoleBasic, 0)
	require.NoError(t, err)
	assert.True(t, account.Active)
	assert.NotEqual(t, "secret", account.Password, "password must be stored hashed")

	got, err := lp.Authenticate("bob", "secret")
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)

	_, err = lp.Authenticate("bob", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidPassword)

	_, err = lp.Authenticate("nobody", "secret")
	assert.ErrorIs(t, err, auth.ErrAccountNotFound)
}

func TestCreateAccount_Duplicates(t *testing.T) {
	lp := newProvider(t)

	_, err := lp.CreateAccount(root, "bob", "bob@example.com", "secret", "", "", models.RoleBasic, 0)
	require.NoError(t, err)

	_, err = lp.CreateAccount(root, "bob", "other@example.com", "secret", "", "", models.RoleBasic, 0)
	assert.ErrorIs(t, err, auth.ErrUserNameOrEmailExists)

	_, err = lp.CreateAccount(root, "robert", "bob@example.com", "secret", "", "", models.RoleBasic, 0)
	assert.ErrorIs(t, err, auth.ErrUserNameOrEmailExists)
}

func TestCreateAccount_DepartmentAdminNeedsDepartment(t *testing.T) {
	lp := newProvider(t)

	_, err := lp.CreateAccount(root, "carol", "carol@example.com", "secret", "", "", models.RoleDepartmentAdmin, 0)
	assert.ErrorIs(t, err, auth.ErrDepartmentRequired)

	account, err := lp.CreateAccount(root, "carol", "carol@example.com", "secret", "", "", models.RoleDepartmentAdmin, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), account.DepartmentID)
}

func TestChangePassword(t *testing.T) {
	lp := newProvider(t)

	account, err := lp.CreateAccount(root, "bob", "bob@example.com", "secret", "", "", models.RoleBasic, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, lp.ChangePassword(account.ID, "wrong", "newpass"), auth.ErrInvalidOldPassword)
	require.NoError(t, lp.ChangePassword(account.ID, "secret", "newpass"))

	_, err = lp.Authenticate("bob", "newpass")
	assert.NoError(t, err)
}

func TestActivateDeactivate(t *testing.T) {
	lp := newProvider(t)

	account, err := lp.CreateAccount(root, "bob", "bob@example.com", "secret", "", "", models.RoleBasic, 0)
	require.NoError(t, err)

	require.NoError(t, lp.DeactivateAccount(root, account.ID))

	_, err = lp.Authenticate("bob", "secret")
	assert.ErrorIs(t, err, auth.ErrAccountDisabled)

	require.NoError(t, lp.ActivateAccount(root, account.ID))

	_, err = lp.Authenticate("bob", "secret")
	assert.NoError(t, err)

	assert.ErrorIs(t, lp.DeactivateAccount(root, 999), auth.ErrAccountNotFound)
}

func TestResetPassword(t *testing.T) {
	lp := newProvider(t)

	account, err := lp.CreateAccount(root, "bob", "bob@example.com", "secret", "", "", models.RoleBasic, 0)
	require.NoError(t, err)

	require.NoError(t, lp.ResetPassword(root, account.ID, "changed"))

	_, err = lp.Authenticate("bob", "changed")
	assert.NoError(t, err)

	assert.ErrorIs(t, lp.ResetPassword(root, 999, "changed"), auth.ErrAccountNotFound)
}

func TestStaffEdits_Audited(t *testing.T) {
	db := newProviderDB(t)
	lp := auth.NewLocalProvider(db)

	account, err := lp.CreateAccount(root, "bob", "bob@example.com", "secret", "", "", models.RoleBasic, 0)
	require.NoError(t, err)
	require.NoError(t, lp.DeactivateAccount(root, account.ID))
	require.NoError(t, lp.ResetPassword(root, account.ID, "changed"))

	// every staff edit lands in the activity log
	var entries []models.ActivityLog
	require.NoError(t, db.Order("id ASC").Find(&entries).Error)
	require.Len(t, entries, 3)

	for _, entry := range entries {
		assert.Equal(t, auth.PermStaffManage, entry.Action)
		assert.Equal(t, root.ID, entry.ActorID)
		require.NotNil(t, entry.EntityID)
		assert.Equal(t, account.ID, *entry.EntityID)
	}

	assert.Contains(t, entries[0].Description, "created")
	assert.Contains(t, entries[1].Description, "deactivated")
	assert.Contains(t, entries[2].Description, "reset password")
}

func TestStaffEdits_AuditFailureAbortsMutation(t *testing.T) {
	db := newProviderDB(t)
	lp := auth.NewLocalProvider(db)

	account, err := lp.CreateAccount(root, "bob", "bob@example.com", "secret", "", "", models.RoleBasic, 0)
	require.NoError(t, err)

	// breaking the activity log must roll every staff edit back
	require.NoError(t, db.Migrator().DropTable(&models.ActivityLog{}))

	_, err = lp.CreateAccount(root, "carol", "carol@example.com", "secret", "", "", models.RoleBasic, 0)
	require.Error(t, err)

	require.Error(t, lp.DeactivateAccount(root, account.ID))

	var count int64
	require.NoError(t, db.Model(&models.Staff{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "the aborted create must not leave a row")

	var stored models.Staff
	require.NoError(t, db.First(&stored, account.ID).Error)
	assert.True(t, stored.Active, "the aborted deactivate must roll back")
}

func TestIdentityFromStaff(t *testing.T) {
	staff := &models.Staff{Role: models.RoleDepartmentAdmin, DepartmentID: 5}
	staff.ID = 7

	identity := auth.FromStaff(staff)
	assert.Equal(t, uint64(7), identity.ID)
	assert.Equal(t, models.RoleDepartmentAdmin, identity.Role)
	assert.Equal(t, uint64(5), identity.DepartmentID)
	assert.False(t, identity.Privileged())

	assert.True(t, auth.Identity{Role: models.RolePrivileged}.Privileged())
}
