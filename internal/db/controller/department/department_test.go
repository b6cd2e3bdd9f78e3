package department_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/controller/department"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open sqlite in-memory db")

	require.NoError(t, db.AutoMigrate(
		&models.Department{},
		&models.Staff{},
		&models.Complaint{},
	))

	return db
}

func TestCreateAndGet(t *testing.T) {
	db := newTestDB(t)

	created, err := department.Create(db, "Surgery", "Surgical wards")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := department.Get(db, "Surgery")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Surgical wards", got.Description)

	byID, err := department.GetByID(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Surgery", byID.Name)
}

func TestCreate_Errors(t *testing.T) {
	db := newTestDB(t)

	_, err := department.Create(db, "", "no name")
	assert.ErrorIs(t, err, department.ErrDepartmentNameEmpty)

	_, err = department.Create(db, "Surgery", "")
	require.NoError(t, err)

	_, err = department.Create(db, "Surgery", "duplicate")
	assert.ErrorIs(t, err, department.ErrDepartmentAlreadyExists)

	_, err = department.Create(nil, "Surgery", "")
	assert.ErrorIs(t, err, department.ErrDBNil)
}

func TestGet_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := department.Get(db, "Cardiology")
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)

	_, err = department.GetByID(db, 42)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestGetAll_OrderedByName(t *testing.T) {
	db := newTestDB(t)

	for _, name := range []string{"Surgery", "Administration", "Pediatrics"} {
		_, err := department.Create(db, name, "")
		require.NoError(t, err)
	}

	all, err := department.GetAll(db)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Administration", all[0].Name)
	assert.Equal(t, "Pediatrics", all[1].Name)
	assert.Equal(t, "Surgery", all[2].Name)
}

func TestUpdate(t *testing.T) {
	db := newTestDB(t)

	created, err := department.Create(db, "Surgery", "old description")
	require.NoError(t, err)

	updated, err := department.Update(db, created.ID, "Surgery & Anaesthesia", "new description")
	require.NoError(t, err)
	assert.Equal(t, "Surgery & Anaesthesia", updated.Name)

	_, err = department.Update(db, created.ID, "", "")
	assert.ErrorIs(t, err, department.ErrDepartmentNameEmpty)

	_, err = department.Update(db, 42, "Cardiology", "")
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)

	created, err := department.Create(db, "Surgery", "")
	require.NoError(t, err)

	require.NoError(t, department.Delete(db, created.ID))

	assert.ErrorIs(t, department.Delete(db, created.ID), department.ErrDepartmentNotFound)
}

func TestDelete_InUse(t *testing.T) {
	db := newTestDB(t)

	created, err := department.Create(db, "Surgery", "")
	require.NoError(t, err)

	// a department with staff cannot be deleted
	require.NoError(t, db.Create(&models.Staff{
		Username:     "nurse",
		Role:         models.RoleBasic,
		DepartmentID: created.ID,
		Active:       true,
	}).Error)

	assert.ErrorIs(t, department.Delete(db, created.ID), department.ErrDepartmentInUse)

	// neither can one that still owns complaints
	require.NoError(t, db.Where("department_id = ?", created.ID).Delete(&models.Staff{}).Error)
	require.NoError(t, db.Create(&models.Complaint{
		Reference:    "REF0001",
		DepartmentID: created.ID,
		SubmittedBy:  1,
		Category:     "billing",
		Detail:       "detail",
		Status:       "New",
	}).Error)

	assert.ErrorIs(t, department.Delete(db, created.ID), department.ErrDepartmentInUse)
}
