package daemon

import (
	"gorm.io/gorm"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/auth"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/config"
	"github.com/CareDesk-Admin/CareDesk-Admin/internal/db/models"
)

// defaultGrants are the capability sets the matrix starts out with. The
// privileged role is absent on purpose: it bypasses the matrix.
var defaultGrants = map[models.StaffRole][]string{
	models.RoleBasic: {
		auth.PermDashboardView,
		auth.PermComplaintSubmit,
		auth.PermComplaintRead,
	},
	models.RoleDepartmentAdmin: {
		auth.PermDashboardView,
		auth.PermComplaintRead,
		auth.PermComplaintTransition,
		auth.PermComplaintAssign,
		auth.PermStaffManage,
		auth.PermReportExport,
	},
}

var defaultDepartments = []models.Department{
	{Name: "General Medicine", Description: "Internal medicine wards and outpatient clinics"},
	{Name: "Surgery", Description: "Surgical wards and operating theatres"},
	{Name: "Pediatrics", Description: "Children's wards and outpatient clinics"},
	{Name: "Administration", Description: "Billing, admissions and patient records"},
}

func seed(_ *config.Config, db *gorm.DB) {
	// Seed initial data only on empty tables.

	var count int64

	db.Model(&models.Department{}).Count(&count)
	if count == 0 {
		for i := range defaultDepartments {
			db.Create(&defaultDepartments[i])
		}
	}

	db.Model(&models.Staff{}).Count(&count)
	if count == 0 {
		// Create default privileged account
		// change the password after first login

		db.Create(
			&models.Staff{
				Username: "admin",
				Email:    "admin@localhost",
				Password: models.HashPassword("changeme"),
				Active:   true,
				Role:     models.RolePrivileged,
			},
		)
	}

	db.Model(&models.RolePermission{}).Count(&count)
	if count == 0 {
		for role, caps := range defaultGrants {
			granted := make(map[string]bool, len(caps))
			for _, c := range caps {
				granted[c] = true
			}

			for _, c := range auth.Capabilities {
				db.Create(&models.RolePermission{
					RoleName:   role,
					Capability: c,
					Granted:    granted[c],
				})
			}
		}
	}
}
