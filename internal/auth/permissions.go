package auth

// Capability constants define the available capabilities in the system.
// These are used for role-based access control to restrict access
// to specific resources and actions. The privileged role holds every
// capability implicitly; for the other roles grants live in the
// role_permissions table.
const (
	// PermDashboardView allows viewing the dashboard with complaint counts.
	PermDashboardView = "dashboard.view"

	// PermComplaintSubmit allows filing new complaints.
	PermComplaintSubmit = "complaint.submit"
	// PermComplaintRead allows viewing complaints within the caller's scope.
	PermComplaintRead = "complaint.read"
	// PermComplaintTransition allows moving a complaint through its lifecycle.
	PermComplaintTransition = "complaint.transition"
	// PermComplaintAssign allows assigning a responsible staff member.
	PermComplaintAssign = "complaint.assign"

	// PermStaffManage allows managing staff accounts of the caller's scope.
	PermStaffManage = "staff.manage"
	// PermPermissionManage allows editing the permission matrix.
	PermPermissionManage = "permission.manage"
	// PermActivityView allows reading the system-wide activity log.
	PermActivityView = "activity.view"
	// PermActivityPurge allows bulk-purging old activity log entries.
	PermActivityPurge = "activity.purge"
	// PermReportExport allows exporting complaint reports.
	PermReportExport = "report.export"
)

// Capabilities is the full list of known capabilities. SetCapabilities
// clears exactly this list before applying a new grant set, so adding a
// capability means adding it here.
var Capabilities = []string{
	PermDashboardView,
	PermComplaintSubmit,
	PermComplaintRead,
	PermComplaintTransition,
	PermComplaintAssign,
	PermStaffManage,
	PermPermissionManage,
	PermActivityView,
	PermActivityPurge,
	PermReportExport,
}

// KnownCapability reports whether name is a defined capability.
func KnownCapability(name string) bool {
	for _, c := range Capabilities {
		if c == name {
			return true
		}
	}

	return false
}
