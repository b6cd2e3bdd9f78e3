package auth

import "errors"

var (
	// ErrInvalidOldPassword is returned when the provided old password does not match the account's current password.
	ErrInvalidOldPassword = errors.New("invalid old password")

	// ErrUserNameOrEmailExists is returned when attempting to create an account with a username or email that already exists.
	ErrUserNameOrEmailExists = errors.New("account with username or email already exists")

	// ErrAccountDisabled is returned when attempting to authenticate a disabled account.
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrAccountNotFound is returned when an account cannot be found in the database.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDepartmentRequired is returned when creating a department admin without a home department.
	ErrDepartmentRequired = errors.New("department admins require a home department")
)
