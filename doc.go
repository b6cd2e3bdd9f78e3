// Package main provides the entry point for the CareDesk-Admin portal.
// It initializes and runs a web server using the Fiber framework through
// which patients and relatives submit complaints about hospital services,
// and through which department administrators track each complaint through
// its lifecycle. The application uses gorm for data persistence and keeps
// an append-only history and activity log alongside every mutation.
package main
