// Package auth provides the authenticated identity attached to every request
// and the permission matrix deciding which capabilities each role holds.
//
// The identity is produced by the login layer; the core packages only ever
// consume the resolved Identity and never touch session cookies themselves.
package auth
