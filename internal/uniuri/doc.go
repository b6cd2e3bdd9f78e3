// Package uniuri generates cryptographically secure random strings suitable for use as unique identifiers.
// The portal uses it for session IDs and for the public reference codes printed on complaint receipts.
package uniuri
