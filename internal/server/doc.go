// Package server implements the HTTP API of the blood donor registry. It
// wires together the routes, stores (PostgreSQL or in-memory), the MinIO
// client for profile photos, and lifecycle helpers used by tests and the
// production binary.
package server
