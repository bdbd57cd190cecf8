// Package ent holds the generated ent client for the garage storage schemas.
// Run `go generate ./...` to (re)generate after editing schema/.
package ent

//go:generate go run -mod=mod entgo.io/ent/cmd/ent generate ./schema
