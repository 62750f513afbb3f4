// Package repository provides a generic data-access layer built on Bun: a
// declarative filter/sort interpreter, offset-based paged listing with
// soft-delete semantics, prefix-tagged primary key generation, and CRUD
// mutations shared by every registered entity type.
package repository
