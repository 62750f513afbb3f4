// Package database provides connection management for the stores egret runs
// against: configuration loading, dialect-aware Bun connection setup, pooling,
// health checks, query logging hooks, model registration, and startup table
// creation.
package database
