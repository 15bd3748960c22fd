// Package store defines the persistence interfaces of the application
// along with shared database abstractions and sentinel errors. Concrete
// implementations live in internal/platform/postgres.
package store
