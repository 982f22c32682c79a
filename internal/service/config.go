// Package service implements the business logic layer.
package service

// ServiceConfig service layer configuration.
type ServiceConfig struct {
	User  UserServiceConfig
	Event EventServiceConfig
}

// UserServiceConfig user service configuration.
type UserServiceConfig struct {
	RegisterIsEnable bool
}

// EventServiceConfig event service configuration.
type EventServiceConfig struct {
	// BatchCreateLimit caps how many events one batch request may carry.
	BatchCreateLimit int
	// DefaultPageSize and MaxPageSize bound list pagination.
	DefaultPageSize int
	MaxPageSize     int
}
