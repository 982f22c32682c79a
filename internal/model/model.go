package model

import (
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for a single named model.
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "User":
		return db.AutoMigrate(User{})

	case "TokenBlacklist":
		return db.AutoMigrate(TokenBlacklist{})

	case "Event":
		return db.AutoMigrate(Event{})

	case "Permission":
		return db.AutoMigrate(Permission{})

	case "EventVersion":
		return db.AutoMigrate(EventVersion{})

	case "Changelog":
		return db.AutoMigrate(Changelog{})
	}
	return nil
}

// AutoMigrateAll migrates every model in dependency order.
func AutoMigrateAll(db *gorm.DB) error {
	for _, key := range []string{"User", "TokenBlacklist", "Event", "Permission", "EventVersion", "Changelog"} {
		if err := AutoMigrate(db, key); err != nil {
			return err
		}
	}
	return nil
}
