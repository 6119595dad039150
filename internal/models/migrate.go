package models

import (
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB) error {
	// Thoughts written before accounts existed carry no owner. Make sure the
	// user_id column exists before AutoMigrate touches the table so those rows
	// survive with a NULL owner instead of failing the migration.
	if db.Migrator().HasTable(&Thought{}) && !db.Migrator().HasColumn(&Thought{}, "user_id") {
		if err := db.Migrator().AddColumn(&Thought{}, "user_id"); err != nil {
			return err
		}
	}

	return db.AutoMigrate(
		&User{},
		&Thought{},
	)
}
