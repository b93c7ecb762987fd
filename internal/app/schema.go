package app

import (
	"strings"

	"go-cabinet/internal/activity"
	"go-cabinet/internal/auth"
	"go-cabinet/internal/dossier"
	"go-cabinet/internal/employee"
	"go-cabinet/internal/messaging/kafka"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date at startup. Employees go first so the
// cases foreign key can reference them.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&employee.Employee{},
		&dossier.Case{},
		&auth.User{},
		&activity.Activity{},
	); err != nil {
		return err
	}

	for _, stmt := range strings.Split(kafka.OutboxTableDDL, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
