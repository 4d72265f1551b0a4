package mysql

import (
	"gorm.io/gorm"

	"github.com/Guyuepp/conduit-feed/internal/repository/mysql/model"
)

// Migrate creates or updates every table of the service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(model.All()...)
}
