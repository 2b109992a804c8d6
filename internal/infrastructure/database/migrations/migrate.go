package migrations

import (
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/infrastructure/storage"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&entities.Event{}, &entities.UserProfile{}, &storage.StorageItem{})
}
