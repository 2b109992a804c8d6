package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	// Merge sets the given properties on the profile, creating it if needed.
	Merge(ctx context.Context, userID string, props map[string]interface{}) error
	// Increment adds by to a numeric property.
	Increment(ctx context.Context, userID, property string, by int64) error
	FindByUserID(ctx context.Context, userID string) (*entities.UserProfile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db}
}

func (r *profileRepository) Merge(ctx context.Context, userID string, props map[string]interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := r.lockProfile(tx, userID)
		if err != nil {
			return err
		}
		for k, v := range props {
			profile.Properties[k] = v
		}
		return tx.Save(profile).Error
	})
}

func (r *profileRepository) Increment(ctx context.Context, userID, property string, by int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := r.lockProfile(tx, userID)
		if err != nil {
			return err
		}
		profile.Properties[property] = toInt64(profile.Properties[property]) + by
		return tx.Save(profile).Error
	})
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID string) (*entities.UserProfile, error) {
	var profile entities.UserProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) lockProfile(tx *gorm.DB, userID string) (*entities.UserProfile, error) {
	var profile entities.UserProfile
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&profile, "user_id = ?", userID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = entities.UserProfile{UserID: userID}
	case err != nil:
		return nil, fmt.Errorf("failed to load profile %s: %w", userID, err)
	}
	if profile.Properties == nil {
		profile.Properties = datatypes.JSONMap{}
	}
	return &profile, nil
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
