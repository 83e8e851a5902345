package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/kanban-web/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultProfile scopes state when no profile is configured.
const DefaultProfile = "default"

// GormStateRepository is a GORM implementation of StateRepository
type GormStateRepository struct {
	db      *gorm.DB
	profile string
}

// NewStateRepository creates a new StateRepository scoped to profile
func NewStateRepository(db *gorm.DB, profile string) *GormStateRepository {
	if profile == "" {
		profile = DefaultProfile
	}
	return &GormStateRepository{db: db, profile: profile}
}

func (r *GormStateRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var state models.ClientState
	err := r.db.WithContext(ctx).
		Where(&models.ClientState{Profile: r.profile, Key: key}).
		First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return state.Value, true, nil
}

func (r *GormStateRepository) Set(ctx context.Context, key, value string) error {
	state := models.ClientState{
		Profile: r.profile,
		Key:     key,
		Value:   value,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&state).Error
}

func (r *GormStateRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where(map[string]any{"profile": r.profile, "key": keys}).
		Delete(&models.ClientState{}).Error
}
