package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileService handles users and their one-to-one profiles
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db: db,
	}
}

// GetUser returns a user with its profile. Users created before profiles existed get
// an empty profile on first access.
func (s *ProfileService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return notFound(err)
		}
		profile, err := ensureProfile(tx, user.ID)
		if err != nil {
			return err
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the profile of userID. Only the user itself may do that, any
// other caller gets ErrNotFound.
func (s *ProfileService) UpdateProfile(ctx context.Context, callerID, userID uint, in *types.ProfileInput) (*models.User, error) {
	if callerID != userID {
		return nil, ErrNotFound
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return notFound(err)
		}
		profile, err := ensureProfile(tx, user.ID)
		if err != nil {
			return err
		}
		if in != nil {
			if in.DisplayName != nil {
				profile.DisplayName = *in.DisplayName
			}
			if in.Bio != nil {
				profile.Bio = *in.Bio
			}
			if err := tx.Save(profile).Error; err != nil {
				return err
			}
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// BackfillProfiles creates an empty profile for every user that has none and returns
// how many were created. Running it again is a no-op.
func (s *ProfileService) BackfillProfiles(ctx context.Context) (int, error) {
	db := s.db.WithContext(ctx)

	var ids []uint
	missing := db.Model(&models.Profile{}).Select("1").Where("profiles.user_id = users.id")
	if err := db.Model(&models.User{}).Where("NOT EXISTS (?)", missing).Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("failed to find users without profile: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	profiles := make([]models.Profile, len(ids))
	for i, id := range ids {
		profiles[i] = models.Profile{UserID: id}
	}
	if err := db.CreateInBatches(&profiles, 100).Error; err != nil {
		return 0, fmt.Errorf("failed to create profiles: %w", err)
	}
	return len(profiles), nil
}

func ensureProfile(tx *gorm.DB, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := tx.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	// another request may create it between the lookup and the insert
	created := models.Profile{UserID: userID}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&created).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}
