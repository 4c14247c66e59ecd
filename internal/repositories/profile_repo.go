package repositories

import (
	"festival-registration-backend/internal/models"

	"gorm.io/gorm"
)

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetProfileByID(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) CreateProfile(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

func (r *profileRepo) UpdateProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}
