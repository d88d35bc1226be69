package repository

import (
	"strings"

	"gorm.io/gorm"

	"document-approval-api/models"
	"document-approval-api/services"
)

type userStore struct {
	db *gorm.DB
}

// NewUserStore returns the GORM-backed user store.
func NewUserStore(db *gorm.DB) services.UserStore {
	return &userStore{db: db}
}

func (s *userStore) Create(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return wrap(s.db.Create(user).Error)
}

func (s *userStore) Update(user *models.User) error {
	return wrap(s.db.Save(user).Error)
}

func (s *userStore) FindByID(id int) (*models.User, error) {
	var user models.User
	if err := s.db.Where("user_id = ?", id).First(&user).Error; err != nil {
		return nil, wrap(err)
	}
	return &user, nil
}

func (s *userStore) FindActiveByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(email)), true).
		First(&user).Error
	if err != nil {
		return nil, wrap(err)
	}
	return &user, nil
}

func (s *userStore) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("user_id ASC").Find(&users).Error; err != nil {
		return nil, wrap(err)
	}
	return users, nil
}
