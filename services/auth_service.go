package services

import (
	"errors"

	"cgm-backend/config"
	"cgm-backend/models"
	"cgm-backend/utils"

	"gorm.io/gorm"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.AppConfig
}

func NewAuthService(db *gorm.DB, cfg *config.AppConfig) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Register(email, password, fullName string) error {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: hashed,
		FullName: fullName,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &DuplicateError{Detail: "email already registered"}
		}
		return &StoreError{Op: "register", Err: err}
	}
	return nil
}

// Login returns a signed bearer token for the owner.
func (s *AuthService) Login(email, password string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", errors.New("invalid email or password")
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("invalid email or password")
	}
	return utils.GenerateJWT(user.ID, user.Email, s.cfg.JWTSecret)
}
