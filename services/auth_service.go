package services

import (
	"context"
	"errors"
	"strings"

	"dugun.link/configs/configslog"
	"dugun.link/models"
	"dugun.link/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// LoginInput panel giriş formu.
type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email,max=150"`
	Password string `json:"password" form:"password" validate:"required,max=72"`
}

type IAuthService interface {
	Login(ctx context.Context, input LoginInput) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	Register(ctx context.Context, name, email, password string, active bool) (*models.User, error)
}

type AuthService struct {
	users repositories.IUserRepository
}

func NewAuthService(users repositories.IUserRepository) IAuthService {
	return &AuthService{users: users}
}

// HashPassword şifreyi bcrypt ile hashler.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Login e-posta ve şifreyi doğrular. Kullanıcı yok veya şifre yanlışsa aynı hata döner.
// Pasif kullanıcılar giriş yapabilir; ne yapabilecekleri yetki kurallarıyla belirlenir.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		configslog.Log.Error("AuthService.Login: kullanıcı sorgulanamadı", zap.Error(err))
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	configslog.SLog.Infof("Kullanıcı giriş yaptı: ID %d", user.ID)
	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return user, nil
}

// Register yeni kullanıcı oluşturur (seeder ve testler tarafından kullanılır; public kayıt yoktur).
func (s *AuthService) Register(ctx context.Context, name, email, password string, active bool) (*models.User, error) {
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Name: name, Email: email, PasswordHash: hashed, IsActive: active}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, newValidationError("email", "bu e-posta adresi zaten kayıtlı")
		}
		return nil, err
	}
	return user, nil
}
