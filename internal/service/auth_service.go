package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/quizhub/internal/dto"
	"github.com/lshigami/quizhub/internal/model"
	"github.com/lshigami/quizhub/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Authenticate(email, password string) (*model.User, error)
	Register(form dto.RegisterForm) (*model.User, error)
	EnsureAdmin(email, password string) error
	ListUsers() ([]dto.UserResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	cost     int
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo, cost: bcrypt.DefaultCost}
}

// NewAuthServiceWithCost is used by tests to keep hashing cheap.
func NewAuthServiceWithCost(userRepo repository.UserRepository, cost int) AuthService {
	return &authService{userRepo: userRepo, cost: cost}
}

func (s *authService) Authenticate(email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) Register(form dto.RegisterForm) (*model.User, error) {
	if _, err := s.userRepo.FindByEmail(form.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user := model.User{
		Email:         form.Email,
		Password:      string(hash),
		FullName:      form.FullName,
		Qualification: form.Qualification,
		Dob:           form.Dob,
		IsAdmin:       false,
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("email", form.Email).Msg("Failed to create user")
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &user, nil
}

// EnsureAdmin creates the bootstrap administrator unless a user with that
// email already exists.
func (s *authService) EnsureAdmin(email, password string) error {
	_, err := s.userRepo.FindByEmail(email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	admin := model.User{
		Email:         email,
		Password:      string(hash),
		FullName:      "Admin User",
		Qualification: "N/A",
		Dob:           "2000-01-01",
		IsAdmin:       true,
	}
	if err := s.userRepo.Create(&admin); err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}
	log.Info().Str("email", email).Msg("Seeded admin account")
	return nil
}

func (s *authService) ListUsers() ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	resp := make([]dto.UserResponse, 0, len(users))
	if err := copier.Copy(&resp, &users); err != nil {
		return nil, fmt.Errorf("mapping users: %w", err)
	}
	return resp, nil
}
