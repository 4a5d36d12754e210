package services

import (
	"errors"
	"strings"

	"github.com/cribnhq/cribn-backend/internal/auth"
	"github.com/cribnhq/cribn-backend/internal/models"
	repo "github.com/cribnhq/cribn-backend/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	r  repo.Users
	tm *auth.TokenManager
}

func NewUserService(r repo.Users, tm *auth.TokenManager) *UserService { return &UserService{r: r, tm: tm} }

func (s *UserService) Register(username, email, password string) (models.User, error) {
	u := models.User{Username: strings.TrimSpace(username), Email: strings.TrimSpace(email), Role: "user"}
	if err := u.Validate(); err != nil { return models.User{}, err }
	hash, err := auth.HashPassword(password)
	if err != nil { return models.User{}, err }
	return s.r.Create(u.Username, u.Email, hash, u.Role)
}

func (s *UserService) Login(email, password string) (string, error) {
	u, err := s.r.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.tm.Generate(u.ID, u.Role)
}

func (s *UserService) GetByID(id string) (models.User, error) { return s.r.GetByID(id) }
