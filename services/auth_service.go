package services

import (
	"strings"
	"time"

	"github.com/BeeBeBong/Emenu/entity"
	"github.com/BeeBeBong/Emenu/pkg/apperr"
	"github.com/BeeBeBong/Emenu/repository"
	"github.com/BeeBeBong/Emenu/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	Repo      *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		Repo:      repository.NewUserRepository(db),
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

type LoginRes struct {
	Token    string `json:"token"`
	UserID   uint   `json:"userId"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

func (s *AuthService) Login(username, password string) (*LoginRes, error) {
	username = strings.TrimSpace(username)
	user, err := s.Repo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Unauthorized("wrong username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("wrong username or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, err
	}

	name := user.FullName
	if name == "" {
		name = user.Username
	}
	return &LoginRes{Token: token, UserID: user.ID, FullName: name, Role: user.Role}, nil
}

func (s *AuthService) Me(userID uint) (*entity.User, error) {
	user, err := s.Repo.Get(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Unauthorized("not signed in")
	}
	return user, nil
}
