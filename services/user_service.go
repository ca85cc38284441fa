package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/delight-cuisine/models"
	"github.com/yeremiapane/delight-cuisine/utils"
)

const minPasswordLength = 6

// TokenPair is returned on login.
type TokenPair struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

// UserService is the account side of the auth provider: registration,
// credential checks and token issuance.
type UserService struct {
	DB     *gorm.DB
	Tokens *utils.TokenManager
}

func NewUserService(db *gorm.DB, tokens *utils.TokenManager) *UserService {
	return &UserService{DB: db, Tokens: tokens}
}

// Register creates a customer account. Admin accounts are only created by
// EnsureAdmin.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, newError(KindValidation, "name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, newError(KindValidation, "invalid email address")
	}
	if len(password) < minPasswordLength {
		return nil, newError(KindValidation, "password must be at least %d characters", minPasswordLength)
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, storageError("check email", err, nil)
	}
	if count > 0 {
		return nil, newError(KindValidation, "email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &Error{Kind: KindStorage, Message: "hash password", Err: err}
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleCustomer,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, storageError("create user", err, nil)
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)
	return &user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindUnauthorized, "invalid email or password")
		}
		return nil, storageError("find user", err, nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, newError(KindUnauthorized, "invalid email or password")
	}

	access, err := s.Tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, &Error{Kind: KindStorage, Message: "issue access token", Err: err}
	}
	refresh, err := s.Tokens.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, &Error{Kind: KindStorage, Message: "issue refresh token", Err: err}
	}

	utils.InfoLogger.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("Login successful")
	return &TokenPair{AccessToken: access, RefreshToken: refresh, User: &user}, nil
}

// Refresh exchanges a refresh token for a new access token. The role is
// re-read from the database so demoted accounts do not keep old rights.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.Tokens.ParseToken(refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return "", newError(KindUnauthorized, "invalid or expired refresh token")
	}

	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, claims.UserID).Error; err != nil {
		return "", storageError("find user", err, newError(KindUnauthorized, "user no longer exists"))
	}

	access, err := s.Tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return "", &Error{Kind: KindStorage, Message: "issue access token", Err: err}
	}
	return access, nil
}

func (s *UserService) Me(ctx context.Context, actor Actor) (*models.User, error) {
	if actor.Anonymous() {
		return nil, newError(KindUnauthorized, "login required")
	}
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, actor.UserID).Error; err != nil {
		return nil, storageError("find user", err, newError(KindNotFound, "user not found"))
	}
	return &user, nil
}

// EnsureAdmin creates the default admin account when no user with that email
// exists. Keeping a single admin is an operating policy, not enforced here.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) (*models.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, storageError("find admin", err, nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, &Error{Kind: KindStorage, Message: "hash password", Err: err}
	}
	user = models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, false, storageError("create admin", err, nil)
	}
	return &user, true, nil
}
