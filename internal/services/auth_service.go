package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"festival-registration-backend/internal/config"
	"festival-registration-backend/internal/mailer"
	"festival-registration-backend/internal/models"
	"festival-registration-backend/internal/repositories"
	"festival-registration-backend/internal/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const loginCodeTTL = 10 * time.Minute

type loginCode struct {
	code      string
	expiresAt time.Time
}

type AuthService struct {
	repo *repositories.Repository
	cfg  *config.Config

	mu         sync.Mutex
	loginCodes map[string]loginCode
}

func NewAuthService(repo *repositories.Repository, cfg *config.Config) *AuthService {
	return &AuthService{
		repo:       repo,
		cfg:        cfg,
		loginCodes: make(map[string]loginCode),
	}
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Session is the resolved identity for a caller: the account itself, its
// profile if one exists, and its admin role/scope if one exists. A missing
// profile or admin row is not an error.
type Session struct {
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile"`
	Admin   *models.Admin   `json:"admin"`
}

type SignUpRequest struct {
	Email    string
	Password string
	Name     string
	USN      string
	Phone    string
}

// SignUp creates the account and its profile. The two writes are sequential,
// not transactional; a profile failure leaves the account usable and the
// profile creatable later.
func (s *AuthService) SignUp(req SignUpRequest) (*LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if existing, _ := s.repo.UserRepo.GetUserByEmail(email); existing != nil {
		return nil, errors.New("email already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: hashedPassword,
	}
	if err := s.repo.UserRepo.CreateUser(user); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		ID:    user.ID,
		Name:  strings.TrimSpace(req.Name),
		USN:   strings.TrimSpace(strings.ToUpper(req.USN)),
		Phone: strings.TrimSpace(req.Phone),
	}
	if err := s.repo.ProfileRepo.CreateProfile(profile); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to create profile at signup")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	user.Password = ""
	return &LoginResponse{Token: token, User: user}, nil
}

func (s *AuthService) Authenticate(email, password string) (*LoginResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	user, err := s.repo.UserRepo.GetUserByEmail(email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := utils.CheckPassword(password, user.Password); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	user.Password = ""
	return &LoginResponse{Token: token, User: user}, nil
}

// RequestLoginCode issues a one-time sign-in code for an existing account.
// The response is the same whether or not the account exists, so this
// endpoint cannot be used to probe for registered emails.
func (s *AuthService) RequestLoginCode(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.UserRepo.GetUserByEmail(email)
	if err != nil {
		return nil
	}

	code, err := generateLoginCode()
	if err != nil {
		return errors.New("failed to generate login code")
	}

	s.mu.Lock()
	s.loginCodes[email] = loginCode{code: code, expiresAt: time.Now().Add(loginCodeTTL)}
	s.mu.Unlock()

	if err := mailer.SendLoginCode(s.cfg, user.Email, code); err != nil {
		logrus.WithError(err).WithField("email", email).Error("failed to deliver login code")
	}
	return nil
}

// LoginWithCode exchanges a previously issued one-time code for a token.
// Codes are single use.
func (s *AuthService) LoginWithCode(email, code string) (*LoginResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	s.mu.Lock()
	issued, ok := s.loginCodes[email]
	if ok {
		delete(s.loginCodes, email)
	}
	s.mu.Unlock()

	if !ok || issued.code != code || time.Now().After(issued.expiresAt) {
		return nil, errors.New("invalid or expired code")
	}

	user, err := s.repo.UserRepo.GetUserByEmail(email)
	if err != nil {
		return nil, errors.New("invalid or expired code")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	user.Password = ""
	return &LoginResponse{Token: token, User: user}, nil
}

func (s *AuthService) UpdatePassword(userID, oldPassword, newPassword string) error {
	user, err := s.repo.UserRepo.GetUserByID(userID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := utils.CheckPassword(oldPassword, user.Password); err != nil {
		return errors.New("current password is incorrect")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	return s.repo.UserRepo.UpdateUser(user)
}

// ResolveSession looks up the caller's profile and admin row. Both lookups
// are independent; absence of either is normal and only unexpected failures
// are logged.
func (s *AuthService) ResolveSession(userID string) (*Session, error) {
	user, err := s.repo.UserRepo.GetUserByID(userID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	user.Password = ""

	session := &Session{User: user}

	profile, err := s.repo.ProfileRepo.GetProfileByID(userID)
	if err == nil {
		session.Profile = profile
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).WithField("user_id", userID).Error("profile lookup failed")
	}

	admin, err := s.repo.AdminRepo.GetAdminByID(userID)
	if err == nil {
		session.Admin = admin
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).WithField("user_id", userID).Error("admin lookup failed")
	}

	return session, nil
}

type UpdateProfileRequest struct {
	Name  string
	Phone string
}

// UpdateProfile changes the mutable profile fields (name, phone). The USN
// never changes after creation.
func (s *AuthService) UpdateProfile(userID string, req UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.repo.ProfileRepo.GetProfileByID(userID)
	if err != nil {
		return nil, errors.New("profile not found")
	}

	profile.Name = strings.TrimSpace(req.Name)
	profile.Phone = strings.TrimSpace(req.Phone)

	if err := s.repo.ProfileRepo.UpdateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) GetProfile(userID string) (*models.Profile, error) {
	return s.repo.ProfileRepo.GetProfileByID(userID)
}

func (s *AuthService) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func generateLoginCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	n := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	return fmt.Sprintf("%06d", n%1000000), nil
}
