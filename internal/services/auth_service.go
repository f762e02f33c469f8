package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/crewboard/backend/internal/auth"
	"github.com/crewboard/backend/internal/models"
	"github.com/crewboard/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrUsernameNotFound is returned when a login identifier without "@"
// matches no profile. Password verification is never attempted in that
// case.
var ErrUsernameNotFound = errors.New("username not found")

// ErrInvalidCredentials is returned when the email/password pair does
// not authenticate.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository is the interface that wraps methods for users table
// data access needed by the auth service.
type UserRepository interface {
	// Create inserts a new user. The caller assigns user.ID.
	Create(ctx context.Context, user *models.User) error
	// GetByEmail retrieves a user by email.
	//
	// If no user with such email exists, an error is returned together
	// with a nil value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// ExistsByEmail checks if a user with such email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Delete removes the user row.
	Delete(ctx context.Context, userID string) error
}

// AuthProfileRepository is the interface that wraps methods for
// profiles table data access needed by the auth service.
type AuthProfileRepository interface {
	// Create inserts a new profile linked to a user.
	Create(ctx context.Context, profile *models.Profile) error
	// GetByUsername retrieves a profile by username.
	//
	// If no profile with such username exists,
	// repositories.ErrProfileNotFound is returned.
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	// ExistsByUsername checks if a profile with such username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// UserTokenRepository is the interface that wraps methods for
// user_tokens table data access.
type UserTokenRepository interface {
	// Create inserts a new refresh token record.
	Create(ctx context.Context, userToken *models.UserToken) error
	// GetByToken retrieves a token record by token string.
	GetByToken(ctx context.Context, token string) (*models.UserToken, error)
	// UpdateToken replaces oldToken with newToken for the given user.
	UpdateToken(ctx context.Context, oldToken, newToken string, userID string) error
	// DeleteByToken deletes a token record by token string.
	DeleteByToken(ctx context.Context, token string) error
}

// authService implements registration, login and session refresh
type authService struct {
	userRepo       UserRepository
	profileRepo    AuthProfileRepository
	userTokenRepo  UserTokenRepository
	tokenGenerator *auth.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	profileRepo AuthProfileRepository,
	userTokenRepo UserTokenRepository,
	tokenGenerator *auth.TokenGenerator,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		userTokenRepo:  userTokenRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// passwordRegex validates password: at least 8 chars, uppercase, lowercase, number, special: !_?^&+-=|
var passwordRegex = []*regexp.Regexp{
	regexp.MustCompile(`.{8,}`),
	regexp.MustCompile(`[a-z]`),
	regexp.MustCompile(`[A-Z]`),
	regexp.MustCompile(`[0-9]`),
	regexp.MustCompile(`[!_?^&+\-=|]`),
}

// Register creates the auth user and its profile and issues a session.
//
// No role assignment row is created: a fresh account is RoleUnassigned
// and acts as a plain user until an owner assigns something else.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (string, string, error) {
	normalizedEmail, normalizedUsername, err := s.checkRegisterCredentials(ctx, req.Email, req.Username, req.Password)
	if err != nil {
		return "", "", err
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return "", "", fmt.Errorf("full name cannot be empty")
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        normalizedEmail,
		PasswordHash: string(passwordHash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", "", err
	}

	profile := &models.Profile{
		UserID:   user.ID,
		Email:    normalizedEmail,
		FullName: fullName,
		Username: normalizedUsername,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		// The users row must not outlive a failed profile insert: the
		// email would stay claimed by an account the dashboard can
		// never load.
		if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
			s.logger.Error("failed to roll back user after profile create failure",
				zap.String("userId", user.ID), zap.Error(delErr))
		}
		return "", "", err
	}

	// Generate and save access and refresh tokens
	return generateAndSaveTokens(ctx, s.tokenGenerator, s.userTokenRepo, user.ID)
}

// Login authenticates a user by email or username.
//
// An identifier without "@" is resolved to an email through the profile
// table first; an unknown username fails before any password check.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, string, error) {
	login := strings.TrimSpace(req.Login)
	if login == "" {
		return "", "", fmt.Errorf("login cannot be empty")
	}

	if req.Password == "" {
		return "", "", fmt.Errorf("password cannot be empty")
	}

	email := login
	if !strings.Contains(login, "@") {
		profile, err := s.profileRepo.GetByUsername(ctx, login)
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return "", "", ErrUsernameNotFound
		}
		if err != nil {
			return "", "", fmt.Errorf("failed to look up username: %w", err)
		}
		email = profile.Email
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	// Generate and save access and refresh tokens
	return generateAndSaveTokens(ctx, s.tokenGenerator, s.userTokenRepo, user.ID)
}

// Refresh rotates a refresh token and issues a new access token.
//
// The stored-token lookup and the signature validation are independent,
// so both run in parallel.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	errorChan := make(chan error, 2)
	userTokenChan := make(chan *models.UserToken, 1) // Buffered to prevent goroutine leak

	// Check if user token exists in database and return it
	go func() {
		userToken, err := s.userTokenRepo.GetByToken(ctx, refreshToken)
		if err != nil {
			errorChan <- fmt.Errorf("failed to get user token by refresh token: %w", err)
			userTokenChan <- nil
			return
		}
		userTokenChan <- userToken
		errorChan <- nil
	}()

	// Validate refresh token
	go func() {
		if err := s.tokenGenerator.ValidateRefreshToken(refreshToken); err != nil {
			errorChan <- fmt.Errorf("invalid or expired refresh token")
			// Delete token if it exists in database
			s.userTokenRepo.DeleteByToken(ctx, refreshToken)
			return
		}
		errorChan <- nil
	}()

	for i := 0; i < 2; i++ {
		if err := <-errorChan; err != nil {
			return "", "", err
		}
	}
	userToken := <-userTokenChan
	if userToken == nil {
		return "", "", fmt.Errorf("failed to refresh token: failed to get user token")
	}

	accessToken, newRefreshToken, err := s.tokenGenerator.GenerateTokens(userToken.UserID)
	if err != nil {
		return "", "", err
	}

	// Replace the old refresh token with the new one
	if err := s.userTokenRepo.UpdateToken(ctx, refreshToken, newRefreshToken, userToken.UserID); err != nil {
		return "", "", err
	}

	return accessToken, newRefreshToken, nil
}

// Logout deletes the stored refresh token. The handler treats a failure
// here as non-fatal: it is logged and the client is signed out anyway.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.userTokenRepo.DeleteByToken(ctx, strings.TrimSpace(refreshToken))
}

// generateAndSaveTokens generates an access/refresh pair and persists
// the refresh token
func generateAndSaveTokens(ctx context.Context, tokenGenerator *auth.TokenGenerator,
	userTokenRepo UserTokenRepository, userID string) (string, string, error) {
	accessToken, refreshToken, err := tokenGenerator.GenerateTokens(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	userToken := &models.UserToken{
		UserID: userID,
		Token:  refreshToken,
	}
	if err := userTokenRepo.Create(ctx, userToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// checkRegisterCredentials validates email, username and password and
// checks uniqueness. The three checks are independent, so they run in
// parallel.
func (s *authService) checkRegisterCredentials(ctx context.Context, email, username, password string) (string, string, error) {
	validationErrors := make(chan error, 3)
	normalizedEmail := strings.TrimSpace(strings.ToLower(email))
	normalizedUsername := strings.TrimSpace(username)

	// Validate password
	go func() {
		for _, regex := range passwordRegex {
			if !regex.MatchString(password) {
				validationErrors <- fmt.Errorf("password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character (!_?^&+-=|)")
				return
			}
		}
		validationErrors <- nil
	}()

	// Validate email and check its uniqueness
	go func() {
		if !emailRegex.MatchString(normalizedEmail) {
			validationErrors <- fmt.Errorf("invalid email format")
			return
		}
		emailExists, err := s.userRepo.ExistsByEmail(ctx, normalizedEmail)
		if err != nil {
			validationErrors <- fmt.Errorf("failed to check email: %w", err)
			return
		}
		if emailExists {
			validationErrors <- fmt.Errorf("email already exists")
			return
		}
		validationErrors <- nil
	}()

	// Validate username and check its uniqueness.
	// Usernames may not contain "@" so they can never shadow an email
	// on login.
	go func() {
		if normalizedUsername == "" {
			validationErrors <- fmt.Errorf("username cannot be empty")
			return
		}
		if strings.Contains(normalizedUsername, "@") {
			validationErrors <- fmt.Errorf("username cannot contain @")
			return
		}
		usernameExists, err := s.profileRepo.ExistsByUsername(ctx, normalizedUsername)
		if err != nil {
			validationErrors <- fmt.Errorf("failed to check username: %w", err)
			return
		}
		if usernameExists {
			validationErrors <- fmt.Errorf("username already exists")
			return
		}
		validationErrors <- nil
	}()

	for i := 0; i < 3; i++ {
		if err := <-validationErrors; err != nil {
			return "", "", fmt.Errorf("failed to check user credentials: %w", err)
		}
	}

	return normalizedEmail, normalizedUsername, nil
}
