package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"calcapi/internal/models"
	"calcapi/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL = 30 * time.Minute

	minUsernameLen = 3
	maxUsernameLen = 50
	maxNameLen     = 50
	minPasswordLen = 6
)

// TokenConfig is the immutable signing configuration loaded once at
// startup. Rotating the key invalidates all outstanding tokens.
type TokenConfig struct {
	SigningKey string
	TTL        time.Duration
}

// AuthService handles registration, credential checks and JWT lifecycle.
type AuthService struct {
	users  repository.Users
	tokens TokenConfig
	now    func() time.Time
}

func NewAuthService(users repository.Users, tokens TokenConfig) *AuthService {
	if tokens.TTL <= 0 {
		tokens.TTL = defaultTokenTTL
	}
	return &AuthService{users: users, tokens: tokens, now: time.Now}
}

// RegisterInput is the registration payload after transport binding.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

// Claims defines JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// dummyHash keeps login timing for an unknown identity close to a
// wrong-password attempt.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing equalizer"), bcrypt.DefaultCost)

// SignUp validates and normalizes the registration payload, hashes the
// password and creates the user. Duplicate username/email → ErrConflict.
func (s *AuthService) SignUp(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Username = strings.ToLower(strings.TrimSpace(input.Username))
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	// Pre-check both identifiers; the unique indexes are the backstop
	// for races.
	for _, identifier := range []string{input.Username, input.Email} {
		existing, err := s.users.GetByIdentifier(ctx, identifier)
		if err != nil {
			return nil, storageFailed(err)
		}
		if existing != nil {
			return nil, fmt.Errorf("username or email %w", ErrConflict)
		}
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	u := models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		IsActive:     true,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, storageFailed(err)
	}
	u.ID = id
	return &u, nil
}

// GenerateToken authenticates identifier (username or email) + password
// and issues a signed token. Every failure mode returns the same
// ErrUnauthorized so callers cannot tell which part was wrong.
func (s *AuthService) GenerateToken(ctx context.Context, identifier, password string) (string, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))

	u, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		return "", storageFailed(err)
	}
	if u == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if !u.IsActive {
		return "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	if err := s.users.TouchLastLogin(ctx, u.ID, s.now()); err != nil {
		return "", storageFailed(err)
	}

	return s.issueToken(u.ID)
}

// ParseToken validates signature and expiry and returns the embedded
// user id.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.tokens.SigningKey), nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	return claims.UserID, nil
}

// CurrentUser resolves a validated token's user id to a live account.
// A vanished or deactivated user is rejected like any other bad token.
func (s *AuthService) CurrentUser(ctx context.Context, userID int) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storageFailed(err)
	}
	if u == nil || !u.IsActive {
		return nil, fmt.Errorf("%w: unknown identity", ErrUnauthorized)
	}
	return u, nil
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID int) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokens.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(s.tokens.SigningKey))
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// validateRegistration applies the shared account validation rules to an
// already-normalized payload.
func validateRegistration(in RegisterInput) error {
	if in.FirstName == "" || len(in.FirstName) > maxNameLen {
		return invalidf("first_name must be 1-%d characters", maxNameLen)
	}
	if in.LastName == "" || len(in.LastName) > maxNameLen {
		return invalidf("last_name must be 1-%d characters", maxNameLen)
	}
	if len(in.Username) < minUsernameLen || len(in.Username) > maxUsernameLen {
		return invalidf("username must be %d-%d characters", minUsernameLen, maxUsernameLen)
	}
	if strings.ContainsAny(in.Username, " \t") {
		return invalidf("username must not contain whitespace")
	}
	if !strings.Contains(in.Email, "@") {
		return invalidf("email is not valid")
	}
	return validatePassword(in.Password)
}

// validatePassword enforces the credential policy: minimum length,
// mixed case, at least one digit.
func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return invalidf("password must be at least %d characters", minPasswordLen)
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return invalidf("password must contain upper case, lower case and a digit")
	}
	return nil
}
