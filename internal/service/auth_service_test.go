package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"calcapi/internal/models"
)

// mockUserRepo is a lightweight in-test mock for repository.Users.
type mockUserRepo struct {
	CreateFn          func(u models.User) (int, error)
	GetByIdentifierFn func(identifier string) (*models.User, error)
	GetByIDFn         func(id int) (*models.User, error)
	TouchLastLoginFn  func(id int, when time.Time) error

	createCalls   []models.User
	getIdentCalls []string
	touchCalls    []int
}

func (m *mockUserRepo) Create(_ context.Context, u models.User) (int, error) {
	m.createCalls = append(m.createCalls, u)
	if m.CreateFn == nil {
		return 1, nil
	}
	return m.CreateFn(u)
}

func (m *mockUserRepo) GetByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	m.getIdentCalls = append(m.getIdentCalls, identifier)
	if m.GetByIdentifierFn == nil {
		return nil, nil
	}
	return m.GetByIdentifierFn(identifier)
}

func (m *mockUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	if m.GetByIDFn == nil {
		return nil, nil
	}
	return m.GetByIDFn(id)
}

func (m *mockUserRepo) TouchLastLogin(_ context.Context, id int, when time.Time) error {
	m.touchCalls = append(m.touchCalls, id)
	if m.TouchLastLoginFn == nil {
		return nil
	}
	return m.TouchLastLoginFn(id, when)
}

func testTokens() TokenConfig {
	return TokenConfig{SigningKey: "test-signing-key", TTL: 30 * time.Minute}
}

func validRegistration() RegisterInput {
	return RegisterInput{
		FirstName: "Alice",
		LastName:  "Smith",
		Username:  "Alice",
		Email:     "Alice@Example.com",
		Password:  "Secret1",
	}
}

// --- SignUp tests ---

func TestAuthService_SignUp_HashesAndNormalizes(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(u models.User) (int, error) { return 42, nil },
	}
	svc := NewAuthService(mock, testTokens())

	u, err := svc.SignUp(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if u.ID != 42 {
		t.Fatalf("expected id 42, got %d", u.ID)
	}
	if u.Username != "alice" || u.Email != "alice@example.com" {
		t.Errorf("expected lowercased identifiers, got %q / %q", u.Username, u.Email)
	}
	if u.PasswordHash == "" || u.PasswordHash == "Secret1" {
		t.Errorf("expected hashed password, got %q", u.PasswordHash)
	}
	if err := verifyPassword(u.PasswordHash, "Secret1"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}
	if !u.IsActive || u.IsVerified {
		t.Errorf("expected active, unverified account: %+v", u)
	}
	// Both identifiers were checked for duplicates before the insert.
	if len(mock.getIdentCalls) != 2 {
		t.Fatalf("expected 2 duplicate checks, got %d", len(mock.getIdentCalls))
	}
}

func TestAuthService_SignUp_RejectsWeakPasswords(t *testing.T) {
	cases := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1"},
		{"no upper case", "secret1"},
		{"no lower case", "SECRET1"},
		{"no digit", "Secrets"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockUserRepo{}
			svc := NewAuthService(mock, testTokens())

			in := validRegistration()
			in.Password = tc.password
			_, err := svc.SignUp(context.Background(), in)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got: %v", err)
			}
			if len(mock.createCalls) != 0 {
				t.Fatalf("expected no Create calls, got %d", len(mock.createCalls))
			}
		})
	}
}

func TestAuthService_SignUp_DuplicateIsConflict(t *testing.T) {
	existing := &models.User{ID: 7, Username: "alice"}
	mock := &mockUserRepo{
		GetByIdentifierFn: func(identifier string) (*models.User, error) { return existing, nil },
	}
	svc := NewAuthService(mock, testTokens())

	_, err := svc.SignUp(context.Background(), validRegistration())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got: %v", err)
	}
	if len(mock.createCalls) != 0 {
		t.Fatalf("expected no Create calls, got %d", len(mock.createCalls))
	}
}

func TestAuthService_SignUp_StorageError(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(u models.User) (int, error) { return 0, errors.New("db down") },
	}
	svc := NewAuthService(mock, testTokens())

	_, err := svc.SignUp(context.Background(), validRegistration())
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got: %v", err)
	}
}

// --- GenerateToken tests ---

func activeUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := hashPassword(password)
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	return &models.User{ID: 7, Username: "diana", Email: "diana@example.com", PasswordHash: hash, IsActive: true}
}

func TestAuthService_GenerateToken_Success(t *testing.T) {
	user := activeUser(t, "Letmein1")
	mock := &mockUserRepo{
		GetByIdentifierFn: func(identifier string) (*models.User, error) {
			if identifier != "diana" {
				t.Fatalf("expected normalized identifier 'diana', got %q", identifier)
			}
			return user, nil
		},
	}
	svc := NewAuthService(mock, testTokens())

	token, err := svc.GenerateToken(context.Background(), "  DIANA ", "Letmein1")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if uid != 7 {
		t.Fatalf("expected user id 7 from token, got %d", uid)
	}

	if len(mock.touchCalls) != 1 || mock.touchCalls[0] != 7 {
		t.Fatalf("expected last_login stamp for user 7, got %v", mock.touchCalls)
	}
}

// All login failure modes must be byte-identical so a caller cannot probe
// which part was wrong.
func TestAuthService_GenerateToken_UniformRejection(t *testing.T) {
	user := activeUser(t, "Correct1")
	inactive := activeUser(t, "Correct1")
	inactive.IsActive = false

	cases := []struct {
		name     string
		stored   *models.User
		password string
	}{
		{"unknown identity", nil, "Correct1"},
		{"wrong password", user, "Wrong111"},
		{"inactive account", inactive, "Correct1"},
	}

	var messages []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockUserRepo{
				GetByIdentifierFn: func(identifier string) (*models.User, error) { return tc.stored, nil },
			}
			svc := NewAuthService(mock, testTokens())

			_, err := svc.GenerateToken(context.Background(), "diana", tc.password)
			if !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got: %v", err)
			}
			messages = append(messages, err.Error())
		})
	}
	for i := 1; i < len(messages); i++ {
		if messages[i] != messages[0] {
			t.Fatalf("rejection messages diverge: %q vs %q", messages[0], messages[i])
		}
	}
}

func TestAuthService_GenerateToken_StorageError(t *testing.T) {
	mock := &mockUserRepo{
		GetByIdentifierFn: func(identifier string) (*models.User, error) { return nil, errors.New("query failed") },
	}
	svc := NewAuthService(mock, testTokens())

	_, err := svc.GenerateToken(context.Background(), "john", "Passw0rd")
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got: %v", err)
	}
}

// --- ParseToken tests ---

func TestAuthService_ParseToken_Expiry(t *testing.T) {
	user := activeUser(t, "Letmein1")
	mock := &mockUserRepo{
		GetByIdentifierFn: func(identifier string) (*models.User, error) { return user, nil },
	}
	svc := NewAuthService(mock, testTokens())

	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.GenerateToken(context.Background(), "diana", "Letmein1")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	// Still valid just before the window closes.
	svc.now = func() time.Time { return issuedAt.Add(29 * time.Minute) }
	if _, err := svc.ParseToken(token); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	// Expired one second past the window.
	svc.now = func() time.Time { return issuedAt.Add(30*time.Minute + time.Second) }
	if _, err := svc.ParseToken(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got: %v", err)
	}
}

func TestAuthService_ParseToken_WrongKey(t *testing.T) {
	mock := &mockUserRepo{
		GetByIdentifierFn: func(identifier string) (*models.User, error) { return activeUser(t, "Letmein1"), nil },
	}
	issuer := NewAuthService(mock, TokenConfig{SigningKey: "key-one", TTL: time.Hour})
	verifier := NewAuthService(mock, TokenConfig{SigningKey: "key-two", TTL: time.Hour})

	token, err := issuer.GenerateToken(context.Background(), "diana", "Letmein1")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if _, err := verifier.ParseToken(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong key, got: %v", err)
	}
}

func TestAuthService_ParseToken_Malformed(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testTokens())

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.ParseToken(token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized for %q, got: %v", token, err)
		}
	}
}

// --- CurrentUser tests ---

func TestAuthService_CurrentUser(t *testing.T) {
	alive := activeUser(t, "Letmein1")
	gone := activeUser(t, "Letmein1")
	gone.IsActive = false

	cases := []struct {
		name    string
		stored  *models.User
		wantErr bool
	}{
		{"live account", alive, false},
		{"vanished account", nil, true},
		{"deactivated account", gone, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockUserRepo{
				GetByIDFn: func(id int) (*models.User, error) { return tc.stored, nil },
			}
			svc := NewAuthService(mock, testTokens())

			u, err := svc.CurrentUser(context.Background(), 7)
			if tc.wantErr {
				if !errors.Is(err, ErrUnauthorized) {
					t.Fatalf("expected ErrUnauthorized, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u.ID != 7 {
				t.Fatalf("expected user id 7, got %d", u.ID)
			}
		})
	}
}
