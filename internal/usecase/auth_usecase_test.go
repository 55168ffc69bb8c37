package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codewithlokesh/intrvu-backend/internal/config"
	"github.com/codewithlokesh/intrvu-backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUsers struct {
	byEmail map[string]*model.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*model.User{}}
}

func (f *fakeUsers) Create(user *model.User) error {
	user.ID = uuid.New()
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUsers) Update(user *model.User) error {
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUsers) FindByEmail(email string) (*model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) FindByID(id string) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) SendVerificationEmail(ctx context.Context, to, code string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
}

func TestSignup(t *testing.T) {
	users := newFakeUsers()
	mailer := &fakeMailer{}
	uc := NewAuthUsecase(users, mailer, testAuthConfig())

	user, err := uc.Signup(context.Background(), "Lokesh", "lokesh@example.com", "hunter22")

	require.NoError(t, err)
	assert.False(t, user.IsVerified)
	assert.Len(t, user.VerifyCode, 6)
	assert.Equal(t, []string{"lokesh@example.com"}, mailer.sent)
	// password never stored in the clear
	assert.NotEqual(t, "hunter22", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")))
}

func TestSignupDuplicateEmail(t *testing.T) {
	users := newFakeUsers()
	uc := NewAuthUsecase(users, &fakeMailer{}, testAuthConfig())

	_, err := uc.Signup(context.Background(), "Lokesh", "lokesh@example.com", "hunter22")
	require.NoError(t, err)

	_, err = uc.Signup(context.Background(), "Someone Else", "lokesh@example.com", "other")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSignupMailFailureIsNotFatal(t *testing.T) {
	users := newFakeUsers()
	mailer := &fakeMailer{err: errors.New("resend is down")}
	uc := NewAuthUsecase(users, mailer, testAuthConfig())

	user, err := uc.Signup(context.Background(), "Lokesh", "lokesh@example.com", "hunter22")

	require.NoError(t, err)
	assert.NotNil(t, user)
	_, err = users.FindByEmail("lokesh@example.com")
	assert.NoError(t, err, "the account must exist even when the email failed")
}

func TestVerify(t *testing.T) {
	users := newFakeUsers()
	uc := NewAuthUsecase(users, &fakeMailer{}, testAuthConfig())

	user, err := uc.Signup(context.Background(), "Lokesh", "lokesh@example.com", "hunter22")
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Verify(context.Background(), "lokesh@example.com", "000001"), ErrValidation)

	require.NoError(t, uc.Verify(context.Background(), "lokesh@example.com", user.VerifyCode))
	stored, _ := users.FindByEmail("lokesh@example.com")
	assert.True(t, stored.IsVerified)
	assert.Empty(t, stored.VerifyCode)

	// verifying again is a no-op
	assert.NoError(t, uc.Verify(context.Background(), "lokesh@example.com", "whatever"))
}

func TestVerifyUnknownUser(t *testing.T) {
	uc := NewAuthUsecase(newFakeUsers(), &fakeMailer{}, testAuthConfig())
	assert.ErrorIs(t, uc.Verify(context.Background(), "ghost@example.com", "123456"), ErrNotFound)
}

func TestLogin(t *testing.T) {
	users := newFakeUsers()
	uc := NewAuthUsecase(users, &fakeMailer{}, testAuthConfig())

	user, err := uc.Signup(context.Background(), "Lokesh", "lokesh@example.com", "hunter22")
	require.NoError(t, err)

	// unverified accounts cannot log in
	_, _, err = uc.Login(context.Background(), "lokesh@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, uc.Verify(context.Background(), "lokesh@example.com", user.VerifyCode))

	_, _, err = uc.Login(context.Background(), "lokesh@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)

	token, logged, err := uc.Login(context.Background(), "lokesh@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), sub)
}

func TestResolveExternalIdentity(t *testing.T) {
	users := newFakeUsers()
	uc := NewAuthUsecase(users, &fakeMailer{}, testAuthConfig())

	claim := ExternalClaim{
		Provider: "google",
		Email:    "lokesh@example.com",
		Name:     "Lokesh",
		Image:    "https://example.com/avatar.png",
	}

	created, err := uc.ResolveExternalIdentity(context.Background(), claim)
	require.NoError(t, err)
	assert.True(t, created.IsVerified, "externally verified emails skip verification")
	assert.Equal(t, "google", created.Provider)
	assert.NotEmpty(t, created.Password)

	// the same claim resolves to the same user
	again, err := uc.ResolveExternalIdentity(context.Background(), claim)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	// a claim with no email fails closed
	_, err = uc.ResolveExternalIdentity(context.Background(), ExternalClaim{Provider: "github"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestResolveExternalIdentityDefaultsName(t *testing.T) {
	uc := NewAuthUsecase(newFakeUsers(), &fakeMailer{}, testAuthConfig())
	user, err := uc.ResolveExternalIdentity(context.Background(), ExternalClaim{
		Provider: "github",
		Email:    "anon@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Unnamed User", user.FullName)
}
