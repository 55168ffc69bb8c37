package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/codewithlokesh/intrvu-backend/internal/config"
	"github.com/codewithlokesh/intrvu-backend/internal/model"
	"github.com/codewithlokesh/intrvu-backend/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserStore interface {
	Create(user *model.User) error
	Update(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id string) (*model.User, error)
}

// ExternalClaim is the normalized shape of an identity claim from any sign-in
// provider (google, github, credentials).
type ExternalClaim struct {
	Provider string
	Email    string
	Name     string
	Image    string
}

type AuthUsecase struct {
	users  UserStore
	mailer service.Mailer
	cfg    *config.AuthConfig
}

func NewAuthUsecase(users UserStore, mailer service.Mailer, cfg *config.AuthConfig) *AuthUsecase {
	return &AuthUsecase{users: users, mailer: mailer, cfg: cfg}
}

// Signup creates an unverified account and emails a verification code.
// A mail failure does not roll the account back.
func (uc *AuthUsecase) Signup(ctx context.Context, fullName, email, password string) (*model.User, error) {
	if fullName == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: full name, email and password are required", ErrValidation)
	}
	if existing, err := uc.users.FindByEmail(email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: user already exists, please login", ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FullName:          fullName,
		Email:             email,
		Password:          string(hashed),
		VerifyCode:        generateVerifyCode(),
		Provider:          "credentials",
		ExperienceLevel:   "junior",
		TargetCompanySize: "small",
		Industry:          pq.StringArray{},
		TargetRoles:       pq.StringArray{},
		FocusArea:         pq.StringArray{},
	}
	if err := uc.users.Create(user); err != nil {
		return nil, fmt.Errorf("%w: create user: %v", ErrSaveFailed, err)
	}

	if err := uc.mailer.SendVerificationEmail(ctx, email, user.VerifyCode); err != nil {
		log.Printf("verification email to %s failed: %v", email, err)
	}
	return user, nil
}

// Verify marks the account verified when the code matches. Verifying an
// already-verified account is a no-op.
func (uc *AuthUsecase) Verify(ctx context.Context, email, code string) error {
	user, err := uc.users.FindByEmail(email)
	if err != nil {
		return fmt.Errorf("%w: user", ErrNotFound)
	}
	if user.IsVerified {
		return nil
	}
	if user.VerifyCode != code {
		return fmt.Errorf("%w: invalid verification code", ErrValidation)
	}
	user.IsVerified = true
	user.VerifyCode = ""
	if err := uc.users.Update(user); err != nil {
		return fmt.Errorf("%w: update user: %v", ErrSaveFailed, err)
	}
	return nil
}

// Login checks credentials for a verified account and issues a signed JWT.
func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := uc.users.FindByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("%w: no user found with this email", ErrUnauthorized)
	}
	if !user.IsVerified {
		return "", nil, fmt.Errorf("%w: please verify your email before logging in", ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, fmt.Errorf("%w: invalid password", ErrUnauthorized)
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ResolveExternalIdentity finds or provisions the local user for an external
// identity claim. Provider-specific claim shapes collapse into one normalized
// record; externally verified emails skip the verification step.
func (uc *AuthUsecase) ResolveExternalIdentity(ctx context.Context, claim ExternalClaim) (*model.User, error) {
	if claim.Email == "" {
		return nil, fmt.Errorf("%w: identity claim has no email", ErrUnauthorized)
	}

	user, err := uc.users.FindByEmail(claim.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name := claim.Name
	if name == "" {
		name = "Unnamed User"
	}
	user = &model.User{
		FullName:          name,
		Email:             claim.Email,
		Password:          randomPassword(),
		VerifyCode:        generateVerifyCode(),
		IsVerified:        true,
		Provider:          claim.Provider,
		Image:             claim.Image,
		ExperienceLevel:   "junior",
		TargetCompanySize: "small",
		Industry:          pq.StringArray{},
		TargetRoles:       pq.StringArray{},
		FocusArea:         pq.StringArray{},
	}
	if err := uc.users.Create(user); err != nil {
		return nil, fmt.Errorf("%w: create user: %v", ErrSaveFailed, err)
	}
	return user, nil
}

// IssueTokenFor signs a JWT for an already-resolved user (OAuth flows).
func (uc *AuthUsecase) IssueTokenFor(user *model.User) (string, error) {
	return uc.issueToken(user)
}

func (uc *AuthUsecase) issueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"name":  user.FullName,
		"iat":   now.Unix(),
		"exp":   now.Add(uc.cfg.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.cfg.JWTSecret))
}

func generateVerifyCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

func randomPassword() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
