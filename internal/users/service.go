package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/shared/apperr"
	"jobboard-backend/internal/shared/auth"
	"jobboard-backend/internal/shared/identity"
	"jobboard-backend/internal/shared/metrics"
	"jobboard-backend/internal/shared/telemetry"
	"jobboard-backend/internal/validate"
)

// Service is the identity store: signup, credential checks and token handling.
type Service struct {
	Repo   Repo
	Tokens *auth.Issuer
	// HashCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	HashCost int
	now      func() time.Time
}

func NewService(repo Repo, tokens *auth.Issuer) *Service {
	return &Service{Repo: repo, Tokens: tokens, now: time.Now}
}

// Signup validates and stores a new account. Every violated field is
// reported, including an already registered email.
func (s *Service) Signup(ctx context.Context, in validate.SignupInput) (identity.Account, error) {
	if err := authz.Authorize(identity.Account{}, authz.ActionSignup, nil); err != nil {
		return identity.Account{}, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	fields := validate.Signup(in)
	if !hasField(fields, "email") {
		_, err := s.Repo.GetByEmail(ctx, in.Email)
		switch {
		case err == nil:
			fields = append(fields, apperr.FieldError{Field: "email", Message: EmailTakenMessage})
		case !errors.Is(err, ErrNotFound):
			return identity.Account{}, fmt.Errorf("lookup email: %w", err)
		}
	}
	if len(fields) > 0 {
		return identity.Account{}, apperr.Validation(fields...)
	}

	role, err := identity.ParseRole(in.Role)
	if err != nil {
		return identity.Account{}, apperr.Validation(apperr.FieldError{Field: "role", Message: validate.RoleMessage})
	}

	acct, err := s.create(ctx, in.Name, in.Email, in.Password, role, false)
	if err != nil {
		return identity.Account{}, err
	}
	metrics.IncSignups()
	telemetry.Info("user.signup", map[string]any{"user_id": acct.ID, "role": acct.Role.String()})
	return acct, nil
}

// CreateStaff creates a staff account, or returns the existing account when
// the email is already registered.
func (s *Service) CreateStaff(ctx context.Context, name, email, password string) (identity.Account, error) {
	email = NormalizeEmail(email)
	existing, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return identity.Account{}, fmt.Errorf("lookup email: %w", err)
	}

	in := validate.SignupInput{Name: strings.TrimSpace(name), Email: email, Password: password, Role: identity.RoleApplicant.String()}
	if fields := validate.Signup(in); len(fields) > 0 {
		return identity.Account{}, apperr.Validation(fields...)
	}
	acct, err := s.create(ctx, in.Name, in.Email, in.Password, identity.RoleApplicant, true)
	if err != nil {
		return identity.Account{}, err
	}
	telemetry.Info("user.staff_created", map[string]any{"user_id": acct.ID})
	return acct, nil
}

func (s *Service) create(ctx context.Context, name, email, password string, role identity.Role, staff bool) (identity.Account, error) {
	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return identity.Account{}, apperr.Validation(apperr.FieldError{Field: "password", Message: validate.PasswordMessage})
	}
	if err != nil {
		return identity.Account{}, fmt.Errorf("hash password: %w", err)
	}

	acct := identity.Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		IsStaff:      staff,
		CreatedAt:    s.clock().UTC(),
	}
	if err := s.Repo.Create(ctx, acct); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return identity.Account{}, apperr.Validation(apperr.FieldError{Field: "email", Message: EmailTakenMessage})
		}
		return identity.Account{}, fmt.Errorf("create user: %w", err)
	}
	return acct, nil
}

// Authenticate checks credentials. Unknown email, wrong password and inactive
// account are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (identity.Account, error) {
	var fields []apperr.FieldError
	if strings.TrimSpace(email) == "" {
		fields = append(fields, apperr.FieldError{Field: "email", Message: validate.RequiredMessage})
	}
	if password == "" {
		fields = append(fields, apperr.FieldError{Field: "password", Message: validate.RequiredMessage})
	}
	if len(fields) > 0 {
		return identity.Account{}, apperr.Validation(fields...)
	}

	acct, err := s.Repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			metrics.IncLoginsFailed()
			return identity.Account{}, apperr.AuthFailed(InvalidCredentialsMessage)
		}
		return identity.Account{}, fmt.Errorf("lookup email: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil || !acct.IsActive {
		metrics.IncLoginsFailed()
		return identity.Account{}, apperr.AuthFailed(InvalidCredentialsMessage)
	}
	return acct, nil
}

// Login authenticates and issues an access+refresh token pair.
func (s *Service) Login(ctx context.Context, email, password string) (auth.Pair, error) {
	if err := authz.Authorize(identity.Account{}, authz.ActionLogin, nil); err != nil {
		return auth.Pair{}, err
	}
	acct, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return auth.Pair{}, err
	}
	pair, err := s.Tokens.Issue(acct.ID)
	if err != nil {
		return auth.Pair{}, fmt.Errorf("issue tokens: %w", err)
	}
	telemetry.Info("user.login", map[string]any{"user_id": acct.ID})
	return pair, nil
}

// Refresh exchanges a refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refresh string) (string, error) {
	if strings.TrimSpace(refresh) == "" {
		return "", apperr.Validation(apperr.FieldError{Field: "refresh", Message: validate.RequiredMessage})
	}
	claims, err := s.Tokens.Verify(refresh, auth.TokenRefresh)
	if err != nil {
		return "", apperr.AuthFailed(InvalidRefreshMessage)
	}
	if _, err := s.activeAccount(ctx, claims.UserID); err != nil {
		return "", err
	}
	access, err := s.Tokens.IssueAccess(claims.UserID)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return access, nil
}

// ResolveToken maps an access token to its active account.
func (s *Service) ResolveToken(ctx context.Context, token string) (identity.Account, error) {
	claims, err := s.Tokens.Verify(token, auth.TokenAccess)
	if err != nil {
		return identity.Account{}, apperr.AuthFailed(InvalidTokenMessage)
	}
	return s.activeAccount(ctx, claims.UserID)
}

func (s *Service) GetByID(ctx context.Context, userID string) (identity.Account, error) {
	acct, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return identity.Account{}, apperr.NotFound(UserNotFoundMessage)
		}
		return identity.Account{}, fmt.Errorf("get user: %w", err)
	}
	return acct, nil
}

func (s *Service) activeAccount(ctx context.Context, userID string) (identity.Account, error) {
	acct, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return identity.Account{}, apperr.AuthFailed(UserNotFoundMessage)
		}
		return identity.Account{}, fmt.Errorf("get user: %w", err)
	}
	if !acct.IsActive {
		return identity.Account{}, apperr.AuthFailed(UserInactiveMessage)
	}
	return acct, nil
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// NormalizeEmail trims the address and lowercases its domain part.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

func hasField(fields []apperr.FieldError, name string) bool {
	for _, f := range fields {
		if f.Field == name {
			return true
		}
	}
	return false
}
