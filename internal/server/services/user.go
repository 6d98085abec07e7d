// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and issuing bearer tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/server/auth"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/repomanager"
)

// Client-facing validation messages.
const (
	MsgRegisterFieldsRequired = "All Fields Are Required."
	MsgLoginFieldsRequired    = "Email And Password are Required."
)

// Session is returned by Register and Login.
type Session struct {
	Token string
	User  *models.User
}

// UserService provides authentication-related operations:
// - Register: create users and mint a token
// - Login: verify credentials and mint a token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
}

// NewUserService constructs a UserService using repositories and a token service.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenService) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
	}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// Register creates an account and returns a session for it. A taken email
// yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	if blank(name) || blank(email) || password == "" {
		return nil, common.NewValidationError(MsgRegisterFieldsRequired)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.newSession(u)
}

// Login verifies credentials. Unknown email and wrong password both yield
// common.ErrorInvalidCredentials after a full bcrypt comparison.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	if blank(email) || password == "" {
		return nil, common.NewValidationError(MsgLoginFieldsRequired)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.BurnPasswordCheck(password)
			return nil, common.ErrorInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorInvalidCredentials
	}

	return s.newSession(user)
}

func (s *UserService) newSession(u *models.User) (*Session, error) {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	return &Session{Token: token, User: u}, nil
}
