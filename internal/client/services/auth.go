// Package services contains application services for the expense CLI.
// This file defines the authentication service: register, login, resuming a
// saved session and logout.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/expensetracker/internal/client/client"
	"github.com/dmitrijs2005/expensetracker/internal/client/models"
	"github.com/dmitrijs2005/expensetracker/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/expensetracker/internal/dbx"
)

// Keys of the persisted session in the metadata table.
const (
	keyToken = "token"
	keyUser  = "user"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register and Login: authenticate against the server and persist the session.
//   - Resume: restore a saved session if the server still accepts its token.
//   - Logout: drop the token and wipe the saved session.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Resume(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client
// and a local SQL database holding the session.
type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (a *authService) save(ctx context.Context, s *models.Session) error {
	user, err := json.Marshal(s.User)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getMetadataRepo(tx)
		if err := repo.Set(ctx, keyToken, []byte(s.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyUser, user)
	})
}

func (a *authService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	s, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	if err := a.save(ctx, s); err != nil {
		return nil, fmt.Errorf("error saving session: %w", err)
	}
	return &s.User, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	s, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := a.save(ctx, s); err != nil {
		return nil, fmt.Errorf("error saving session: %w", err)
	}
	return &s.User, nil
}

// Resume returns (nil, nil) when nothing is saved. A token the server
// rejects is wiped and reported as client.ErrUnauthorized.
func (a *authService) Resume(ctx context.Context) (*models.User, error) {
	repo := a.getMetadataRepo(a.db)

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 {
		return nil, nil
	}

	raw, err := repo.Get(ctx, keyUser)
	if err != nil {
		return nil, err
	}
	var user models.User
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, fmt.Errorf("corrupt saved session: %w", err)
		}
	}

	a.client.SetToken(string(token))

	id, err := a.client.Check(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			_ = a.clear(ctx)
		} else {
			a.client.SetToken("")
		}
		return nil, err
	}
	user.ID = id

	return &user, nil
}

func (a *authService) clear(ctx context.Context) error {
	a.client.SetToken("")
	return a.getMetadataRepo(a.db).Clear(ctx)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.clear(ctx)
}
