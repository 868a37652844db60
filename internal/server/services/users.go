// Package services contains the business logic of classnotes: the
// authorization resolver and the per-entity managers the transport layer
// calls into. Services take an already-resolved actor identity on every
// call; there is no ambient session state.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/azarubkin/classnotes/internal/common"
	"github.com/azarubkin/classnotes/internal/server/auth"
	"github.com/azarubkin/classnotes/internal/server/config"
	"github.com/azarubkin/classnotes/internal/server/models"
	"github.com/azarubkin/classnotes/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// UserService handles registration, login, and user record maintenance.
type UserService struct {
	db                  *sql.DB
	repomanager         repomanager.RepositoryManager
	authz               *Authz
	jwtSecret           []byte
	accessTokenValidity time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, authz *Authz, cfg *config.Config) *UserService {
	return &UserService{
		db:                  db,
		repomanager:         m,
		authz:               authz,
		jwtSecret:           []byte(cfg.JWTSecret),
		accessTokenValidity: cfg.AccessTokenValidity,
	}
}

// UpdateUserParams carries the optional fields of a user edit; nil means
// leave unchanged.
type UpdateUserParams struct {
	Username *string
	Password *string
	Name     *string
}

// Register creates a new account with the global student level. Usernames
// must be alphanumeric and unique; a duplicate is ErrorConflict.
func (s *UserService) Register(ctx context.Context, username, password, name string) (*UserView, error) {
	if username == "" || !usernamePattern.MatchString(username) {
		return nil, fmt.Errorf("%w: username must be alphanumeric", common.ErrorValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Permission:   models.PermissionStudent,
	}

	created, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return userView(created), nil
}

// Login verifies the credentials and mints an access token. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *UserView, error) {
	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthenticated
		}
		return "", nil, common.ErrorInternal
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return "", nil, common.ErrorUnauthenticated
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidity)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	return token, userView(user), nil
}

// Get returns the projection of a user record. Any authenticated caller may
// look up any user; the projection never exposes username or credentials.
func (s *UserService) Get(ctx context.Context, userID string) (*UserView, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return userView(user), nil
}

// Update edits a user record. Allowed for the user themselves or a global
// admin; anyone else is ErrorForbidden.
func (s *UserService) Update(ctx context.Context, actorID, targetID string, params UpdateUserParams) error {
	if err := s.requireSelfOrAdmin(ctx, actorID, targetID); err != nil {
		return err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if params.Username != nil {
		if !usernamePattern.MatchString(*params.Username) {
			return fmt.Errorf("%w: username must be alphanumeric", common.ErrorValidation)
		}
		user.Username = *params.Username
	}
	if params.Password != nil {
		hash, err := auth.HashPassword(*params.Password)
		if err != nil {
			return common.ErrorInternal
		}
		user.PasswordHash = hash
	}
	if params.Name != nil {
		if *params.Name == "" {
			return fmt.Errorf("%w: name must not be empty", common.ErrorValidation)
		}
		user.Name = *params.Name
	}

	return repo.Update(ctx, user)
}

// Delete removes a user record, allowed for the user themselves or a global
// admin. Membership rows and annotation data cascade in the store.
func (s *UserService) Delete(ctx context.Context, actorID, targetID string) error {
	if err := s.requireSelfOrAdmin(ctx, actorID, targetID); err != nil {
		return err
	}
	return s.repomanager.Users(s.db).Delete(ctx, targetID)
}

func (s *UserService) requireSelfOrAdmin(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return nil
	}
	level, err := s.authz.EffectivePermission(ctx, actorID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthenticated
		}
		return err
	}
	if level < models.PermissionAdmin {
		return common.ErrorForbidden
	}
	return nil
}
