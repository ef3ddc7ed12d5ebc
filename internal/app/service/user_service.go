package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"authd/internal/common"
	"authd/internal/common/security"
	"authd/internal/domain/model"
	"authd/internal/domain/repository"
	"authd/internal/platform/logging"
)

type UserService struct {
	db     *sql.DB
	hasher *security.Hasher
	log    logging.Logger
}

func NewUserService(db *sql.DB, hasher *security.Hasher, log logging.Logger) *UserService {
	return &UserService{db: db, hasher: hasher, log: log}
}

type CreateUserRequest struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Fullname string `json:"fullname"`
}

// Create makes a new account after validating the payload against the
// role-assignment policy. requester is the authenticated caller, or nil for
// anonymous signups.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest, requester *model.User) (*model.User, error) {
	if req.ID != 0 {
		return nil, common.BadRequestf("user ID cannot be set")
	}
	if req.Username == "" || req.Password == "" || req.Fullname == "" {
		return nil, common.Validationf("username, password and fullname must not be empty")
	}
	if req.Role == "" {
		req.Role = model.RoleUser
	}
	if !model.ValidRole(req.Role) {
		return nil, common.Validationf("invalid role %q", req.Role)
	}
	if !model.CanCreateWithRole(requester, req.Role) {
		return nil, common.BadRequestf("user cannot create user with role %q", req.Role)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		Username: req.Username,
		Password: hashed,
		Role:     req.Role,
		Fullname: req.Fullname,
		Created:  now,
		Updated:  now,
	}

	if err := repository.NewPgUserRepository(s.db).Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.BadRequestf("username already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info(ctx, "user created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// List returns every account's public profile, ordered by ID.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := repository.NewPgUserRepository(s.db).FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
