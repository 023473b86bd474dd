package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/pagination"
	"github.com/atinyakov/shortlink-registry/internal/storage"
)

const maxNameLength = 255

// UserService serves the account endpoints and the admin user listing.
type UserService struct {
	store  UserStore
	logger *zap.Logger
}

func NewUserService(store UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

func (s *UserService) Get(ctx context.Context, id string) (*storage.User, error) {
	u, err := s.store.FindUser(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *UserService) Rename(ctx context.Context, id, name string) (*storage.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return nil, invalid("name", fmt.Sprintf("must be 1 to %d characters long", maxNameLength))
	}

	u, err := s.store.UpdateUserName(ctx, id, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

// Delete removes the account with its subdomain, links and clicks.
func (s *UserService) Delete(ctx context.Context, id string) error {
	err := s.store.DeleteUser(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}

// Users pages through all users, newest first. The search matches name or
// email case-insensitively.
func (s *UserService) Users(ctx context.Context, req pagination.Request) (*pagination.Page[storage.User], error) {
	req.Search = strings.TrimSpace(req.Search)
	return pagination.Query(ctx, req, s.store.CountUsers, s.store.ListUsers)
}
