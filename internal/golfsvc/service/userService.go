package service

import (
	"context"
	"errors"

	"github.com/avvvet/minigolf-services/internal/golfsvc/models"
	"github.com/avvvet/minigolf-services/internal/golfsvc/store"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userStore UserStore
}

func NewUserService(userStore UserStore) *UserService {
	return &UserService{userStore: userStore}
}

func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if len(username) < 3 {
		return nil, validationf("usernames must be at least 3 characters long")
	}
	if len(password) < 6 {
		return nil, validationf("passwords must be at least 6 characters long")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.userStore.CreateUser(ctx, username, string(hash))
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return nil, &ConflictError{Msg: "user already exists"}
		}
		return nil, err
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userStore.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, validationf("invalid login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, validationf("invalid login")
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userStore.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &NotFoundError{Resource: "user"}
	}
	return user, nil
}
