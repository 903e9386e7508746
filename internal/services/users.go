package services

import (
	"context"

	"github.com/campusvote/pollz/internal/logger"
	"github.com/campusvote/pollz/internal/models"
	"github.com/campusvote/pollz/internal/repository"
)

// Identity is a verified assertion about who the caller is. Producing one
// (validating a Google token) happens upstream; this service only consumes
// the result.
type Identity struct {
	GoogleID string
	Email    string
	Name     string
	Picture  string
	Verified bool
}

// UserService manages user accounts and profiles
type UserService struct {
	log  logger.Logger
	repo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(log logger.Logger, repo repository.UserRepository) *UserService {
	return &UserService{log: log, repo: repo}
}

// GetOrCreate returns the user for a verified identity, creating the account
// on first login
func (s *UserService) GetOrCreate(ctx context.Context, identity Identity) (*models.User, error) {
	if !identity.Verified {
		return nil, ErrUnverifiedIdentity
	}

	user, err := s.repo.GetUserByEmail(ctx, identity.Email)
	if err == nil {
		return user, nil
	}
	if err != repository.ErrNotFound {
		return nil, err
	}

	newUser := &models.User{
		GoogleID: identity.GoogleID,
		Email:    identity.Email,
		Name:     identity.Name,
		Picture:  identity.Picture,
		Verified: true,
	}
	id, err := s.repo.CreateUser(ctx, newUser)
	if err != nil {
		return nil, err
	}
	newUser.ID = id
	s.log.Info("User registered", "user_id", id)
	return newUser, nil
}

// Profile is a user plus their per-position voted flags. The flags are the
// identity-linked convenience cache, readable only by the user themselves.
type Profile struct {
	User       *models.User `json:"user"`
	VotedFlags map[int]bool `json:"voted_positions"`
}

// GetProfile returns the user's profile with voted flags
func (s *UserService) GetProfile(ctx context.Context, userID int) (*Profile, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	flags, err := s.repo.GetVoteFlags(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, VotedFlags: flags}, nil
}
