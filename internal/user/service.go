package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rentwheels/car-rental-backend/internal/auth"
	"github.com/rentwheels/car-rental-backend/internal/car"
)

// Service defines business logic related to users, their role and their
// favorites list.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)

	// PromoteToOwner switches a customer account to the owner role so it
	// can list cars. Promoting an owner again is a no-op.
	PromoteToOwner(ctx context.Context, userID string) error

	AddFavorite(ctx context.Context, userID, carID string) error
	RemoveFavorite(ctx context.Context, userID, carID string) error
	ListFavorites(ctx context.Context, userID string) ([]*car.Car, error)
}

type service struct {
	repo       Repository
	hasher     auth.PasswordHasher
	carService car.Service

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher, carService car.Service) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		carService:        carService,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, name, email, password string) (*User, error) {
	cleanName := strings.TrimSpace(name)
	cleanEmail := normalizeEmail(email)
	if cleanName == "" || cleanEmail == "" || password == "" {
		return nil, ErrMissingFields
	}

	if len(password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	// Check if email is already used.
	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	// If the error is something other than "not found", propagate it.
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Name:         cleanName,
		Email:        cleanEmail,
		PasswordHash: hash,
		Role:         RoleCustomer,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) PromoteToOwner(ctx context.Context, userID string) error {
	return s.repo.SetRole(ctx, userID, RoleOwner)
}

func (s *service) AddFavorite(ctx context.Context, userID, carID string) error {
	if carID == "" {
		return ErrCarIDRequired
	}
	// Reject unknown cars; the favorites table would otherwise surface a
	// foreign key violation as a 500.
	if _, err := s.carService.GetByID(ctx, carID); err != nil {
		return err
	}
	return s.repo.AddFavorite(ctx, userID, carID)
}

func (s *service) RemoveFavorite(ctx context.Context, userID, carID string) error {
	if carID == "" {
		return ErrCarIDRequired
	}
	return s.repo.RemoveFavorite(ctx, userID, carID)
}

func (s *service) ListFavorites(ctx context.Context, userID string) ([]*car.Car, error) {
	ids, err := s.repo.ListFavoriteCarIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.carService.ListByIDs(ctx, ids)
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
