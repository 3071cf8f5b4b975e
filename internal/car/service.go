package car

import (
	"context"
	"strings"
)

// CreateRequest carries the listing attributes submitted by an owner.
type CreateRequest struct {
	Brand           string
	Model           string
	Year            int
	PricePerDay     float64
	Category        string
	Transmission    string
	FuelType        string
	SeatingCapacity int
	Location        string
	Description     string
	ImageID         *string
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Car, error)
	GetByID(ctx context.Context, id string) (*Car, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Car, error)
	ListListed(ctx context.Context, location string) ([]*Car, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Car, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	ToggleAvailability(ctx context.Context, requesterID, carID string) (*Car, error)
	AttachImage(ctx context.Context, requesterID, carID, fileID string) error
	Delete(ctx context.Context, requesterID, carID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Car, error) {
	if strings.TrimSpace(req.Brand) == "" ||
		strings.TrimSpace(req.Model) == "" ||
		strings.TrimSpace(req.Location) == "" ||
		req.PricePerDay <= 0 {
		return nil, ErrInvalidListing
	}

	c := &Car{
		OwnerID:         ownerID,
		Brand:           strings.TrimSpace(req.Brand),
		Model:           strings.TrimSpace(req.Model),
		Year:            req.Year,
		PricePerDay:     req.PricePerDay,
		Category:        req.Category,
		Transmission:    req.Transmission,
		FuelType:        req.FuelType,
		SeatingCapacity: req.SeatingCapacity,
		Location:        strings.TrimSpace(req.Location),
		Description:     req.Description,
		ImageID:         req.ImageID,
		IsAvailable:     true,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Car, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]*Car, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) ListListed(ctx context.Context, location string) ([]*Car, error) {
	return s.repo.ListListed(ctx, location)
}

func (s *service) ListByIDs(ctx context.Context, ids []string) ([]*Car, error) {
	return s.repo.ListByIDs(ctx, ids)
}

func (s *service) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	return s.repo.CountByOwner(ctx, ownerID)
}

func (s *service) ToggleAvailability(ctx context.Context, requesterID, carID string) (*Car, error) {
	c, err := s.requireOwned(ctx, requesterID, carID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetAvailability(ctx, carID, !c.IsAvailable); err != nil {
		return nil, err
	}
	c.IsAvailable = !c.IsAvailable
	return c, nil
}

func (s *service) AttachImage(ctx context.Context, requesterID, carID, fileID string) error {
	if _, err := s.requireOwned(ctx, requesterID, carID); err != nil {
		return err
	}
	return s.repo.SetImage(ctx, carID, fileID)
}

func (s *service) Delete(ctx context.Context, requesterID, carID string) error {
	if _, err := s.requireOwned(ctx, requesterID, carID); err != nil {
		return err
	}

	active, err := s.repo.HasActiveBookings(ctx, carID)
	if err != nil {
		return err
	}
	if active {
		return ErrHasActiveBookings
	}

	return s.repo.Delete(ctx, carID)
}

// requireOwned loads the car and verifies the requester listed it.
func (s *service) requireOwned(ctx context.Context, requesterID, carID string) (*Car, error) {
	c, err := s.repo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != requesterID {
		return nil, ErrNotOwner
	}
	return c, nil
}
