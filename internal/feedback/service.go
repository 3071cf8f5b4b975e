package feedback

import (
	"context"
	"strings"
)

const defaultListLimit = 20

type CreateRequest struct {
	Name    string
	Email   string
	Rating  int
	Message string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Feedback, error)
	ListRecent(ctx context.Context) ([]*Feedback, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Feedback, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, ErrEmailRequired
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrMessageRequired
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	f := &Feedback{
		Name:    req.Name,
		Email:   req.Email,
		Rating:  req.Rating,
		Message: req.Message,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) ListRecent(ctx context.Context) ([]*Feedback, error) {
	return s.repo.ListRecent(ctx, defaultListLimit)
}
