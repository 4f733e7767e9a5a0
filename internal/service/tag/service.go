// Package tag implements the tag listing.
package tag

import (
	"context"
	"log/slog"
)

type tagRepo interface {
	ListNames(ctx context.Context) ([]string, error)
}

// Service implements the tag business logic.
type Service struct {
	log  *slog.Logger
	tags tagRepo
}

// NewService creates a new Tag service.
func NewService(logger *slog.Logger, tags tagRepo) *Service {
	return &Service{
		log:  logger.With("service", "tag"),
		tags: tags,
	}
}

// List returns all known tag names, ascending.
func (s *Service) List(ctx context.Context) ([]string, error) {
	names, err := s.tags.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
