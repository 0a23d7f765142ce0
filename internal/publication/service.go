package publication

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidInput is returned when a title or url is missing or blank.
var ErrInvalidInput = errors.New("title and url are required")

// maxIDAttempts bounds id regeneration on the (practically impossible) collision.
const maxIDAttempts = 3

// Service contains the business logic for publications.
type Service struct {
	registry *Registry
	logger   *slog.Logger
	newID    func() string
}

// NewService creates a new publication Service backed by registry.
func NewService(registry *Registry, logger *slog.Logger) *Service {
	return &Service{registry: registry, logger: logger, newID: uuid.NewString}
}

// List returns every publication in insertion order.
func (s *Service) List(ctx context.Context) []Publication {
	return s.registry.List()
}

// Create validates title and url, assigns a fresh id and appends the record.
func (s *Service) Create(ctx context.Context, title, url string) (Publication, error) {
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)
	if title == "" || url == "" {
		return Publication{}, ErrInvalidInput
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		p := Publication{ID: s.newID(), Title: title, URL: url}
		if p.ID != "" && s.registry.Add(p) {
			s.logger.InfoContext(ctx, "publication created", "id", p.ID)
			return p, nil
		}
	}
	return Publication{}, errors.New("create publication: could not allocate a unique id")
}

// Delete removes the publication with id. Deleting an unknown id is not an
// error: the operation is idempotent.
func (s *Service) Delete(ctx context.Context, id string) {
	removed := s.registry.Delete(id)
	s.logger.InfoContext(ctx, "publication delete", "id", id, "removed", removed)
}
