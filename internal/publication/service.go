package publication

import (
	"context"
	"fmt"

	"researchpub/internal/fields"
)

// Service provides publication business logic.
type Service struct {
	repo     Repository
	renderer *Renderer
	group    fields.Group
}

// NewService creates a new publication service validating saves against group.
func NewService(repo Repository, renderer *Renderer, group fields.Group) *Service {
	return &Service{repo: repo, renderer: renderer, group: group}
}

// List returns publications matching the query.
func (s *Service) List(ctx context.Context, q Query) ([]Publication, int, error) {
	return s.repo.List(ctx, q)
}

// Get returns a publication by id.
func (s *Service) Get(ctx context.Context, id string) (Publication, error) {
	return s.repo.Get(ctx, id)
}

// Render loads a publication and returns its markup.
func (s *Service) Render(ctx context.Context, id string) (string, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.renderer.Render(ctx, p)
}

// Create validates and stores a new publication. Any ID on p is replaced.
func (s *Service) Create(ctx context.Context, p *Publication) error {
	p.ID = ""
	if err := s.prepare(p); err != nil {
		return err
	}
	return s.repo.Save(ctx, p)
}

// Update replaces a stored publication. The publication type cannot change;
// an update that leaves it empty keeps the stored one.
func (s *Service) Update(ctx context.Context, p *Publication) error {
	existing, err := s.repo.Get(ctx, p.ID)
	if err != nil {
		return err
	}
	if p.Variant == "" {
		p.Variant = existing.Variant
	}
	if p.Variant != existing.Variant {
		return fmt.Errorf("%w: stored %q, got %q", ErrVariantImmutable, existing.Variant, p.Variant)
	}
	if err := s.prepare(p); err != nil {
		return err
	}
	p.CreatedAt = existing.CreatedAt
	return s.repo.Save(ctx, p)
}

// Delete removes a publication.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Revisions lists saved snapshots of a publication, newest first.
func (s *Service) Revisions(ctx context.Context, id string) ([]Revision, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Revisions(ctx, id)
}

// prepare validates p against the field group and drops the values of fields
// hidden for its type.
func (s *Service) prepare(p *Publication) error {
	values := p.Values()
	if err := s.group.Validate(values); err != nil {
		return err
	}
	*p = p.WithValues(s.group.Visible(values))
	return nil
}
