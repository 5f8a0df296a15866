package publication

import (
	"context"

	"researchpub/internal/fields"
)

// Repository defines the contract for publication storage.
type Repository interface {
	List(ctx context.Context, q Query) ([]Publication, int, error)
	Get(ctx context.Context, id string) (Publication, error)
	Save(ctx context.Context, p *Publication) error
	Delete(ctx context.Context, id string) error
	Revisions(ctx context.Context, id string) ([]Revision, error)
}

// FieldReader reads one custom field of a stored publication, formatted the
// way its field definition returns it. A field with no stored value reads as
// an empty Value.
type FieldReader interface {
	GetField(ctx context.Context, key, publicationID string) (fields.Value, error)
}
