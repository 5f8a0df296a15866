package publication

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"researchpub/internal/fields"
	"researchpub/internal/posttype"
)

func testBook() Publication {
	return Publication{
		Title:     "Notes on the Analytical Engine",
		Variant:   Book,
		Authors:   []Author{{ID: "p1", Name: "Ada Lovelace"}},
		Publisher: "Taylor",
		Year:      "18430101",
	}
}

func newTestService(t *testing.T, fr FieldReader) (*Service, *MockRepository) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	group := fields.BuildGroup(nil, posttype.Name)
	return NewService(repo, NewRenderer(fr, nil), group), repo
}

func TestService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, repo := newTestService(t, staticFields{})
		p := testBook()
		p.ID = "client-chosen"

		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, got *Publication) error {
			assert.Empty(t, got.ID)
			got.ID = "generated"
			return nil
		})

		require.NoError(t, svc.Create(context.Background(), &p))
		assert.Equal(t, "generated", p.ID)
	})

	t.Run("defaults to book", func(t *testing.T) {
		svc, repo := newTestService(t, staticFields{})
		p := testBook()
		p.Variant = ""

		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, svc.Create(context.Background(), &p))
		assert.Equal(t, Book, p.Variant)
	})

	t.Run("drops hidden fields", func(t *testing.T) {
		svc, repo := newTestService(t, staticFields{})
		p := testBook()
		p.JournalTitle = "Leftover"
		p.WebsiteName = "Leftover"
		p.PublicationDate = "garbage"

		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, svc.Create(context.Background(), &p))
		assert.Empty(t, p.JournalTitle)
		assert.Empty(t, p.WebsiteName)
		assert.Empty(t, p.PublicationDate)
		assert.Equal(t, "Taylor", p.Publisher)
	})

	t.Run("validation error", func(t *testing.T) {
		svc, _ := newTestService(t, staticFields{})
		p := Publication{Title: "Untitled", Variant: Journal}

		err := svc.Create(context.Background(), &p)

		var verr *fields.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Len(t, verr.Violations, 3)
	})
}

func TestService_Update(t *testing.T) {
	stored := testBook()
	stored.ID = "pub-1"

	t.Run("keeps stored type", func(t *testing.T) {
		svc, repo := newTestService(t, staticFields{})
		repo.EXPECT().Get(gomock.Any(), "pub-1").Return(stored, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		p := testBook()
		p.ID = "pub-1"
		p.Variant = ""
		require.NoError(t, svc.Update(context.Background(), &p))
		assert.Equal(t, Book, p.Variant)
	})

	t.Run("type is immutable", func(t *testing.T) {
		svc, repo := newTestService(t, staticFields{})
		repo.EXPECT().Get(gomock.Any(), "pub-1").Return(stored, nil)

		p := testBook()
		p.ID = "pub-1"
		p.Variant = Journal
		err := svc.Update(context.Background(), &p)
		assert.ErrorIs(t, err, ErrVariantImmutable)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo := newTestService(t, staticFields{})
		repo.EXPECT().Get(gomock.Any(), "missing").Return(Publication{}, ErrNotFound)

		p := testBook()
		p.ID = "missing"
		assert.ErrorIs(t, svc.Update(context.Background(), &p), ErrNotFound)
	})
}

func TestService_Render(t *testing.T) {
	stored := testBook()
	stored.ID = "pub-1"

	svc, repo := newTestService(t, staticFields{
		fields.KeyAuthors:   authors("Ada Lovelace"),
		fields.KeyPublisher: fields.Text("Taylor"),
		fields.KeyYear:      fields.Text("1843"),
	})
	repo.EXPECT().Get(gomock.Any(), "pub-1").Return(stored, nil)

	html, err := svc.Render(context.Background(), "pub-1")
	require.NoError(t, err)
	assert.Contains(t, html, `<h3 class="h5 publication-title font-italic">Notes on the Analytical Engine</h3>`)
	assert.Contains(t, html, `<p class="publication-authors">Ada Lovelace</p>`)
}

func TestService_Revisions(t *testing.T) {
	svc, repo := newTestService(t, staticFields{})

	t.Run("unknown publication", func(t *testing.T) {
		repo.EXPECT().Get(gomock.Any(), "missing").Return(Publication{}, ErrNotFound)

		_, err := svc.Revisions(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().Get(gomock.Any(), "pub-1").Return(Publication{ID: "pub-1"}, nil)
		repo.EXPECT().Revisions(gomock.Any(), "pub-1").Return([]Revision{{ID: 2}, {ID: 1}}, nil)

		revs, err := svc.Revisions(context.Background(), "pub-1")
		require.NoError(t, err)
		assert.Len(t, revs, 2)
	})
}
