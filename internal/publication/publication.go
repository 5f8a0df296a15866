package publication

import (
	"errors"
	"time"

	"researchpub/internal/fields"
)

var (
	// ErrNotFound is returned when a publication is not found.
	ErrNotFound = errors.New("publication not found")
	// ErrVariantImmutable is returned when a save tries to change the publication type.
	ErrVariantImmutable = errors.New("publication type cannot be changed")
	// ErrUnknownAuthor is returned when an author id does not match a person.
	ErrUnknownAuthor = errors.New("author not found")
)

// Variant is the kind of publication. It decides which fields apply and how
// the record is rendered.
type Variant string

const (
	Book    Variant = "book"
	Journal Variant = "journal"
	Digital Variant = "digital"
)

// DefaultVariant is used when a record is saved without a type.
const DefaultVariant = Book

// Known reports whether v is one of the three publication types.
func (v Variant) Known() bool {
	switch v {
	case Book, Journal, Digital:
		return true
	}
	return false
}

// Author is a person credited on a publication.
type Author struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Publication is a research publication record. Year and PublicationDate
// hold the stored Ymd form of their date fields.
type Publication struct {
	ID              string    `json:"id" yaml:"id"`
	Title           string    `json:"title" yaml:"title" validate:"required,max=500"`
	Content         string    `json:"content,omitempty" yaml:"content,omitempty"`
	Excerpt         string    `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	Variant         Variant   `json:"publication_type" yaml:"publication_type"`
	Authors         []Author  `json:"authors" yaml:"authors"`
	Contributors    []string  `json:"contributors,omitempty" yaml:"contributors,omitempty"`
	Publisher       string    `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	AdvancedInfo    string    `json:"advanced_info,omitempty" yaml:"advanced_info,omitempty"`
	Year            string    `json:"year,omitempty" yaml:"year,omitempty"`
	JournalTitle    string    `json:"journal_title,omitempty" yaml:"journal_title,omitempty"`
	PublicationDate string    `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`
	WebsiteName     string    `json:"website_name,omitempty" yaml:"website_name,omitempty"`
	URL             string    `json:"url,omitempty" yaml:"url,omitempty"`
	CreatedAt       time.Time `json:"created_at" yaml:"-"`
	UpdatedAt       time.Time `json:"updated_at" yaml:"-"`
}

// Revision is a snapshot taken each time a publication is saved.
type Revision struct {
	ID            int64       `json:"id"`
	PublicationID string      `json:"publication_id"`
	Snapshot      Publication `json:"snapshot"`
	CreatedAt     time.Time   `json:"created_at"`
}

// Query defines filters and pagination for listing publications.
type Query struct {
	Variant Variant
	Q       string
	Limit   int
	Offset  int
}

// Values flattens the record into its custom field values.
func (p Publication) Values() fields.Values {
	vs := fields.Values{}
	setText := func(key, v string) {
		if v != "" {
			vs[key] = fields.Text(v)
		}
	}

	setText(fields.KeyType, string(p.Variant))
	setText(fields.KeyJournalTitle, p.JournalTitle)
	setText(fields.KeyURL, p.URL)
	setText(fields.KeyWebsiteName, p.WebsiteName)
	setText(fields.KeyAdvancedInfo, p.AdvancedInfo)
	setText(fields.KeyPublisher, p.Publisher)
	setText(fields.KeyYear, p.Year)
	setText(fields.KeyDate, p.PublicationDate)

	if len(p.Authors) > 0 {
		refs := make([]fields.Ref, 0, len(p.Authors))
		for _, a := range p.Authors {
			refs = append(refs, fields.Ref{ID: a.ID, Title: a.Name})
		}
		vs[fields.KeyAuthors] = fields.Value{Refs: refs}
	}
	if len(p.Contributors) > 0 {
		rows := make([]fields.Row, 0, len(p.Contributors))
		for _, c := range p.Contributors {
			rows = append(rows, fields.Row{fields.KeyContributor: c})
		}
		vs[fields.KeyContributors] = fields.Value{Rows: rows}
	}
	return vs
}

// WithValues returns a copy of p whose custom fields are replaced by vs.
// Fields missing from vs are cleared.
func (p Publication) WithValues(vs fields.Values) Publication {
	out := Publication{
		ID:              p.ID,
		Title:           p.Title,
		Content:         p.Content,
		Excerpt:         p.Excerpt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Variant:         Variant(vs.Text(fields.KeyType)),
		JournalTitle:    vs.Text(fields.KeyJournalTitle),
		URL:             vs.Text(fields.KeyURL),
		WebsiteName:     vs.Text(fields.KeyWebsiteName),
		AdvancedInfo:    vs.Text(fields.KeyAdvancedInfo),
		Publisher:       vs.Text(fields.KeyPublisher),
		Year:            vs.Text(fields.KeyYear),
		PublicationDate: vs.Text(fields.KeyDate),
	}
	for _, ref := range vs[fields.KeyAuthors].Refs {
		out.Authors = append(out.Authors, Author{ID: ref.ID, Name: ref.Title})
	}
	for _, row := range vs[fields.KeyContributors].Rows {
		out.Contributors = append(out.Contributors, row[fields.KeyContributor])
	}
	return out
}
