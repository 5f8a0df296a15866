package publication

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"researchpub/internal/fields"
	"researchpub/internal/hook"
)

// Markup hooks. Digital markup goes through the journal hook name; existing
// filters registered for journal markup rely on seeing digital markup too.
const (
	HookBookMarkup    = "ucf_research_book_markup"
	HookJournalMarkup = "ucf_research_journal_markup"
	HookDigitalMarkup = HookJournalMarkup
)

// Values are written verbatim: stored titles and field values may already
// carry entities or inline markup.
var markupTemplates = template.Must(template.New("markup").Parse(`
{{- define "book" -}}
<div class="publication book">
	<h3 class="h5 publication-title font-italic">{{.Title}}</h3>
	<p class="publication-authors">{{.Authors}}</p>
{{- if .Details}}
	<p class="publication-details">{{.Details}}</p>
{{- end}}
</div>
{{- end -}}

{{- define "journal" -}}
<div class="publication journal">
	<h3 class="h5 publication-title">&ldquo;{{.Title}}&ldquo;</h3>
	<p class="publication-authors">{{.Authors}}</p>
	<p class="publication-details">{{.Details}}</p>
</div>
{{- end -}}

{{- define "digital" -}}
<div class="publication digital">
	<h3 class="h5 publication-title">&ldquo;{{.Title}}&rdquo;</h3>
	<p class="publication-authors">{{.Authors}}</p>
	<p class="publication-details">{{.Details}}</p>
</div>
{{- end -}}
`))

type markupData struct {
	Title   string
	Authors string
	Details string
}

// Renderer turns stored publications into HTML fragments.
type Renderer struct {
	fields FieldReader
	hooks  *hook.Registry
}

func NewRenderer(fr FieldReader, hooks *hook.Registry) *Renderer {
	return &Renderer{fields: fr, hooks: hooks}
}

// Render returns the markup for p. Publications of an unknown type render
// as the empty string without error.
func (r *Renderer) Render(ctx context.Context, p Publication) (string, error) {
	switch p.Variant {
	case Book:
		return r.book(ctx, p)
	case Journal:
		return r.journal(ctx, p)
	case Digital:
		return r.digital(ctx, p)
	default:
		return "", nil
	}
}

func (r *Renderer) book(ctx context.Context, p Publication) (string, error) {
	rd := r.reader(ctx, p.ID)
	authors := rd.authors()
	publisher := rd.text(fields.KeyPublisher)
	advanced := rd.text(fields.KeyAdvancedInfo)
	year := rd.text(fields.KeyYear)
	if rd.err != nil {
		return "", rd.err
	}

	details := advanced
	if publisher != "" {
		details += " " + publisher
	}
	if year != "" {
		details += ", " + year
	}

	return r.execute("book", HookBookMarkup, p, markupData{Title: p.Title, Authors: authors, Details: details})
}

func (r *Renderer) journal(ctx context.Context, p Publication) (string, error) {
	rd := r.reader(ctx, p.ID)
	authors := rd.authors()
	journal := rd.text(fields.KeyJournalTitle)
	advanced := rd.text(fields.KeyAdvancedInfo)
	date := rd.text(fields.KeyDate)
	if rd.err != nil {
		return "", rd.err
	}

	details := `<span class="publication-journal font-italic">` + journal + `</span>`
	if advanced != "" {
		details += " " + advanced
	}
	if date != "" {
		details += ": " + date
	}

	return r.execute("journal", HookJournalMarkup, p, markupData{Title: p.Title, Authors: authors, Details: details})
}

func (r *Renderer) digital(ctx context.Context, p Publication) (string, error) {
	rd := r.reader(ctx, p.ID)
	authors := rd.authors()
	website := rd.text(fields.KeyWebsiteName)
	url := rd.text(fields.KeyURL)
	date := rd.text(fields.KeyDate)
	if rd.err != nil {
		return "", rd.err
	}

	details := fmt.Sprintf(`%s, %s <a href="%s" target="_blank">%s</a>`, website, date, url, url)

	return r.execute("digital", HookDigitalMarkup, p, markupData{Title: p.Title, Authors: authors, Details: details})
}

func (r *Renderer) execute(name, hookName string, p Publication, data markupData) (string, error) {
	var b strings.Builder
	if err := markupTemplates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render %s markup: %w", name, err)
	}
	return hook.Apply(r.hooks, hookName, b.String(), p), nil
}

// fieldReader stops reading after the first error and remembers it.
type fieldReader struct {
	ctx context.Context
	fr  FieldReader
	id  string
	err error
}

func (r *Renderer) reader(ctx context.Context, id string) *fieldReader {
	return &fieldReader{ctx: ctx, fr: r.fields, id: id}
}

func (rd *fieldReader) get(key string) fields.Value {
	if rd.err != nil {
		return fields.Value{}
	}
	v, err := rd.fr.GetField(rd.ctx, key, rd.id)
	if err != nil {
		rd.err = fmt.Errorf("read %s of %s: %w", key, rd.id, err)
		return fields.Value{}
	}
	return v
}

func (rd *fieldReader) text(key string) string {
	return rd.get(key).Text
}

func (rd *fieldReader) authors() string {
	refs := rd.get(fields.KeyAuthors).Refs
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Title)
	}
	return strings.Join(names, ", ")
}
