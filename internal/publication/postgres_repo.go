package publication

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"researchpub/internal/fields"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgForeignKeyViolation = "23503"
	pgInvalidText         = "22P02"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepo stores publications and their custom fields. It implements
// both Repository and FieldReader.
type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
	group   fields.Group
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration, group fields.Group) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout, group: group}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func isPgCode(err error, codes ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	for _, c := range codes {
		if pgErr.Code == c {
			return true
		}
	}
	return false
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Publication, int, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if q.Variant != "" {
		clauses = append(clauses, fmt.Sprintf("publication_type = $%d", argn))
		args = append(args, string(q.Variant))
		argn++
	}

	if q.Q != "" {
		clauses = append(clauses, fmt.Sprintf("title ILIKE $%d", argn))
		args = append(args, "%"+q.Q+"%")
		argn++
	}

	where := "WHERE " + strings.Join(clauses, " AND ")

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM research_publications %s", where)
	if err := r.db.QueryRow(timeoutCtx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf(`
		SELECT id, title, content, excerpt, publication_type, created_at, updated_at
		FROM research_publications
		%s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d`,
		where, argn, argn+1)

	argsWithPage := append([]any{}, args...)
	argsWithPage = append(argsWithPage, q.Limit, q.Offset)
	rows, err := r.db.Query(timeoutCtx, dataSQL, argsWithPage...)
	if err != nil {
		return nil, 0, err
	}
	out, err := pgx.CollectRows(rows, scanPublication)
	if err != nil {
		return nil, 0, err
	}

	if len(out) == 0 {
		return out, total, nil
	}

	ids := make([]string, len(out))
	for i := range out {
		ids[i] = out[i].ID
	}
	values, err := r.loadValues(timeoutCtx, r.db, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range out {
		out[i] = withStoredValues(out[i], values[out[i].ID])
	}
	return out, total, nil
}

func scanPublication(row pgx.CollectableRow) (Publication, error) {
	var p Publication
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.Variant, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (Publication, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.get(timeoutCtx, r.db, id)
}

func (r *PostgresRepo) get(ctx context.Context, q querier, id string) (Publication, error) {
	const query = `
		SELECT id, title, content, excerpt, publication_type, created_at, updated_at
		FROM research_publications
		WHERE id = $1`

	rows, err := q.Query(ctx, query, id)
	if err != nil {
		return Publication{}, err
	}
	p, err := pgx.CollectExactlyOneRow(rows, scanPublication)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isPgCode(err, pgInvalidText) {
			return Publication{}, ErrNotFound
		}
		return Publication{}, err
	}
	if err := r.hydrate(ctx, q, &p); err != nil {
		return Publication{}, err
	}
	return p, nil
}

// hydrate loads the custom fields of p.
func (r *PostgresRepo) hydrate(ctx context.Context, q querier, p *Publication) error {
	values, err := r.loadValues(ctx, q, []string{p.ID})
	if err != nil {
		return err
	}
	*p = withStoredValues(*p, values[p.ID])
	return nil
}

func withStoredValues(p Publication, values fields.Values) Publication {
	if values == nil {
		values = fields.Values{}
	}
	values[fields.KeyType] = fields.Text(string(p.Variant))
	return p.WithValues(values)
}

// loadValues reads the custom fields of every publication in ids, keyed by
// publication id.
func (r *PostgresRepo) loadValues(ctx context.Context, q querier, ids []string) (map[string]fields.Values, error) {
	out := make(map[string]fields.Values, len(ids))
	for _, id := range ids {
		out[id] = fields.Values{}
	}

	rows, err := q.Query(ctx, `SELECT publication_id, field_key, value FROM publication_fields WHERE publication_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	var id, key, value string
	at := func(id string) fields.Values {
		if out[id] == nil {
			out[id] = fields.Values{}
		}
		return out[id]
	}
	_, err = pgx.ForEachRow(rows, []any{&id, &key, &value}, func() error {
		at(id)[key] = fields.Text(value)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load fields: %w", err)
	}

	authors, err := r.loadAuthors(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for id, v := range authors {
		at(id)[fields.KeyAuthors] = v
	}

	contributors, err := r.loadContributors(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for id, v := range contributors {
		at(id)[fields.KeyContributors] = v
	}
	return out, nil
}

// loadAuthors returns the authors of each publication in ids in credit order.
// Publications without authors have no entry.
func (r *PostgresRepo) loadAuthors(ctx context.Context, q querier, ids []string) (map[string]fields.Value, error) {
	const query = `
		SELECT pa.publication_id, p.id, p.name
		FROM publication_authors pa
		JOIN people p ON p.id = pa.person_id
		WHERE pa.publication_id = ANY($1)
		ORDER BY pa.publication_id, pa.position`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	out := map[string]fields.Value{}
	var (
		id  string
		ref fields.Ref
	)
	_, err = pgx.ForEachRow(rows, []any{&id, &ref.ID, &ref.Title}, func() error {
		v := out[id]
		v.Refs = append(v.Refs, ref)
		out[id] = v
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	return out, nil
}

// loadContributors returns the contributor rows of each publication in ids.
// Publications without contributors have no entry.
func (r *PostgresRepo) loadContributors(ctx context.Context, q querier, ids []string) (map[string]fields.Value, error) {
	const query = `
		SELECT publication_id, name
		FROM publication_contributors
		WHERE publication_id = ANY($1)
		ORDER BY publication_id, position`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	out := map[string]fields.Value{}
	var id, name string
	_, err = pgx.ForEachRow(rows, []any{&id, &name}, func() error {
		v := out[id]
		v.Rows = append(v.Rows, fields.Row{fields.KeyContributor: name})
		out[id] = v
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load contributors: %w", err)
	}
	return out, nil
}

// GetField reads one custom field, formatted by its field definition.
func (r *PostgresRepo) GetField(ctx context.Context, key, publicationID string) (fields.Value, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var (
		v   fields.Value
		err error
	)
	switch key {
	case fields.KeyType:
		err = r.db.QueryRow(timeoutCtx,
			`SELECT publication_type FROM research_publications WHERE id = $1`, publicationID).Scan(&v.Text)
	case fields.KeyAuthors:
		v, err = r.loadOne(timeoutCtx, r.loadAuthors, publicationID)
	case fields.KeyContributors:
		v, err = r.loadOne(timeoutCtx, r.loadContributors, publicationID)
	default:
		err = r.db.QueryRow(timeoutCtx,
			`SELECT value FROM publication_fields WHERE publication_id = $1 AND field_key = $2`,
			publicationID, key).Scan(&v.Text)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isPgCode(err, pgInvalidText) {
			return fields.Value{}, nil
		}
		return fields.Value{}, err
	}

	if f, ok := r.group.Field(key); ok {
		v = f.Format(v)
	}
	return v, nil
}

func (r *PostgresRepo) loadOne(ctx context.Context, load func(context.Context, querier, []string) (map[string]fields.Value, error), id string) (fields.Value, error) {
	vs, err := load(ctx, r.db, []string{id})
	if err != nil {
		return fields.Value{}, err
	}
	// Keys are canonical uuids, which may differ in case from id.
	for _, v := range vs {
		return v, nil
	}
	return fields.Value{}, nil
}

// Save inserts or replaces p with all of its custom fields and records a
// revision. A missing ID is assigned. Author names are refreshed from people.
func (r *PostgresRepo) Save(ctx context.Context, p *Publication) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback(timeoutCtx)

	const upsertSQL = `
		INSERT INTO research_publications (id, title, content, excerpt, publication_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			excerpt = EXCLUDED.excerpt,
			publication_type = EXCLUDED.publication_type,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(timeoutCtx, upsertSQL, p.ID, p.Title, p.Content, p.Excerpt, string(p.Variant)).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("upsert publication: %w", err)
	}

	for _, table := range []string{"publication_fields", "publication_authors", "publication_contributors"} {
		if _, err := tx.Exec(timeoutCtx, "DELETE FROM "+table+" WHERE publication_id = $1", p.ID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	batch := &pgx.Batch{}
	for key, v := range p.Values() {
		switch key {
		case fields.KeyType, fields.KeyAuthors, fields.KeyContributors:
			continue
		}
		batch.Queue(`INSERT INTO publication_fields (publication_id, field_key, value) VALUES ($1, $2, $3)`, p.ID, key, v.Text)
	}
	for i, c := range p.Contributors {
		batch.Queue(`INSERT INTO publication_contributors (publication_id, position, name) VALUES ($1, $2, $3)`, p.ID, i, c)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(timeoutCtx, batch).Close(); err != nil {
			return fmt.Errorf("insert fields: %w", err)
		}
	}

	for i, a := range p.Authors {
		_, err := tx.Exec(timeoutCtx,
			`INSERT INTO publication_authors (publication_id, person_id, position) VALUES ($1, $2, $3)`,
			p.ID, a.ID, i)
		if err != nil {
			if isPgCode(err, pgForeignKeyViolation, pgInvalidText) {
				return fmt.Errorf("%w: %s", ErrUnknownAuthor, a.ID)
			}
			return fmt.Errorf("insert author: %w", err)
		}
	}

	authors, err := r.loadAuthors(timeoutCtx, tx, []string{p.ID})
	if err != nil {
		return err
	}
	p.Authors = make([]Author, 0, len(p.Authors))
	for _, ref := range authors[p.ID].Refs {
		p.Authors = append(p.Authors, Author{ID: ref.ID, Name: ref.Title})
	}

	snapshot, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode revision: %w", err)
	}
	if _, err := tx.Exec(timeoutCtx,
		`INSERT INTO publication_revisions (publication_id, snapshot, created_at) VALUES ($1, $2, NOW())`,
		p.ID, snapshot); err != nil {
		return fmt.Errorf("insert revision: %w", err)
	}

	return tx.Commit(timeoutCtx)
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM research_publications WHERE id = $1`, id)
	if err != nil {
		if isPgCode(err, pgInvalidText) {
			return ErrNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Revisions(ctx context.Context, id string) ([]Revision, error) {
	const query = `
		SELECT id, publication_id, snapshot, created_at
		FROM publication_revisions
		WHERE publication_id = $1
		ORDER BY id DESC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, query, id)
	if err != nil {
		if isPgCode(err, pgInvalidText) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Revision, error) {
		var (
			rev Revision
			raw []byte
		)
		if err := row.Scan(&rev.ID, &rev.PublicationID, &raw, &rev.CreatedAt); err != nil {
			return Revision{}, err
		}
		if err := json.Unmarshal(raw, &rev.Snapshot); err != nil {
			return Revision{}, fmt.Errorf("decode revision %d: %w", rev.ID, err)
		}
		return rev, nil
	})
	if err != nil {
		if isPgCode(err, pgInvalidText) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

// SavePerson inserts or renames a person that can be credited as an author.
func (r *PostgresRepo) SavePerson(ctx context.Context, a *Author) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO people (id, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, a.ID, a.Name)
	return err
}
