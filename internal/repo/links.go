package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/abdusco/shelf/internal"
	"github.com/abdusco/shelf/internal/schema"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const dialect = "sqlite3"

type linkRow struct {
	ID        string `db:"id"`
	URL       string `db:"url"`
	Title     string `db:"title"`
	Tags      Tags   `db:"tags"`
	Favicon   string `db:"favicon"`
	CreatedAt Date   `db:"created_at"`
}

type LinksRepo struct {
	db *sql.DB
}

func NewLinksRepo(db *sql.DB) *LinksRepo {
	return &LinksRepo{db: db}
}

// Create inserts the link and returns its newly assigned id.
func (r *LinksRepo) Create(ctx context.Context, link internal.NewLink) (string, error) {
	if link.Tags == nil {
		link.Tags = []string{}
	}
	if err := schema.Links.ValidateDocument(schema.LinkDocument(link)); err != nil {
		return "", err
	}

	executor := goqu.New(dialect, r.db)

	log.Debug().Str("url", link.URL).Strs("tags", link.Tags).Msg("creating link")

	tags, err := Tags(link.Tags).Value()
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	now := Date(time.Now().UTC())
	query := executor.Insert(schema.Links.Name).
		Cols("id", "url", "title", "tags", "favicon", "created_at").
		Vals([]any{id, link.URL, link.Title, tags, link.Favicon, now.String()})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		log.Error().Err(err).Str("url", link.URL).Msg("failed to create link")
		return "", err
	}

	log.Info().Str("id", id).Str("url", link.URL).Msg("link created successfully")
	return id, nil
}

// ListAll returns every stored link in creation order.
func (r *LinksRepo) ListAll(ctx context.Context) ([]internal.Link, error) {
	executor := goqu.New(dialect, r.db)

	query := executor.From(schema.Links.Name).Select(
		"id", "url", "title", "tags", "favicon", "created_at",
	).Order(goqu.C("created_at").Asc(), goqu.L("rowid").Asc())

	var rows []linkRow
	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, err
	}

	log.Debug().Int("count", len(rows)).Msg("links listed")

	return lo.Map(rows, func(row linkRow, _ int) internal.Link {
		return row.toDomain()
	}), nil
}

func (r linkRow) toDomain() internal.Link {
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	return internal.Link{
		ID:        r.ID,
		URL:       r.URL,
		Title:     r.Title,
		Tags:      tags,
		Favicon:   r.Favicon,
		CreatedAt: r.CreatedAt.Time(),
	}
}
