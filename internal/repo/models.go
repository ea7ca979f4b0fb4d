package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/abdusco/shelf/internal"
	"github.com/abdusco/shelf/internal/schema"
	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type modelRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	URL       string `db:"url"`
	CreatedAt Date   `db:"created_at"`
}

type ModelsRepo struct {
	db *sql.DB
}

func NewModelsRepo(db *sql.DB) *ModelsRepo {
	return &ModelsRepo{db: db}
}

func (r *ModelsRepo) Create(ctx context.Context, model internal.NewModel) (string, error) {
	if err := schema.Models.ValidateDocument(schema.ModelDocument(model)); err != nil {
		return "", err
	}

	executor := goqu.New(dialect, r.db)

	log.Debug().Str("name", model.Name).Str("url", model.URL).Msg("creating model")

	id := uuid.NewString()
	now := Date(time.Now().UTC())
	query := executor.Insert(schema.Models.Name).
		Cols("id", "name", "url", "created_at").
		Vals([]any{id, model.Name, model.URL, now.String()})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		log.Error().Err(err).Str("name", model.Name).Msg("failed to create model")
		return "", err
	}

	log.Info().Str("id", id).Str("name", model.Name).Msg("model created successfully")
	return id, nil
}

func (r *ModelsRepo) ListAll(ctx context.Context) ([]internal.Model, error) {
	executor := goqu.New(dialect, r.db)

	query := executor.From(schema.Models.Name).Select(
		"id", "name", "url", "created_at",
	).Order(goqu.C("created_at").Asc(), goqu.L("rowid").Asc())

	var rows []modelRow
	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row modelRow, _ int) internal.Model {
		return internal.Model{
			ID:        row.ID,
			Name:      row.Name,
			URL:       row.URL,
			CreatedAt: row.CreatedAt.Time(),
		}
	}), nil
}
