package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tomasbot/matchday/internal/domain/competition"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) GetByName(ctx context.Context, name string) (competition.Competition, bool, error) {
	const query = `
		SELECT * FROM competitions
		WHERE lower(name) = lower($1)`

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("select competition by name: %w", err)
	}

	return competitionFromRow(row), true, nil
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	const query = `SELECT * FROM competitions ORDER BY name`

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competitionFromRow(row))
	}

	return out, nil
}

func (r *CompetitionRepository) Upsert(ctx context.Context, item competition.Competition) (competition.Competition, error) {
	const query = `
		INSERT INTO competitions (public_id, name, country, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (public_id) DO UPDATE SET
			name = EXCLUDED.name,
			country = EXCLUDED.country,
			updated_at = now()`

	if _, err := r.db.ExecContext(ctx, query, item.ID, item.Name, item.Country); err != nil {
		return competition.Competition{}, fmt.Errorf("upsert competition: %w", err)
	}

	return item, nil
}

func competitionFromRow(row competitionTableModel) competition.Competition {
	return competition.Competition{
		ID:      row.PublicID,
		Name:    row.Name,
		Country: row.Country,
	}
}
