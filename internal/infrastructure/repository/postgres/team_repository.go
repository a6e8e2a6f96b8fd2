package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tomasbot/matchday/internal/domain/team"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	const query = `
		SELECT * FROM teams
		WHERE lower(name) = lower($1)`

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by name: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	const query = `SELECT * FROM teams ORDER BY name`

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) (team.Team, error) {
	const query = `
		INSERT INTO teams (public_id, name, country, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (public_id) DO UPDATE SET
			name = EXCLUDED.name,
			country = EXCLUDED.country,
			updated_at = now()`

	if _, err := r.db.ExecContext(ctx, query, item.ID, item.Name, item.Country); err != nil {
		return team.Team{}, fmt.Errorf("upsert team: %w", err)
	}

	return item, nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:      row.PublicID,
		Name:    row.Name,
		Country: row.Country,
	}
}
