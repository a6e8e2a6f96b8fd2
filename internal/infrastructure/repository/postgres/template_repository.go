package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/tomasbot/matchday/internal/domain/patternkit"
)

type templateTableModel struct {
	ID        int64     `db:"id"`
	Type      string    `db:"template_type"`
	Body      []byte    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type TemplateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) ListTemplates(ctx context.Context) ([]patternkit.Template, error) {
	const query = `SELECT * FROM pattern_kit_templates ORDER BY template_type`

	var rows []templateTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select templates: %w", err)
	}

	out := make([]patternkit.Template, 0, len(rows))
	for _, row := range rows {
		item, err := templateFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *TemplateRepository) GetTemplateByType(ctx context.Context, typeName string) (patternkit.Template, bool, error) {
	const query = `SELECT * FROM pattern_kit_templates WHERE template_type = $1`

	var row templateTableModel
	if err := r.db.GetContext(ctx, &row, query, typeName); err != nil {
		if isNotFound(err) {
			return patternkit.Template{}, false, nil
		}
		return patternkit.Template{}, false, fmt.Errorf("select template by type: %w", err)
	}

	item, err := templateFromRow(row)
	if err != nil {
		return patternkit.Template{}, false, err
	}

	return item, true, nil
}

func (r *TemplateRepository) SaveTemplate(ctx context.Context, item patternkit.Template) (patternkit.Template, error) {
	body, err := sonic.Marshal(item)
	if err != nil {
		return patternkit.Template{}, fmt.Errorf("encode template: %w", err)
	}

	const query = `
		INSERT INTO pattern_kit_templates (template_type, body, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (template_type) DO UPDATE SET
			body = EXCLUDED.body,
			updated_at = now()`

	if _, err := r.db.ExecContext(ctx, query, item.Type, body); err != nil {
		return patternkit.Template{}, fmt.Errorf("upsert template: %w", err)
	}

	return item, nil
}

func templateFromRow(row templateTableModel) (patternkit.Template, error) {
	var item patternkit.Template
	if err := sonic.Unmarshal(row.Body, &item); err != nil {
		return patternkit.Template{}, fmt.Errorf("decode template %q: %w", row.Type, err)
	}

	return item, nil
}
