package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/tomasbot/matchday/internal/domain/datasource"
	"github.com/tomasbot/matchday/internal/domain/patternkit"
)

type DataSourceRepository struct {
	db *sqlx.DB
}

func NewDataSourceRepository(db *sqlx.DB) *DataSourceRepository {
	return &DataSourceRepository{db: db}
}

func (r *DataSourceRepository) List(ctx context.Context) ([]datasource.DataSource, error) {
	const query = `SELECT * FROM data_sources ORDER BY plugin_id, public_id`
	return r.selectMany(ctx, query)
}

func (r *DataSourceRepository) ListByPlugin(ctx context.Context, pluginID string) ([]datasource.DataSource, error) {
	const query = `SELECT * FROM data_sources WHERE plugin_id = $1 ORDER BY public_id`
	return r.selectMany(ctx, query, pluginID)
}

func (r *DataSourceRepository) GetByID(ctx context.Context, id string) (datasource.DataSource, bool, error) {
	const query = `SELECT * FROM data_sources WHERE public_id = $1`

	var row dataSourceTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return datasource.DataSource{}, false, nil
		}
		return datasource.DataSource{}, false, fmt.Errorf("select data source by id: %w", err)
	}

	item, err := dataSourceFromRow(row)
	if err != nil {
		return datasource.DataSource{}, false, err
	}

	return item, true, nil
}

func (r *DataSourceRepository) Save(ctx context.Context, item datasource.DataSource) (datasource.DataSource, error) {
	var pack []byte
	if item.Pack != nil {
		encoded, err := sonic.Marshal(item.Pack)
		if err != nil {
			return datasource.DataSource{}, fmt.Errorf("encode pattern pack: %w", err)
		}
		pack = encoded
	}

	const query = `
		INSERT INTO data_sources (public_id, plugin_id, title, base_uri, source_type, enabled, pack, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (public_id) DO UPDATE SET
			plugin_id = EXCLUDED.plugin_id,
			title = EXCLUDED.title,
			base_uri = EXCLUDED.base_uri,
			source_type = EXCLUDED.source_type,
			enabled = EXCLUDED.enabled,
			pack = EXCLUDED.pack,
			updated_at = now()`

	if _, err := r.db.ExecContext(ctx, query,
		item.ID, item.PluginID, item.Title, item.BaseURI, item.Type, item.Enabled, pack,
	); err != nil {
		return datasource.DataSource{}, fmt.Errorf("upsert data source: %w", err)
	}

	return item, nil
}

func (r *DataSourceRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM data_sources WHERE public_id = $1`, id); err != nil {
		return fmt.Errorf("delete data source: %w", err)
	}
	return nil
}

func (r *DataSourceRepository) selectMany(ctx context.Context, query string, args ...any) ([]datasource.DataSource, error) {
	var rows []dataSourceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select data sources: %w", err)
	}

	out := make([]datasource.DataSource, 0, len(rows))
	for _, row := range rows {
		item, err := dataSourceFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

func dataSourceFromRow(row dataSourceTableModel) (datasource.DataSource, error) {
	item := datasource.DataSource{
		ID:       row.PublicID,
		PluginID: row.PluginID,
		Title:    row.Title,
		BaseURI:  row.BaseURI,
		Type:     row.Type,
		Enabled:  row.Enabled,
	}
	if len(row.Pack) > 0 {
		var pack patternkit.Pack
		if err := sonic.Unmarshal(row.Pack, &pack); err != nil {
			return datasource.DataSource{}, fmt.Errorf("decode pattern pack for %q: %w", row.PublicID, err)
		}
		item.Pack = &pack
	}

	return item, nil
}
