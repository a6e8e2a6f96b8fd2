package postgres

import "time"

type dataSourceTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	PluginID  string    `db:"plugin_id"`
	Title     string    `db:"title"`
	BaseURI   string    `db:"base_uri"`
	Type      string    `db:"source_type"`
	Enabled   bool      `db:"enabled"`
	Pack      []byte    `db:"pack"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
