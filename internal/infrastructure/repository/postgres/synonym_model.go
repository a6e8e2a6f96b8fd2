package postgres

import "time"

type properNameTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type synonymTableModel struct {
	ID           int64     `db:"id"`
	PublicID     string    `db:"public_id"`
	Name         string    `db:"name"`
	ProperNameID string    `db:"proper_name_public_id"`
	CreatedAt    time.Time `db:"created_at"`
}
