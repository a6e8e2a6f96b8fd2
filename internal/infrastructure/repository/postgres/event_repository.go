package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/tomasbot/matchday/internal/domain/event"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Upsert is keyed on the natural key: a repeat refresh of the same match
// updates the stored payload and keeps the original public id.
func (r *EventRepository) Upsert(ctx context.Context, item *event.Event) (*event.Event, error) {
	payload, err := sonic.Marshal(payloadFromEvent(item))
	if err != nil {
		return nil, fmt.Errorf("encode event payload: %w", err)
	}

	const query = `
		INSERT INTO events (public_id, natural_key, kind, event_date, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (natural_key) DO UPDATE SET
			kind = EXCLUDED.kind,
			event_date = EXCLUDED.event_date,
			payload = EXCLUDED.payload,
			updated_at = now()
		RETURNING public_id`

	var publicID string
	if err := r.db.QueryRowContext(ctx, query,
		item.ID, item.NaturalKey(), string(item.Kind), item.Date, payload,
	).Scan(&publicID); err != nil {
		return nil, fmt.Errorf("upsert event: %w", err)
	}

	item.ID = publicID
	return item, nil
}

func (r *EventRepository) List(ctx context.Context) ([]*event.Event, error) {
	const query = `SELECT * FROM events ORDER BY event_date DESC, public_id`

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}

	out := make([]*event.Event, 0, len(rows))
	for _, row := range rows {
		item, err := eventFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*event.Event, bool, error) {
	const query = `SELECT * FROM events WHERE public_id = $1`

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select event by id: %w", err)
	}

	item, err := eventFromRow(row)
	if err != nil {
		return nil, false, err
	}

	return item, true, nil
}

func eventFromRow(row eventTableModel) (*event.Event, error) {
	var payload eventPayload
	if err := sonic.Unmarshal(row.Payload, &payload); err != nil {
		return nil, fmt.Errorf("decode event %q payload: %w", row.PublicID, err)
	}

	return eventFromPayload(row.PublicID, payload)
}
