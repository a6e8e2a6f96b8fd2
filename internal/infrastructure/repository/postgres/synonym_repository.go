package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tomasbot/matchday/internal/domain/synonym"
	"github.com/tomasbot/matchday/internal/platform/id"
)

// SynonymRepository persists the canonical-name registry. Word uniqueness
// across proper names and synonyms is enforced twice: a cross-table check
// inside the save transaction, and lower(name) unique indexes as the
// backstop. Both surface as synonym.ErrNameConflict.
type SynonymRepository struct {
	db    *sqlx.DB
	idgen id.Generator
}

func NewSynonymRepository(db *sqlx.DB, idgen id.Generator) *SynonymRepository {
	if idgen == nil {
		idgen = id.NewRandomGenerator()
	}
	return &SynonymRepository{db: db, idgen: idgen}
}

func (r *SynonymRepository) SaveProperName(ctx context.Context, item synonym.ProperName) (synonym.ProperName, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return synonym.ProperName{}, fmt.Errorf("begin save proper name: %w", err)
	}
	defer tx.Rollback()

	words := make([]string, 0, len(item.Synonyms)+1)
	words = append(words, item.Name)
	for _, syn := range item.Synonyms {
		words = append(words, syn.Name)
	}
	for _, word := range words {
		owner, taken, err := wordOwner(ctx, tx, word)
		if err != nil {
			return synonym.ProperName{}, err
		}
		if taken && owner != item.ID {
			return synonym.ProperName{}, fmt.Errorf("%w: %q", synonym.ErrNameConflict, word)
		}
	}

	const upsertProperName = `
		INSERT INTO proper_names (public_id, name, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (public_id) DO UPDATE SET
			name = EXCLUDED.name,
			updated_at = now()`

	if _, err := tx.ExecContext(ctx, upsertProperName, item.ID, item.Name); err != nil {
		if isUniqueViolation(err) {
			return synonym.ProperName{}, fmt.Errorf("%w: %q", synonym.ErrNameConflict, item.Name)
		}
		return synonym.ProperName{}, fmt.Errorf("upsert proper name: %w", err)
	}

	// Synonyms are replaced wholesale; partial edits go through the admin
	// surface as a full proper-name update.
	if _, err := tx.ExecContext(ctx, `DELETE FROM synonyms WHERE proper_name_public_id = $1`, item.ID); err != nil {
		return synonym.ProperName{}, fmt.Errorf("clear synonyms: %w", err)
	}

	const insertSynonym = `
		INSERT INTO synonyms (public_id, name, proper_name_public_id, created_at)
		VALUES ($1, $2, $3, now())`

	for i := range item.Synonyms {
		if item.Synonyms[i].ID == "" {
			generated, err := r.idgen.NewID()
			if err != nil {
				return synonym.ProperName{}, fmt.Errorf("generate synonym id: %w", err)
			}
			item.Synonyms[i].ID = generated
		}
		item.Synonyms[i].ProperNameID = item.ID

		if _, err := tx.ExecContext(ctx, insertSynonym, item.Synonyms[i].ID, item.Synonyms[i].Name, item.ID); err != nil {
			if isUniqueViolation(err) {
				return synonym.ProperName{}, fmt.Errorf("%w: %q", synonym.ErrNameConflict, item.Synonyms[i].Name)
			}
			return synonym.ProperName{}, fmt.Errorf("insert synonym: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return synonym.ProperName{}, fmt.Errorf("commit save proper name: %w", err)
	}

	return item, nil
}

func (r *SynonymRepository) ListProperNames(ctx context.Context) ([]synonym.ProperName, error) {
	const query = `SELECT * FROM proper_names ORDER BY name`

	var rows []properNameTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select proper names: %w", err)
	}

	out := make([]synonym.ProperName, 0, len(rows))
	for _, row := range rows {
		item := synonym.ProperName{ID: row.PublicID, Name: row.Name}
		synonyms, err := r.synonymsFor(ctx, row.PublicID)
		if err != nil {
			return nil, err
		}
		item.Synonyms = synonyms
		out = append(out, item)
	}

	return out, nil
}

func (r *SynonymRepository) FindProperNameByName(ctx context.Context, name string) (synonym.ProperName, bool, error) {
	const query = `
		SELECT * FROM proper_names
		WHERE lower(name) = lower($1)`

	var row properNameTableModel
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if isNotFound(err) {
			return synonym.ProperName{}, false, nil
		}
		return synonym.ProperName{}, false, fmt.Errorf("select proper name by name: %w", err)
	}

	synonyms, err := r.synonymsFor(ctx, row.PublicID)
	if err != nil {
		return synonym.ProperName{}, false, err
	}

	return synonym.ProperName{ID: row.PublicID, Name: row.Name, Synonyms: synonyms}, true, nil
}

func (r *SynonymRepository) FindSynonymByName(ctx context.Context, name string) (synonym.Synonym, bool, error) {
	const query = `
		SELECT * FROM synonyms
		WHERE lower(name) = lower($1)`

	var row synonymTableModel
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if isNotFound(err) {
			return synonym.Synonym{}, false, nil
		}
		return synonym.Synonym{}, false, fmt.Errorf("select synonym by name: %w", err)
	}

	return synonym.Synonym{ID: row.PublicID, Name: row.Name, ProperNameID: row.ProperNameID}, true, nil
}

func (r *SynonymRepository) FindProperNameBySynonym(ctx context.Context, name string) (synonym.ProperName, bool, error) {
	const query = `
		SELECT p.* FROM proper_names p
		JOIN synonyms s ON s.proper_name_public_id = p.public_id
		WHERE lower(s.name) = lower($1)`

	var row properNameTableModel
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if isNotFound(err) {
			return synonym.ProperName{}, false, nil
		}
		return synonym.ProperName{}, false, fmt.Errorf("select proper name by synonym: %w", err)
	}

	synonyms, err := r.synonymsFor(ctx, row.PublicID)
	if err != nil {
		return synonym.ProperName{}, false, err
	}

	return synonym.ProperName{ID: row.PublicID, Name: row.Name, Synonyms: synonyms}, true, nil
}

func (r *SynonymRepository) DeleteProperName(ctx context.Context, properNameID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete proper name: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM synonyms WHERE proper_name_public_id = $1`, properNameID); err != nil {
		return fmt.Errorf("delete synonyms: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM proper_names WHERE public_id = $1`, properNameID); err != nil {
		return fmt.Errorf("delete proper name: %w", err)
	}

	return tx.Commit()
}

func (r *SynonymRepository) synonymsFor(ctx context.Context, properNameID string) ([]synonym.Synonym, error) {
	const query = `
		SELECT * FROM synonyms
		WHERE proper_name_public_id = $1
		ORDER BY name`

	var rows []synonymTableModel
	if err := r.db.SelectContext(ctx, &rows, query, properNameID); err != nil {
		return nil, fmt.Errorf("select synonyms: %w", err)
	}

	out := make([]synonym.Synonym, 0, len(rows))
	for _, row := range rows {
		out = append(out, synonym.Synonym{ID: row.PublicID, Name: row.Name, ProperNameID: row.ProperNameID})
	}

	return out, nil
}

func wordOwner(ctx context.Context, tx *sqlx.Tx, word string) (string, bool, error) {
	const query = `
		SELECT public_id FROM proper_names WHERE lower(name) = lower($1)
		UNION
		SELECT proper_name_public_id FROM synonyms WHERE lower(name) = lower($1)`

	var owners []string
	if err := tx.SelectContext(ctx, &owners, query, word); err != nil {
		return "", false, fmt.Errorf("check word %q: %w", word, err)
	}
	if len(owners) == 0 {
		return "", false, nil
	}

	return owners[0], true, nil
}
