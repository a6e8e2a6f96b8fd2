package synonym

import "context"

// Repository describes synonym registry persistence. SaveProperName must
// reject a synonym whose name already denotes a different canonical
// entity, or already exists as another proper name, with a conflict
// error; it never overwrites silently.
type Repository interface {
	SaveProperName(ctx context.Context, item ProperName) (ProperName, error)
	ListProperNames(ctx context.Context) ([]ProperName, error)
	FindProperNameByName(ctx context.Context, name string) (ProperName, bool, error)
	FindSynonymByName(ctx context.Context, name string) (Synonym, bool, error)
	FindProperNameBySynonym(ctx context.Context, name string) (ProperName, bool, error)
	DeleteProperName(ctx context.Context, id string) error
}
