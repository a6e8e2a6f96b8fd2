// Package correction defines the visitor tables the alias-resolution pass
// walks. Entities expose their correctable fields explicitly instead of
// being inspected at runtime, so the correction service stays generic
// without reflection.
package correction

// Mode controls what happens when a correctable field is empty.
type Mode int

const (
	// ModeRequired rejects the entity when the field is nil.
	ModeRequired Mode = iota
	// ModeIfPresent corrects the field only when it carries a value.
	ModeIfPresent
)

// Named is any entity with a canonical display name.
type Named interface {
	CanonicalName() string
}

// FieldRef is one correctable field of an entity: typed accessors plus the
// lookup kind used to find an already-persisted canonical counterpart.
type FieldRef struct {
	// Name identifies the field in error messages.
	Name string
	// Kind selects the registered canonical lookup ("team", "competition").
	Kind string
	Mode Mode
	// Get returns nil (not a typed-nil interface) when the field is unset.
	Get func() Named
	// Set replaces the field value; fails if the concrete type is wrong.
	Set func(Named) error
}

// Correctable is implemented by entities that participate in alias
// resolution after parsing.
type Correctable interface {
	CorrectableFields() []FieldRef
}
