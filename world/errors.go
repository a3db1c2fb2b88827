package world

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDimensions is returned for worlds narrower or shorter than one cell.
	ErrInvalidDimensions = errors.New("world: width and height must be at least 1")
	// ErrNameConflict marks exports blocked by duplicate entity or zone names.
	ErrNameConflict = errors.New("world: duplicate names")
)

// NameConflict lists the registry indices sharing one name.
type NameConflict struct {
	Kind    string
	Name    string
	Indices []int
}

// ValidationError reports every name conflict found during export.
type ValidationError struct {
	Conflicts []NameConflict
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s %q at %v", c.Kind, c.Name, c.Indices))
	}
	return fmt.Sprintf("world: duplicate names: %s", strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrNameConflict }

// ConstructionError records a model the provider could not build. The
// affected record keeps a placeholder model.
type ConstructionError struct {
	Kind string
	Ref  string
	Err  error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("world: build %s model %q: %v", e.Kind, e.Ref, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// DecodeError describes a document that cannot be turned into a world.
type DecodeError struct {
	Section string
	Index   int
	Reason  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("world: decode %s[%d]: %s", e.Section, e.Index, e.Reason)
}

// AssociationError is the panic value for attaching a record that already
// belongs to a world, or detaching one that does not belong to this world.
type AssociationError struct {
	Op   string
	Kind string
	Name string
}

func (e *AssociationError) Error() string {
	return fmt.Sprintf("world: %s %s %q: wrong owner", e.Op, e.Kind, e.Name)
}

// ImportReport collects recoverable problems met while building a world.
type ImportReport struct {
	Construction []*ConstructionError
}

// Err joins every recorded failure, or returns nil.
func (r *ImportReport) Err() error {
	if r == nil || len(r.Construction) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Construction))
	for _, c := range r.Construction {
		errs = append(errs, c)
	}
	return errors.Join(errs...)
}
