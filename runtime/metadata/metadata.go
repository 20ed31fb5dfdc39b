// Package metadata holds the explicit entity descriptions the model layer
// uses to map Go structs onto tables.
package metadata

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/satishbabariya/sqlkit/internal/debug"
)

// ErrMissingEntityMetadata is returned when an entity was never registered.
var ErrMissingEntityMetadata = errors.New("missing entity metadata")

// ErrInvalidMetadata is returned by Register for incomplete descriptions.
var ErrInvalidMetadata = errors.New("invalid entity metadata")

// RelationType classifies a relation between two entities.
type RelationType string

const (
	OneToOne   RelationType = "OneToOne"
	OneToMany  RelationType = "OneToMany"
	ManyToOne  RelationType = "ManyToOne"
	ManyToMany RelationType = "ManyToMany"
)

// ColumnMetadata maps a struct field to a column. Name defaults to Property.
type ColumnMetadata struct {
	Property string
	Name     string
	Type     string
}

// RelationMetadata describes a relation declared on an entity.
type RelationMetadata struct {
	Type     RelationType
	Property string
	Target   string
	Inverse  string
	FKColumn string
	OnDelete string
	OnUpdate string
}

// EntityMetadata describes one entity: its table, columns, primary keys
// (property names) and relations.
type EntityMetadata struct {
	Name        string
	Table       string
	Columns     []ColumnMetadata
	PrimaryKeys []string
	Relations   []RelationMetadata
}

// Column returns the column registered for property.
func (e EntityMetadata) Column(property string) (ColumnMetadata, bool) {
	for _, c := range e.Columns {
		if c.Property == property {
			return c, true
		}
	}
	return ColumnMetadata{}, false
}

// IsPrimaryKey reports whether property is part of the primary key.
func (e EntityMetadata) IsPrimaryKey(property string) bool {
	for _, pk := range e.PrimaryKeys {
		if pk == property {
			return true
		}
	}
	return false
}

func (e EntityMetadata) normalize() (EntityMetadata, error) {
	if e.Name == "" {
		return e, fmt.Errorf("%w: entity name must not be empty", ErrInvalidMetadata)
	}
	if e.Table == "" {
		return e, fmt.Errorf("%w: %s: table name must not be empty", ErrInvalidMetadata, e.Name)
	}

	out := e
	out.Columns = make([]ColumnMetadata, len(e.Columns))
	seen := make(map[string]bool, len(e.Columns))
	for i, c := range e.Columns {
		if c.Property == "" {
			return e, fmt.Errorf("%w: %s: column %d has no property", ErrInvalidMetadata, e.Name, i)
		}
		if seen[c.Property] {
			return e, fmt.Errorf("%w: %s: duplicate property %q", ErrInvalidMetadata, e.Name, c.Property)
		}
		seen[c.Property] = true
		if c.Name == "" {
			c.Name = c.Property
		}
		out.Columns[i] = c
	}
	for _, pk := range e.PrimaryKeys {
		if !seen[pk] {
			return e, fmt.Errorf("%w: %s: primary key %q is not a registered column", ErrInvalidMetadata, e.Name, pk)
		}
	}
	for _, r := range e.Relations {
		if r.Property == "" || r.Target == "" {
			return e, fmt.Errorf("%w: %s: relation needs a property and a target", ErrInvalidMetadata, e.Name)
		}
	}
	out.PrimaryKeys = append([]string(nil), e.PrimaryKeys...)
	out.Relations = append([]RelationMetadata(nil), e.Relations...)
	return out, nil
}

// Registry stores entity metadata by entity name. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	entities map[string]EntityMetadata
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entities: make(map[string]EntityMetadata)}
}

// Register adds or replaces an entity description.
func (r *Registry) Register(e EntityMetadata) error {
	e, err := e.normalize()
	if err != nil {
		debug.Error("metadata registration failed", "entity", e.Name, "error", err)
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entities[e.Name]; ok {
		debug.Debug("entity metadata replaced", "entity", e.Name, "table", e.Table)
	} else {
		debug.Debug("entity metadata registered", "entity", e.Name, "table", e.Table)
	}
	r.entities[e.Name] = e
	return nil
}

// AddRelation appends a relation to an already registered entity.
func (r *Registry) AddRelation(entity string, rel RelationMetadata) error {
	if rel.Property == "" || rel.Target == "" {
		return fmt.Errorf("%w: %s: relation needs a property and a target", ErrInvalidMetadata, entity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entities[entity]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingEntityMetadata, entity)
	}
	e.Relations = append(e.Relations, rel)
	r.entities[entity] = e
	return nil
}

// Lookup returns the metadata registered under name.
func (r *Registry) Lookup(name string) (EntityMetadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entities[name]
	if !ok {
		return EntityMetadata{}, fmt.Errorf("%w: %s", ErrMissingEntityMetadata, name)
	}
	return e, nil
}

// Names lists the registered entities in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entities))
	for name := range r.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
