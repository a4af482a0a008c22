// Package models defines the data types shared across schemascout.
package models

// Cardinality describes the multiplicity of a relationship edge in its
// stored direction.
type Cardinality string

// Relationship cardinalities. A declared foreign key is many-to-one from
// the child table to the parent; its mirror edge is one-to-many.
const (
	ManyToOne Cardinality = "many_to_one"
	OneToMany Cardinality = "one_to_many"
)

// Relationship kinds.
const (
	// KindForeignKey marks an edge backed by a declared FK constraint.
	KindForeignKey = "foreign_key"
	// KindInferred marks an edge guessed from column-name similarity.
	// Inferred edges always carry confidence below 1.0.
	KindInferred = "inferred"
)

// Relationship is one directed edge in the schema graph. Edges are
// immutable once the graph is built.
type Relationship struct {
	Kind        string      `json:"type"`
	FromTable   string      `json:"from_table"`
	FromColumn  string      `json:"from_column"`
	ToTable     string      `json:"to_table"`
	ToColumn    string      `json:"to_column"`
	Cardinality Cardinality `json:"cardinality,omitempty"`
	Confidence  float64     `json:"confidence"`
}

// Reversed returns the mirror edge stored in the reverse adjacency:
// same endpoints, flipped cardinality.
func (r Relationship) Reversed() Relationship {
	rev := r
	switch r.Cardinality {
	case ManyToOne:
		rev.Cardinality = OneToMany
	case OneToMany:
		rev.Cardinality = ManyToOne
	}
	return rev
}
