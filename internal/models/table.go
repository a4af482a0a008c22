package models

// TableInfo is the per-table metadata held by the schema graph.
// Built once during graph construction, immutable afterwards.
type TableInfo struct {
	Name            string `json:"name"`
	RowCount        int64  `json:"row_count"`
	ColumnCount     int    `json:"column_count"`
	HasPrimaryKey   bool   `json:"has_pk"`
	ForeignKeyCount int    `json:"fk_count"`
}

// Column describes one column as reported by the catalog.
type Column struct {
	Name     string `json:"name"`
	DataType string `json:"type"`
	Nullable bool   `json:"nullable"`
	Default  string `json:"default,omitempty"`
}

// ForeignKey is a declared FK constraint as reported by the catalog.
// Multi-column constraints are reported with all columns; the graph
// builder uses the first column of each side.
type ForeignKey struct {
	ConstraintName     string   `json:"constraint_name,omitempty"`
	ConstrainedColumns []string `json:"constrained_columns"`
	ReferredTable      string   `json:"referred_table"`
	ReferredColumns    []string `json:"referred_columns"`
}

// TableSchema is the full catalog view of one table.
type TableSchema struct {
	TableName   string       `json:"table_name"`
	Columns     []Column     `json:"columns"`
	PrimaryKey  []string     `json:"primary_key"`
	ForeignKeys []ForeignKey `json:"foreign_keys"`
}
