package models

// Neighbor is one table discovered during BFS, paired with the edge
// that connected it to its parent in the BFS tree.
type Neighbor struct {
	Table        string       `json:"table"`
	Relationship Relationship `json:"relationship"`
}

// RankedTable is a neighbor after relevance scoring.
type RankedTable struct {
	Table        string       `json:"table"`
	Level        int          `json:"level"`
	Relationship Relationship `json:"relationship"`
	Score        float64      `json:"relevance_score"`
}

// ExploreResult is the output of a ranked neighborhood exploration:
// the flattened top-N tables plus the raw per-level breakdown.
type ExploreResult struct {
	StartTable string             `json:"start_table"`
	K          int                `json:"k"`
	TotalFound int                `json:"total_found"`
	Returned   int                `json:"returned"`
	Neighbors  []RankedTable      `json:"neighbors"`
	ByLevel    map[int][]Neighbor `json:"neighbors_by_level"`
}

// TableDegree pairs a table with its direct-neighbor count.
type TableDegree struct {
	Table       string `json:"table"`
	Connections int    `json:"connections"`
}

// GraphStats summarizes the built graph.
type GraphStats struct {
	TablesCount        int           `json:"tables_count"`
	RelationshipsCount int           `json:"relationships_count"`
	AvgConnections     float64       `json:"avg_connections_per_table"`
	MostConnected      []TableDegree `json:"most_connected_tables"`
	Initialized        bool          `json:"initialized"`
	Version            int           `json:"version"`
}
