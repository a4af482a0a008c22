package models

// Query assembly limits.
const (
	maxQueryTables = 10
	maxQueryLimit  = 1000
)

// QueryRequest is the payload for structured SELECT assembly and
// execution. The first table is the FROM table; joins, filters and
// aggregations are passed through as SQL fragments.
type QueryRequest struct {
	Tables       []string `json:"tables"`
	Joins        []string `json:"joins,omitempty"`
	Filters      []string `json:"filters,omitempty"`
	Aggregations []string `json:"aggregations,omitempty"`
	GroupBy      []string `json:"group_by,omitempty"`
	OrderBy      string   `json:"order_by,omitempty"`
	Limit        int      `json:"limit,omitempty"`
}

// Validate checks QueryRequest fields and applies the default row limit.
func (r *QueryRequest) Validate() error {
	if len(r.Tables) == 0 {
		return ErrMissingTables
	}

	if len(r.Tables) > maxQueryTables {
		return ErrFieldTooLong("tables", maxQueryTables)
	}

	for _, t := range r.Tables {
		if t == "" {
			return ErrMissingTable
		}

		if len(t) > 255 {
			return ErrFieldTooLong("table", 255)
		}
	}

	if r.Limit <= 0 {
		r.Limit = 100
	}

	if r.Limit > maxQueryLimit {
		r.Limit = maxQueryLimit
	}

	return nil
}

// QueryResult is the outcome of executing an assembled SELECT.
type QueryResult struct {
	Query    string           `json:"query"`
	Rows     []map[string]any `json:"data"`
	RowCount int              `json:"row_count"`
	Tables   []string         `json:"tables"`
}

// ExploreRequest is the payload for the ranked neighborhood endpoint.
type ExploreRequest struct {
	StartTable string `json:"start_table"`
	Query      string `json:"query"`
	K          int    `json:"k,omitempty"`
	MaxTables  int    `json:"max_tables,omitempty"`
}

// Validate checks ExploreRequest fields and applies defaults.
func (r *ExploreRequest) Validate() error {
	if r.StartTable == "" {
		return ErrMissingStartTable
	}

	if len(r.StartTable) > 255 {
		return ErrFieldTooLong("start_table", 255)
	}

	if r.K <= 0 {
		r.K = 2
	}

	if r.K > 5 {
		r.K = 5
	}

	if r.MaxTables <= 0 {
		r.MaxTables = 5
	}

	return nil
}
