package db

// SearchQuery is the input for a full-text FT.SEARCH call.
// Query is a fully built query string; the caller owns escaping.
type SearchQuery struct {
	IndexName    string
	Query        string
	Offset       int
	Limit        int
	ReturnFields []string
	WithScores   bool

	// SortBy overrides relevance ordering when set. The field must be SORTABLE.
	SortBy   string
	SortDesc bool

	HighlightFields []string
	HighlightOpen   string
	HighlightClose  string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
