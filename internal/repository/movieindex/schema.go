package movieindex

import "github.com/kailas-cloud/cinedex/internal/db"

// Schema returns the FT index definition over movie JSON documents.
// Names and credits are indexed verbatim (no stemming) since they are
// proper nouns; taxon slugs are tags, taxon names are text.
func Schema(n Names) *db.IndexDefinition {
	return db.NewIndex(n.Index()).
		OnJSON().
		Prefix(n.DocPrefix()).
		WithoutStopWords().
		WeightedText("$.name", "name", 5, true).Verbatim().
		WeightedText("$.origin_name", "origin_name", 3, false).Verbatim().
		Text("$.content", "content").
		WeightedText("$.actor[*]", "actor", 2, false).Verbatim().
		WeightedText("$.director[*]", "director", 2, false).Verbatim().
		Text("$.category[*].name", "category_name").
		Text("$.country[*].name", "country_name").
		Tag("$.slug", "slug").
		Tag("$.type", "type").
		Tag("$.status", "status").
		Tag("$.quality", "quality").
		Tag("$.lang", "lang").
		Tag("$.category[*].slug", "category").
		Tag("$.country[*].slug", "country").
		SortableNumeric("$.year", "year").
		SortableNumeric("$.view", "view").
		SortableNumeric("$.tmdb.vote_average", "vote_average").
		Numeric("$.tmdb.vote_count", "vote_count").
		SortableNumeric("$.created_at", "created_at").
		SortableNumeric("$.updated_at", "updated_at").
		Numeric("$.is_copyright", "is_copyright").
		Numeric("$.chieurap", "chieurap").
		Numeric("$.sub_docquyen", "sub_docquyen").
		Numeric("$.is_hidden", "is_hidden").
		MustBuild()
}
