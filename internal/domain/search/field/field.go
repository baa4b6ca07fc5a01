package field

import "strings"

// Type is how a searchable field is matched.
type Type string

// Field type constants.
const (
	// Text is analyzed free text: fuzzy on the index, substring on the store.
	Text    Type = "text"
	Tag     Type = "tag"
	Numeric Type = "numeric"
)

// Searchable field names. These are the keys accepted in "field:value" prefixes
// and in filter conditions.
const (
	Name       = "name"
	OriginName = "origin_name"
	Actor      = "actor"
	Director   = "director"
	Content    = "content"
	Category   = "category"
	Country    = "country"
	Year       = "year"
	Lang       = "lang"
	Status     = "status"
	MovieType  = "type"
	Slug       = "slug"
)

var types = map[string]Type{
	Name:       Text,
	OriginName: Text,
	Actor:      Text,
	Director:   Text,
	Content:    Text,
	Category:   Tag,
	Country:    Tag,
	Year:       Numeric,
	Lang:       Tag,
	Status:     Tag,
	MovieType:  Tag,
	Slug:       Tag,
}

// Lookup returns the type of a whitelisted field name (case-insensitive).
func Lookup(name string) (string, Type, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	t, ok := types[name]
	return name, t, ok
}

// Names returns the whitelist in a stable order.
func Names() []string {
	return []string{Name, OriginName, Actor, Director, Content, Category, Country, Year, Lang, Status, MovieType, Slug}
}
