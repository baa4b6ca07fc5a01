package movieindex

import "strings"

// Names derives index and key names from a key prefix such as "cinedex:".
type Names struct {
	prefix string
}

// NewNames creates key naming for the given prefix.
func NewNames(prefix string) Names {
	return Names{prefix: prefix}
}

// Index returns the FT index name.
func (n Names) Index() string { return n.prefix + "movies:idx" }

// DocPrefix returns the key prefix the index covers.
func (n Names) DocPrefix() string { return n.prefix + "movie:" }

// Key returns the document key for a movie id.
func (n Names) Key(id string) string { return n.DocPrefix() + id }

// ID strips the document prefix from a key.
func (n Names) ID(key string) string { return strings.TrimPrefix(key, n.DocPrefix()) }
