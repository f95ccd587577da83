package service

import (
	"fmt"
	"strings"

	"homefinder/internal/config"
)

// Query parameter names shared by every dialect
const (
	ParamType    = "type"
	ParamKeyword = "keyword"
	ParamSlug    = "slug"
)

// Queries renders store-specific query text for listing lookups.
// User input only ever travels through the named parameters above.
type Queries interface {
	// Published selects published listings, optionally restricted by the keyword param
	Published(withKeyword bool) string
	// BySlug selects at most one listing by the slug param
	BySlug(requirePublished bool) string
	// KeywordParam converts a trimmed keyword to the bound parameter value
	KeywordParam(keyword string) string
}

// QueriesFor returns the dialect for a configured content backend
func QueriesFor(backend string) (Queries, error) {
	switch backend {
	case config.BackendSanity:
		return GROQQueries{}, nil
	case config.BackendPostgres:
		return SQLQueries{SubstringFunc: "strpos"}, nil
	case config.BackendSQLite:
		return SQLQueries{SubstringFunc: "instr"}, nil
	default:
		return nil, fmt.Errorf("no query dialect for backend %q", backend)
	}
}

const groqProjection = `{
  _id,
  title,
  slug,
  location,
  address,
  price,
  "imageUrl": image.asset->url,
  description,
  bedrooms,
  bathrooms,
  sqFeet,
  propertySize,
  categories,
  features,
  "images": images[].asset->url
}`

// GROQQueries targets the hosted content lake query language
type GROQQueries struct{}

// Published implements Queries
func (GROQQueries) Published(withKeyword bool) string {
	var sb strings.Builder
	sb.WriteString(`*[_type == $type && isPublished == true`)
	if withKeyword {
		sb.WriteString(` && (title match $keyword || location match $keyword)`)
	}
	sb.WriteString("] ")
	sb.WriteString(groqProjection)
	return sb.String()
}

// BySlug implements Queries
func (GROQQueries) BySlug(requirePublished bool) string {
	var sb strings.Builder
	sb.WriteString(`*[_type == $type && slug.current == $slug`)
	if requirePublished {
		sb.WriteString(` && isPublished == true`)
	}
	sb.WriteString("][0] ")
	sb.WriteString(groqProjection)
	return sb.String()
}

// KeywordParam wraps the keyword in match wildcards
func (GROQQueries) KeywordParam(keyword string) string {
	return "*" + keyword + "*"
}

// SQLQueries targets the documents table (see repository.Schema).
// SubstringFunc is the dialect's position function: strpos (PostgreSQL) or instr (SQLite).
type SQLQueries struct {
	SubstringFunc string
}

// Published implements Queries
func (q SQLQueries) Published(withKeyword bool) string {
	var sb strings.Builder
	sb.WriteString(`SELECT body FROM documents WHERE doc_type = :type AND published = TRUE`)
	if withKeyword {
		fmt.Fprintf(&sb, ` AND (%[1]s(title, :keyword) > 0 OR %[1]s(location, :keyword) > 0)`, q.SubstringFunc)
	}
	sb.WriteString(` ORDER BY created_at, id`)
	return sb.String()
}

// BySlug implements Queries
func (q SQLQueries) BySlug(requirePublished bool) string {
	var sb strings.Builder
	sb.WriteString(`SELECT body FROM documents WHERE doc_type = :type AND slug = :slug`)
	if requirePublished {
		sb.WriteString(` AND published = TRUE`)
	}
	sb.WriteString(` ORDER BY created_at, id LIMIT 1`)
	return sb.String()
}

// KeywordParam returns the keyword unchanged; it is matched as a literal substring
func (SQLQueries) KeywordParam(keyword string) string {
	return keyword
}
