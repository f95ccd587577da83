package service

import (
	"testing"

	"homefinder/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueriesFor(t *testing.T) {
	groq, err := QueriesFor(config.BackendSanity)
	require.NoError(t, err)
	assert.IsType(t, GROQQueries{}, groq)

	pg, err := QueriesFor(config.BackendPostgres)
	require.NoError(t, err)
	assert.Equal(t, SQLQueries{SubstringFunc: "strpos"}, pg)

	lite, err := QueriesFor(config.BackendSQLite)
	require.NoError(t, err)
	assert.Equal(t, SQLQueries{SubstringFunc: "instr"}, lite)

	_, err = QueriesFor("mongo")
	assert.Error(t, err)
}

func TestGROQQueries(t *testing.T) {
	q := GROQQueries{}

	all := q.Published(false)
	assert.Contains(t, all, `*[_type == $type && isPublished == true] {`)
	assert.NotContains(t, all, "$keyword")
	assert.Contains(t, all, `"imageUrl": image.asset->url`)

	filtered := q.Published(true)
	assert.Contains(t, filtered, `(title match $keyword || location match $keyword)`)

	assert.Contains(t, q.BySlug(false), `slug.current == $slug][0]`)
	assert.NotContains(t, q.BySlug(false), "isPublished")
	assert.Contains(t, q.BySlug(true), `slug.current == $slug && isPublished == true][0]`)

	assert.Equal(t, "*Bondi*", q.KeywordParam("Bondi"))
}

func TestSQLQueries(t *testing.T) {
	q := SQLQueries{SubstringFunc: "strpos"}

	assert.Equal(t,
		`SELECT body FROM documents WHERE doc_type = :type AND published = TRUE ORDER BY created_at, id`,
		q.Published(false))
	assert.Equal(t,
		`SELECT body FROM documents WHERE doc_type = :type AND published = TRUE`+
			` AND (strpos(title, :keyword) > 0 OR strpos(location, :keyword) > 0) ORDER BY created_at, id`,
		q.Published(true))
	assert.Equal(t,
		`SELECT body FROM documents WHERE doc_type = :type AND slug = :slug ORDER BY created_at, id LIMIT 1`,
		q.BySlug(false))
	assert.Contains(t, q.BySlug(true), `AND published = TRUE`)
	assert.Equal(t, "50% off", q.KeywordParam("50% off"))
}
