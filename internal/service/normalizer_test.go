package service

import (
	"encoding/json"
	"testing"

	"homefinder/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode builds a document the way the store clients do, through encoding/json
func decode(t *testing.T, raw string) model.Document {
	t.Helper()
	var doc model.Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func intPtr(v int) *int             { return &v }
func float64Ptr(v float64) *float64 { return &v }
func stringPtr(v string) *string    { return &v }

func TestNormalize_FullDocument(t *testing.T) {
	doc := decode(t, `{
		"_id": "p1",
		"title": "Harbour Loft",
		"slug": {"_type": "slug", "current": "harbour-loft"},
		"location": "Sydney",
		"price": 1250000,
		"imageUrl": "https://cdn.example.com/loft.jpg",
		"description": [
			{"_type": "block", "_key": "k1", "style": "normal",
			 "children": [{"_type": "span", "_key": "s1", "text": "Light-filled ", "marks": []},
			              {"_type": "span", "_key": "s2", "text": "loft", "marks": ["strong"]}]}
		],
		"bedrooms": 2,
		"bathrooms": 1,
		"sqFeet": 980.5,
		"categories": ["buy", "luxury"],
		"features": ["Balcony", "Harbour view"],
		"images": ["https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"]
	}`)

	got, err := NewNormalizer(nil).Normalize(doc)
	require.NoError(t, err)

	want := &model.Listing{
		ID:       "p1",
		Title:    "Harbour Loft",
		Slug:     "harbour-loft",
		Location: "Sydney",
		Price:    1250000,
		ImageURL: stringPtr("https://cdn.example.com/loft.jpg"),
		Description: model.RichText{{
			Type:  "block",
			Key:   "k1",
			Style: "normal",
			Children: []model.Span{
				{Type: "span", Key: "s1", Text: "Light-filled ", Marks: []string{}},
				{Type: "span", Key: "s2", Text: "loft", Marks: []string{"strong"}},
			},
		}},
		Bedrooms:   intPtr(2),
		Bathrooms:  intPtr(1),
		FloorArea:  float64Ptr(980.5),
		Categories: []model.Category{model.CategoryBuy, model.CategoryLuxury},
		Features:   []string{"Balcony", "Harbour view"},
		Images:     []string{"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Light-filled loft", got.Summary("fallback"))
}

func TestNormalize_AbsentVersusZero(t *testing.T) {
	n := NewNormalizer(nil)

	absent, err := n.Normalize(decode(t, `{"_id": "a", "title": "A", "slug": "a", "price": 1}`))
	require.NoError(t, err)
	assert.Nil(t, absent.Bedrooms)
	assert.Nil(t, absent.Bathrooms)
	assert.Nil(t, absent.FloorArea)

	zero, err := n.Normalize(decode(t, `{"_id": "z", "title": "Z", "slug": "z", "price": 0, "bedrooms": 0, "bathrooms": 0, "sqFeet": 0}`))
	require.NoError(t, err)
	require.NotNil(t, zero.Bedrooms)
	assert.Equal(t, 0, *zero.Bedrooms)
	require.NotNil(t, zero.Bathrooms)
	assert.Equal(t, 0, *zero.Bathrooms)
	require.NotNil(t, zero.FloorArea)
	assert.Equal(t, 0.0, *zero.FloorArea)
	assert.Equal(t, 0.0, zero.Price)

	explicitNull, err := n.Normalize(decode(t, `{"_id": "n", "title": "N", "slug": "n", "price": 5, "bedrooms": null}`))
	require.NoError(t, err)
	assert.Nil(t, explicitNull.Bedrooms)
}

func TestNormalize_OptionalFields(t *testing.T) {
	n := NewNormalizer(nil)

	t.Run("no image, description or categories", func(t *testing.T) {
		got, err := n.Normalize(decode(t, `{"_id": "a", "title": "A", "slug": "a", "price": 10, "categories": []}`))
		require.NoError(t, err)
		assert.Nil(t, got.ImageURL)
		assert.Nil(t, got.Description)
		assert.Nil(t, got.Categories)
		assert.Equal(t, "placeholder", got.Summary("placeholder"))
	})

	t.Run("detail projection aliases", func(t *testing.T) {
		got, err := n.Normalize(decode(t, `{"_id": "a", "title": "A", "slug": "a", "price": 10,
			"address": "12 Beach Rd", "propertySize": 1500, "mainImage": "https://img/x.jpg"}`))
		require.NoError(t, err)
		assert.Equal(t, "12 Beach Rd", got.Location)
		require.NotNil(t, got.FloorArea)
		assert.Equal(t, 1500.0, *got.FloorArea)
		require.NotNil(t, got.ImageURL)
		assert.Equal(t, "https://img/x.jpg", *got.ImageURL)
	})

	t.Run("invalid optional values become absent", func(t *testing.T) {
		got, err := n.Normalize(decode(t, `{"_id": "a", "title": "A", "slug": "a", "price": 10,
			"bedrooms": -1, "bathrooms": 1.5, "sqFeet": "big", "features": ["Pool", 3, ""]}`))
		require.NoError(t, err)
		assert.Nil(t, got.Bedrooms)
		assert.Nil(t, got.Bathrooms)
		assert.Nil(t, got.FloorArea)
		assert.Equal(t, []string{"Pool"}, got.Features)
	})

	t.Run("unknown and duplicate categories dropped", func(t *testing.T) {
		got, err := n.Normalize(decode(t, `{"_id": "a", "title": "A", "slug": "a", "price": 10,
			"categories": ["rent", "castle", "rent", 7]}`))
		require.NoError(t, err)
		assert.Equal(t, []model.Category{model.CategoryRent}, got.Categories)

		onlyUnknown, err := n.Normalize(decode(t, `{"_id": "b", "title": "B", "slug": "b", "price": 10, "categories": ["castle"]}`))
		require.NoError(t, err)
		assert.Nil(t, onlyUnknown.Categories)
	})

	t.Run("plain string description", func(t *testing.T) {
		got, err := n.Normalize(decode(t, `{"_id": "a", "title": "A", "slug": "a", "price": 10, "description": "Cosy cottage"}`))
		require.NoError(t, err)
		assert.Equal(t, "Cosy cottage", got.Summary("fallback"))
	})

	t.Run("undecodable description dropped", func(t *testing.T) {
		got, err := n.Normalize(decode(t, `{"_id": "a", "title": "A", "slug": "a", "price": 10, "description": [1, 2]}`))
		require.NoError(t, err)
		assert.Nil(t, got.Description)
	})

	t.Run("Go typed values", func(t *testing.T) {
		got, err := n.Normalize(model.Document{
			"_id": "g", "title": "G", "slug": map[string]any{"current": "g"},
			"price": 300, "bedrooms": int64(3), "features": []string{"Garage"},
		})
		require.NoError(t, err)
		assert.Equal(t, 300.0, got.Price)
		require.NotNil(t, got.Bedrooms)
		assert.Equal(t, 3, *got.Bedrooms)
		assert.Equal(t, []string{"Garage"}, got.Features)
	})
}

func TestNormalize_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{name: "missing id", raw: `{"title": "A", "slug": "a", "price": 1}`, field: "_id"},
		{name: "blank id", raw: `{"_id": "  ", "title": "A", "slug": "a", "price": 1}`, field: "_id"},
		{name: "missing title", raw: `{"_id": "a", "slug": "a", "price": 1}`, field: "title"},
		{name: "missing slug", raw: `{"_id": "a", "title": "A", "price": 1}`, field: "slug"},
		{name: "empty slug object", raw: `{"_id": "a", "title": "A", "slug": {"current": ""}, "price": 1}`, field: "slug"},
		{name: "blank slug", raw: `{"_id": "a", "title": "A", "slug": "  ", "price": 1}`, field: "slug"},
		{name: "missing price", raw: `{"_id": "a", "title": "A", "slug": "a"}`, field: "price"},
		{name: "null price", raw: `{"_id": "a", "title": "A", "slug": "a", "price": null}`, field: "price"},
		{name: "negative price", raw: `{"_id": "a", "title": "A", "slug": "a", "price": -5}`, field: "price"},
		{name: "string price", raw: `{"_id": "a", "title": "A", "slug": "a", "price": "1M"}`, field: "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewNormalizer(nil).Normalize(decode(t, tt.raw))
			require.ErrorIs(t, err, ErrMalformedRecord)
			assert.Contains(t, err.Error(), tt.field)
			assert.Nil(t, got)
		})
	}

	_, err := NewNormalizer(nil).Normalize(nil)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}
