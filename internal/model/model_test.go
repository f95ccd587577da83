package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func block(texts ...string) Block {
	b := Block{Type: BlockType, Style: "normal"}
	for _, t := range texts {
		b.Children = append(b.Children, Span{Type: "span", Text: t})
	}
	return b
}

func TestRichText_PlainText(t *testing.T) {
	tests := []struct {
		name string
		doc  RichText
		want string
	}{
		{
			name: "two blocks joined by a single space",
			doc:  RichText{block("Hello "), block("world")},
			want: "Hello  world",
		},
		{
			name: "spans concatenated without separator",
			doc:  RichText{block("Sunny ", "corner ", "unit")},
			want: "Sunny corner unit",
		},
		{
			name: "marks ignored",
			doc: RichText{{
				Type:     BlockType,
				Children: []Span{{Text: "bold", Marks: []string{"strong"}}, {Text: " move"}},
			}},
			want: "bold move",
		},
		{
			name: "non-text nodes contribute nothing",
			doc:  RichText{block("a"), {Type: "image"}, block("b")},
			want: "a  b",
		},
		{
			name: "empty document",
			doc:  RichText{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.PlainText())
		})
	}
}

func TestListing_Summary(t *testing.T) {
	withoutDescription := Listing{}
	assert.Equal(t, "fallback", withoutDescription.Summary("fallback"))

	withDescription := Listing{Description: RichText{block("Quiet street")}}
	assert.Equal(t, "Quiet street", withDescription.Summary("fallback"))

	emptyDescription := Listing{Description: RichText{}}
	assert.Equal(t, "", emptyDescription.Summary("fallback"))
}

func TestListing_HasCategory(t *testing.T) {
	l := Listing{Categories: []Category{CategoryBuy, CategoryLuxury}}
	assert.True(t, l.HasCategory(CategoryLuxury))
	assert.False(t, l.HasCategory(CategoryRent))

	var uncategorized Listing
	assert.False(t, uncategorized.HasCategory(CategoryBuy))
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryVacationRentals, ParseCategory("vacation-rentals"))
	assert.Equal(t, CategoryNone, ParseCategory(""))
	assert.Equal(t, CategoryNone, ParseCategory("Buy"))
	assert.Equal(t, CategoryNone, ParseCategory("castle"))
	assert.Equal(t, "Vacation Rentals", CategoryVacationRentals.Title())
	assert.Equal(t, "All", CategoryNone.Title())
}

func TestDocument_Scan(t *testing.T) {
	var fromBytes Document
	require.NoError(t, fromBytes.Scan([]byte(`{"_id":"a","price":10}`)))
	assert.Equal(t, "a", fromBytes.ID())
	assert.Equal(t, float64(10), fromBytes["price"])

	var fromString Document
	require.NoError(t, fromString.Scan(`{"_id":"b"}`))
	assert.Equal(t, "b", fromString.ID())

	var fromNil Document
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)

	var bad Document
	assert.Error(t, bad.Scan(42))
}
