package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"homefinder/internal/model"

	"go.uber.org/zap"
)

// ErrMalformedRecord marks a document missing a mandatory field
var ErrMalformedRecord = errors.New("malformed record")

// Normalizer maps loosely typed store documents onto model.Listing
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer creates a new normalizer. Dropped optional values are logged at debug.
func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{logger: logger}
}

func malformed(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrMalformedRecord, field, reason)
}

// Normalize converts doc into a listing. It never performs I/O.
func (n *Normalizer) Normalize(doc model.Document) (*model.Listing, error) {
	if doc == nil {
		return nil, malformed("document", "is empty")
	}

	id, ok := doc["_id"].(string)
	if !ok || strings.TrimSpace(id) == "" {
		return nil, malformed("_id", "is missing")
	}

	title, ok := doc["title"].(string)
	if !ok {
		return nil, malformed("title", "is missing")
	}

	slug := slugOf(doc["slug"])
	if strings.TrimSpace(slug) == "" {
		return nil, malformed("slug", "is missing")
	}

	price, present, valid := number(doc["price"])
	if !present {
		return nil, malformed("price", "is missing")
	}
	if !valid || price < 0 {
		return nil, malformed("price", fmt.Sprintf("is invalid: %v", doc["price"]))
	}

	listing := &model.Listing{
		ID:    id,
		Title: title,
		Slug:  slug,
		Price: price,
	}

	listing.Location = firstString(doc, "location", "address")
	if image := firstString(doc, "imageUrl", "mainImage"); image != "" {
		listing.ImageURL = &image
	}

	listing.Bedrooms = n.count(id, doc, "bedrooms")
	listing.Bathrooms = n.count(id, doc, "bathrooms")
	listing.FloorArea = n.area(id, doc, "sqFeet")
	if listing.FloorArea == nil {
		listing.FloorArea = n.area(id, doc, "propertySize")
	}

	listing.Categories = n.categories(id, doc["categories"])
	listing.Features = stringList(doc["features"])
	listing.Images = stringList(doc["images"])
	listing.Description = n.richText(id, doc["description"])

	return listing, nil
}

// count reads an optional non-negative integer. nil means "not provided".
func (n *Normalizer) count(id string, doc model.Document, key string) *int {
	v, present, valid := number(doc[key])
	if !present {
		return nil
	}
	if !valid || v < 0 || v != math.Trunc(v) {
		n.logger.Debug("dropping invalid count", zap.String("id", id), zap.String("field", key), zap.Any("value", doc[key]))
		return nil
	}
	i := int(v)
	return &i
}

func (n *Normalizer) area(id string, doc model.Document, key string) *float64 {
	v, present, valid := number(doc[key])
	if !present {
		return nil
	}
	if !valid || v < 0 {
		n.logger.Debug("dropping invalid area", zap.String("id", id), zap.String("field", key), zap.Any("value", doc[key]))
		return nil
	}
	return &v
}

func (n *Normalizer) categories(id string, raw any) []model.Category {
	tags := stringList(raw)
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[model.Category]bool, len(tags))
	out := make([]model.Category, 0, len(tags))
	for _, tag := range tags {
		c := model.Category(tag)
		if !c.Valid() {
			n.logger.Debug("dropping unknown category", zap.String("id", id), zap.String("category", tag))
			continue
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (n *Normalizer) richText(id string, raw any) model.RichText {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return model.RichText{{
			Type:     model.BlockType,
			Style:    "normal",
			Children: []model.Span{{Type: "span", Text: v}},
		}}
	case []any:
		// round-trip through JSON so block fields follow their struct tags
		data, err := json.Marshal(v)
		if err != nil {
			n.logger.Debug("dropping undecodable description", zap.String("id", id), zap.Error(err))
			return nil
		}
		var blocks model.RichText
		if err := json.Unmarshal(data, &blocks); err != nil {
			n.logger.Debug("dropping undecodable description", zap.String("id", id), zap.Error(err))
			return nil
		}
		if blocks == nil {
			blocks = model.RichText{}
		}
		return blocks
	default:
		n.logger.Debug("dropping description of unexpected type", zap.String("id", id), zap.String("type", fmt.Sprintf("%T", raw)))
		return nil
	}
}

// number reports whether v is present (non-nil) and, if so, whether it is a finite number
func number(v any) (value float64, present, valid bool) {
	switch x := v.(type) {
	case nil:
		return 0, false, false
	case float64:
		value = x
	case float32:
		value = float64(x)
	case int:
		value = float64(x)
	case int64:
		value = float64(x)
	case int32:
		value = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, true, false
		}
		value = f
	default:
		return 0, true, false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, true, false
	}
	return value, true, true
}

// slugOf accepts both {"current": "..."} objects and plain strings
func slugOf(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case map[string]any:
		current, _ := s["current"].(string)
		return current
	case model.Document:
		current, _ := s["current"].(string)
		return current
	}
	return ""
}

func firstString(doc model.Document, keys ...string) string {
	for _, key := range keys {
		if s, ok := doc[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// stringList collects the string elements of a JSON array, skipping anything else
func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		if len(list) == 0 {
			return nil
		}
		return append([]string(nil), list...)
	case []any:
		var out []string
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
