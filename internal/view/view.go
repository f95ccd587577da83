package view

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"strings"

	"homefinder/internal/filter"
	"homefinder/internal/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names
const (
	HomePage     = "home"
	BrowsePage   = "browse"
	DetailPage   = "detail"
	NotFoundPage = "not_found"
	ErrorPage    = "error"
)

// Site carries layout-wide settings
type Site struct {
	Name                string
	FallbackDescription string
	HeroImageURL        string
}

// ListingPageData feeds the home and browse templates. Listings is the full
// base list; cards outside the active category render hidden.
type ListingPageData struct {
	Site     Site
	Title    string
	Keyword  string
	Total    int
	Shown    int // cards visible under Active
	Active   model.Category
	Buttons  []filter.Button
	Listings []model.Listing
	BasePath string
}

// DetailPageData feeds the detail template
type DetailPageData struct {
	Site    Site
	Title   string
	Listing *model.Listing
}

// MessagePageData feeds the not-found and error templates
type MessagePageData struct {
	Site    Site
	Title   string
	Message string
}

// Card is one listing tile with its resolved summary line
type Card struct {
	Listing model.Listing
	Summary string
	Visible bool
}

// Cards pairs each listing with its summary, preserving order. Visible marks
// the cards that pass the active category.
func Cards(listings []model.Listing, active model.Category, fallback string) []Card {
	cards := make([]Card, len(listings))
	for i, l := range listings {
		cards[i] = Card{
			Listing: l,
			Summary: l.Summary(fallback),
			Visible: filter.Matches(l, active),
		}
	}
	return cards
}

var printer = message.NewPrinter(language.English)

// New parses the embedded page templates
func New() (*template.Template, error) {
	tmpl, err := template.New("pages").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// Funcs returns the helpers available to templates
func Funcs() template.FuncMap {
	return template.FuncMap{
		"price":       FormatPrice,
		"number":      FormatNumber,
		"richText":    RenderRichText,
		"categoryURL": CategoryURL,
		"categories":  CategoryAttr,
		"plural":      Plural,
		"has": func(l model.Listing, c string) bool {
			return l.HasCategory(model.Category(c))
		},
		"cards": Cards,
		"add": func(a, b int) int { return a + b },
	}
}

// FormatPrice renders a price with locale grouping, e.g. $1,250,000
func FormatPrice(price float64) string {
	if price != math.Trunc(price) {
		return printer.Sprintf("$%.2f", price)
	}
	if price < math.MaxInt64 {
		return printer.Sprintf("$%d", int64(price))
	}
	return printer.Sprintf("$%.0f", price)
}

// FormatNumber renders a count or area with grouping and no trailing zeros
func FormatNumber(v float64) string {
	if v != math.Trunc(v) {
		return printer.Sprintf("%.1f", v)
	}
	if v < math.MaxInt64 {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%.0f", v)
}

// Plural picks the singular or plural noun for n
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// CategoryAttr joins the tags for a data attribute
func CategoryAttr(categories []model.Category) string {
	parts := make([]string, len(categories))
	for i, c := range categories {
		parts[i] = string(c)
	}
	return strings.Join(parts, " ")
}

// CategoryURL builds the link a category button points at
func CategoryURL(basePath, keyword string, next model.Category) template.URL {
	var params []string
	if keyword != "" {
		params = append(params, "keyword="+template.URLQueryEscaper(keyword))
	}
	if next != model.CategoryNone {
		params = append(params, "category="+template.URLQueryEscaper(string(next)))
	}
	if len(params) == 0 {
		return template.URL(basePath)
	}
	return template.URL(basePath + "?" + strings.Join(params, "&"))
}

var blockTags = map[string]string{
	"h1":         "h2",
	"h2":         "h3",
	"h3":         "h4",
	"h4":         "h5",
	"blockquote": "blockquote",
}

var markTags = map[string]string{
	"strong":    "strong",
	"em":        "em",
	"code":      "code",
	"underline": "u",
}

// RenderRichText renders text blocks as escaped HTML. Unknown marks are
// dropped and non-text nodes are skipped.
func RenderRichText(doc model.RichText) template.HTML {
	var sb strings.Builder
	for _, block := range doc {
		if block.Type != model.BlockType {
			continue
		}
		tag, ok := blockTags[block.Style]
		if !ok {
			tag = "p"
		}

		sb.WriteString("<" + tag + ">")
		for _, span := range block.Children {
			var closers []string
			for _, mark := range span.Marks {
				if mt, ok := markTags[mark]; ok {
					sb.WriteString("<" + mt + ">")
					closers = append(closers, "</"+mt+">")
				}
			}
			sb.WriteString(template.HTMLEscapeString(span.Text))
			for i := len(closers) - 1; i >= 0; i-- {
				sb.WriteString(closers[i])
			}
		}
		sb.WriteString("</" + tag + ">")
	}
	return template.HTML(sb.String())
}
