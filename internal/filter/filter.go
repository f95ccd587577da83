// Package filter derives the visible subset of a listing page from the
// active category. The engine holds no I/O: the base list is fetched once
// per page load and every category change recomputes Visible from scratch.
package filter

import (
	"slices"

	"homefinder/internal/model"
)

// Visible returns the listings tagged with active, in their original order.
// An empty active category returns base unchanged. When nothing matches the
// result is an empty, non-nil slice.
func Visible(base []model.Listing, active model.Category) []model.Listing {
	if active == model.CategoryNone {
		return base
	}

	out := []model.Listing{}
	for _, l := range base {
		if Matches(l, active) {
			out = append(out, l)
		}
	}
	return out
}

// Matches reports whether l passes the active category
func Matches(l model.Listing, active model.Category) bool {
	return active == model.CategoryNone || l.HasCategory(active)
}

// Engine holds an immutable base list and the active category
type Engine struct {
	base   []model.Listing
	active model.Category
}

// New creates an engine over a private copy of base with no active filter
func New(base []model.Listing) *Engine {
	return &Engine{base: slices.Clone(base)}
}

// Active returns the current category, CategoryNone when unfiltered
func (e *Engine) Active() model.Category {
	return e.active
}

// Next returns the category Select(value) would leave active
func (e *Engine) Next(value model.Category) model.Category {
	if !value.Valid() {
		value = model.CategoryNone
	}
	if value == e.active {
		return model.CategoryNone
	}
	return value
}

// Select toggles value: choosing the active category clears the filter.
// Values outside the enumerated set behave like "All".
func (e *Engine) Select(value model.Category) {
	e.active = e.Next(value)
}

// Visible returns the subset for the active category
func (e *Engine) Visible() []model.Listing {
	return Visible(e.base, e.active)
}

// Len returns the size of the base list
func (e *Engine) Len() int {
	return len(e.base)
}

// Button is one entry of the category bar
type Button struct {
	Title  string
	Value  model.Category
	Active bool
	Next   model.Category // category after clicking this button
}

// Buttons returns the category bar: All followed by every enumerated tag
func (e *Engine) Buttons() []Button {
	values := append([]model.Category{model.CategoryNone}, model.Categories...)
	buttons := make([]Button, len(values))
	for i, v := range values {
		buttons[i] = Button{
			Title:  v.Title(),
			Value:  v,
			Active: v == e.active,
			Next:   e.Next(v),
		}
	}
	return buttons
}
