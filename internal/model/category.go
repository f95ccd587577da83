package model

// Category classifies a listing's transaction type
type Category string

// Category constants
const (
	CategoryNone            Category = ""
	CategoryBuy             Category = "buy"
	CategoryRent            Category = "rent"
	CategoryVacationRentals Category = "vacation-rentals"
	CategoryLuxury          Category = "luxury"
	CategoryCommercial      Category = "commercial"
)

// Categories is the enumerated tag set, in display order
var Categories = []Category{
	CategoryBuy,
	CategoryRent,
	CategoryVacationRentals,
	CategoryLuxury,
	CategoryCommercial,
}

var categoryTitles = map[Category]string{
	CategoryNone:            "All",
	CategoryBuy:             "Buy",
	CategoryRent:            "Rent",
	CategoryVacationRentals: "Vacation Rentals",
	CategoryLuxury:          "Luxury",
	CategoryCommercial:      "Commercial",
}

// Valid reports whether c is one of the enumerated tags
func (c Category) Valid() bool {
	return c != CategoryNone && categoryTitles[c] != ""
}

// Title returns the button label for c
func (c Category) Title() string {
	if title, ok := categoryTitles[c]; ok {
		return title
	}
	return string(c)
}

// ParseCategory maps free text to a category; anything outside the
// enumerated set yields CategoryNone.
func ParseCategory(s string) Category {
	c := Category(s)
	if c.Valid() {
		return c
	}
	return CategoryNone
}
