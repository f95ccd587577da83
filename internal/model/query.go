package model

// ListingQuery represents the query parameters accepted by listing pages and the API
type ListingQuery struct {
	Keyword  string `form:"keyword"`
	Category string `form:"category"`
}

// ListingsResponse represents the JSON listing collection response
type ListingsResponse struct {
	Results  []Listing `json:"results"`
	Total    int       `json:"total"`
	Keyword  string    `json:"keyword,omitempty"`
	Category Category  `json:"category,omitempty"`
	Took     int64     `json:"took_ms"` // Response time in milliseconds
}

// ErrorResponse represents a JSON error body
type ErrorResponse struct {
	Error string `json:"error"`
}
