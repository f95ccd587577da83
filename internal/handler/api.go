package handler

import (
	"net/http"
	"strings"
	"time"

	"homefinder/internal/filter"
	"homefinder/internal/logging"
	"homefinder/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIHandler serves listings as JSON
type APIHandler struct {
	listings ListingFinder
	timeout  time.Duration
	logger   *zap.Logger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(listings ListingFinder, timeout time.Duration, logger *zap.Logger) *APIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{
		listings: listings,
		timeout:  timeout,
		logger:   logger,
	}
}

// List handles GET /api/v1/listings?keyword=&category=
func (h *APIHandler) List(c *gin.Context) {
	startTime := time.Now()

	var query model.ListingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request: " + err.Error()})
		return
	}
	keyword := strings.TrimSpace(query.Keyword)

	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	listings, err := fetchListings(ctx, h.listings, keyword)
	if err != nil {
		h.fail(c, err)
		return
	}

	category := model.ParseCategory(query.Category)
	results := filter.Visible(listings, category)
	if results == nil {
		results = []model.Listing{}
	}

	c.JSON(http.StatusOK, model.ListingsResponse{
		Results:  results,
		Total:    len(results),
		Keyword:  keyword,
		Category: category,
		Took:     time.Since(startTime).Milliseconds(),
	})
}

// Get handles GET /api/v1/listings/:slug
func (h *APIHandler) Get(c *gin.Context) {
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	listing, err := h.listings.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if listing == nil {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "Listing not found"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// NotFound handles unknown API routes
func (h *APIHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "API endpoint not found"})
}

func (h *APIHandler) fail(c *gin.Context, err error) {
	h.logger.Error("listing query failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", logging.RequestID(c)),
		zap.Error(err),
	)

	status := http.StatusInternalServerError
	if isQueryFailure(err) {
		status = http.StatusBadGateway
	}
	c.JSON(status, model.ErrorResponse{Error: "Failed to load listings"})
}
