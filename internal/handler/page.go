package handler

import (
	"net/http"
	"strings"
	"time"

	"homefinder/internal/filter"
	"homefinder/internal/logging"
	"homefinder/internal/model"
	"homefinder/internal/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const browsePath = "/property"

// PageHandler renders the HTML pages
type PageHandler struct {
	listings ListingFinder
	site     view.Site
	timeout  time.Duration
	logger   *zap.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(listings ListingFinder, site view.Site, timeout time.Duration, logger *zap.Logger) *PageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageHandler{
		listings: listings,
		site:     site,
		timeout:  timeout,
		logger:   logger,
	}
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	var query model.ListingQuery
	_ = c.ShouldBindQuery(&query)

	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	listings, err := h.listings.GetAllPublished(ctx)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, view.HomePage, h.listingPage("", "", query.Category, listings, "/"))
}

// Browse handles GET /property?keyword=&category=
func (h *PageHandler) Browse(c *gin.Context) {
	var query model.ListingQuery
	_ = c.ShouldBindQuery(&query)
	keyword := strings.TrimSpace(query.Keyword)

	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	listings, err := fetchListings(ctx, h.listings, keyword)
	if err != nil {
		h.renderError(c, err)
		return
	}

	title := "Properties"
	if keyword != "" {
		title = "Search Results for " + keyword
	}
	c.HTML(http.StatusOK, view.BrowsePage, h.listingPage(title, keyword, query.Category, listings, browsePath))
}

// Detail handles GET /property/:slug
func (h *PageHandler) Detail(c *gin.Context) {
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	listing, err := h.listings.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	if listing == nil {
		h.NotFound(c)
		return
	}

	c.HTML(http.StatusOK, view.DetailPage, view.DetailPageData{
		Site:    h.site,
		Title:   listing.Title,
		Listing: listing,
	})
}

// NotFound renders the 404 page
func (h *PageHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, view.NotFoundPage, view.MessagePageData{
		Site:    h.site,
		Title:   "Not found",
		Message: "The property you are looking for does not exist or is no longer available.",
	})
}

func (h *PageHandler) listingPage(title, keyword, category string, listings []model.Listing, basePath string) view.ListingPageData {
	engine := filter.New(listings)
	engine.Select(model.ParseCategory(category))

	return view.ListingPageData{
		Site:     h.site,
		Title:    title,
		Keyword:  keyword,
		Total:    engine.Len(),
		Shown:    len(engine.Visible()),
		Active:   engine.Active(),
		Buttons:  engine.Buttons(),
		Listings: listings,
		BasePath: basePath,
	}
}

func (h *PageHandler) renderError(c *gin.Context, err error) {
	h.logger.Error("failed to load listings",
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", logging.RequestID(c)),
		zap.Error(err),
	)

	status := http.StatusInternalServerError
	if isQueryFailure(err) {
		status = http.StatusBadGateway
	}
	c.HTML(status, view.ErrorPage, view.MessagePageData{
		Site:    h.site,
		Title:   "Error",
		Message: "We could not load properties right now. Please try again later.",
	})
}
