package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homefinder/internal/model"
	"homefinder/internal/repository"

	"go.uber.org/zap"
)

// ListingService retrieves published listings from the content store
type ListingService struct {
	client                  repository.Client
	queries                 Queries
	normalizer              *Normalizer
	documentType            string
	detailRequiresPublished bool
	logger                  *zap.Logger
}

// ListingOptions tunes a ListingService
type ListingOptions struct {
	DocumentType            string
	DetailRequiresPublished bool
}

// NewListingService creates a new listing service
func NewListingService(
	client repository.Client,
	queries Queries,
	normalizer *Normalizer,
	opts ListingOptions,
	logger *zap.Logger,
) *ListingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if normalizer == nil {
		normalizer = NewNormalizer(logger)
	}
	if opts.DocumentType == "" {
		opts.DocumentType = "property"
	}
	return &ListingService{
		client:                  client,
		queries:                 queries,
		normalizer:              normalizer,
		documentType:            opts.DocumentType,
		detailRequiresPublished: opts.DetailRequiresPublished,
		logger:                  logger,
	}
}

// GetAllPublished returns every published listing in store order
func (s *ListingService) GetAllPublished(ctx context.Context) ([]model.Listing, error) {
	return s.GetPublished(ctx, "")
}

// GetPublished returns published listings whose title or location contains keyword.
// A blank keyword applies no filter.
func (s *ListingService) GetPublished(ctx context.Context, keyword string) ([]model.Listing, error) {
	keyword = strings.TrimSpace(keyword)

	params := map[string]string{ParamType: s.documentType}
	if keyword != "" {
		params[ParamKeyword] = s.queries.KeywordParam(keyword)
	}

	docs, err := s.client.Fetch(ctx, s.queries.Published(keyword != ""), params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}

	return s.normalizeAll(docs), nil
}

// GetBySlug returns the listing whose slug equals slug exactly, or nil when there is none
func (s *ListingService) GetBySlug(ctx context.Context, slug string) (*model.Listing, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, nil
	}

	docs, err := s.client.Fetch(ctx, s.queries.BySlug(s.detailRequiresPublished), map[string]string{
		ParamType: s.documentType,
		ParamSlug: slug,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing %q: %w", slug, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	listing, err := s.normalizer.Normalize(docs[0])
	if err != nil {
		s.logMalformed(docs[0], err)
		return nil, nil
	}
	return listing, nil
}

// normalizeAll shapes docs into listings, skipping malformed and duplicate records
func (s *ListingService) normalizeAll(docs []model.Document) []model.Listing {
	listings := make([]model.Listing, 0, len(docs))
	seen := make(map[string]bool, len(docs))

	for _, doc := range docs {
		listing, err := s.normalizer.Normalize(doc)
		if err != nil {
			s.logMalformed(doc, err)
			continue
		}
		if seen[listing.ID] {
			s.logger.Warn("skipping duplicate listing", zap.String("id", listing.ID))
			continue
		}
		seen[listing.ID] = true
		listings = append(listings, *listing)
	}

	return listings
}

func (s *ListingService) logMalformed(doc model.Document, err error) {
	if !errors.Is(err, ErrMalformedRecord) {
		s.logger.Error("failed to normalize listing", zap.String("id", doc.ID()), zap.Error(err))
		return
	}
	s.logger.Warn("excluding malformed listing", zap.String("id", doc.ID()), zap.Error(err))
}
