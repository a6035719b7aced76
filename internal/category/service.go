package category

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/google/uuid"
)

type Service struct {
	repo     RepositoryAPI
	taxonomy *TaxonomyStore
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, taxonomy *TaxonomyStore, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		taxonomy: taxonomy,
		logger:   logger,
	}
}

// ListCategoryNames returns the distinct category names in the owner's
// ledger, sorted.
func (s *Service) ListCategoryNames(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	pairs, err := s.repo.DistinctPairs(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list categories", "owner_id", ownerID, "error", err)
		return nil, err
	}

	seen := make(map[string]struct{})
	names := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		if _, ok := seen[pair.Category]; ok {
			continue
		}
		seen[pair.Category] = struct{}{}
		names = append(names, pair.Category)
	}
	sort.Strings(names)

	return names, nil
}

// ListCategoriesWithSubcategories groups the distinct subcategories under
// each category. Categories recorded without any subcategory map to an
// empty list.
func (s *Service) ListCategoriesWithSubcategories(ctx context.Context, ownerID uuid.UUID) (map[string][]string, error) {
	pairs, err := s.repo.DistinctPairs(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list categories", "owner_id", ownerID, "error", err)
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, nil
	}

	grouped := make(map[string][]string)
	for _, pair := range pairs {
		if _, ok := grouped[pair.Category]; !ok {
			grouped[pair.Category] = []string{}
		}
		if pair.Subcategory == nil {
			continue
		}
		if !contains(grouped[pair.Category], *pair.Subcategory) {
			grouped[pair.Category] = append(grouped[pair.Category], *pair.Subcategory)
		}
	}

	return grouped, nil
}

// Taxonomy returns the static reference document, re-read per call.
func (s *Service) Taxonomy() (json.RawMessage, error) {
	doc, err := s.taxonomy.Load()
	if err != nil {
		s.logger.Error("failed to load category taxonomy", "error", err)
		return nil, err
	}
	return doc, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
