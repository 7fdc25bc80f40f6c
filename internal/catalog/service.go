package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"roomassistant/internal/gateway"
	"roomassistant/internal/logging"
)

// PriceFilter carries the optional price bounds applied to catalog fetches.
// Values travel as raw strings; empty means unset, matching the backend's
// query contract.
type PriceFilter struct {
	Min string
	Max string
}

// Service wraps the catalog fetch actions behind the gateway.
type Service struct {
	gw     gateway.Caller
	logger *slog.Logger
}

// NewService constructs a catalog service.
func NewService(gw gateway.Caller, logger *slog.Logger) *Service {
	return &Service{
		gw:     gw,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}
}

// Dashboard fetches the sectioned item feed for the home view.
func (s *Service) Dashboard(ctx context.Context, filter PriceFilter) (Bundle, error) {
	env, err := s.gw.Call(ctx, "getDashboardData", map[string]string{
		"minPrice": filter.Min,
		"maxPrice": filter.Max,
	}, gateway.MethodGet)
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}
	return DecodeBundle(env.Data)
}

// Ranking fetches the ranked item list for one genre. The returned bundle
// carries a single section labeled with the genre's display name.
func (s *Service) Ranking(ctx context.Context, genreID, genreName string, filter PriceFilter) (Bundle, error) {
	env, err := s.gw.Call(ctx, "getRanking", map[string]string{
		"genreId":  genreID,
		"minPrice": filter.Min,
		"maxPrice": filter.Max,
	}, gateway.MethodGet)
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}
	items, err := DecodeItems(env.Data)
	if err != nil {
		return nil, err
	}
	return SingleSection(genreName, items), nil
}

// Search runs one search submission and labels the resulting section after
// the query mode.
func (s *Service) Search(ctx context.Context, query Query) (Bundle, error) {
	keyword := query.wireKeyword()
	s.logger.Debug("search",
		logging.String("mode", string(query.Mode)),
		logging.String("keyword", keyword))

	env, err := s.gw.Call(ctx, "searchItems", map[string]string{
		"keyword":  keyword,
		"genreId":  "",
		"minPrice": query.Filter.Min,
		"maxPrice": query.Filter.Max,
	}, gateway.MethodPost)
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}
	items, err := DecodeItems(env.Data)
	if err != nil {
		return nil, err
	}
	return SingleSection(query.SectionLabel(), items), nil
}

// SectionLabel is the heading a search result renders under.
func (q Query) SectionLabel() string {
	if q.Mode == QueryURL {
		return "URL search results"
	}
	return fmt.Sprintf("Search results for %q", q.wireKeyword())
}
