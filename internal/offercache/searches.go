package offercache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/cache"
)

// DefaultSearchTTL is how long a supplier's search result set is reused.
const DefaultSearchTTL = 5 * time.Minute

const searchPrefix = "search:"

// Searches caches per-supplier search result sets keyed by a digest of the normalized request.
type Searches struct {
	store cache.Store
	ttl   time.Duration
}

// NewSearches creates a search-result cache. A non-positive ttl uses DefaultSearchTTL.
func NewSearches(store cache.Store, ttl time.Duration) *Searches {
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}
	return &Searches{store: store, ttl: ttl}
}

// TTL returns the configured entry lifetime.
func (s *Searches) TTL() time.Duration {
	return s.ttl
}

type searchKey struct {
	Supplier      string   `json:"s"`
	Origin        string   `json:"o"`
	Destination   string   `json:"d"`
	DepartureDate string   `json:"dd"`
	ReturnDate    string   `json:"rd"`
	Adults        int      `json:"a"`
	Children      int      `json:"c"`
	Infants       int      `json:"i"`
	Cabin         string   `json:"cb"`
	Filters       []string `json:"f,omitempty"`
}

// Key returns the fixed-length cache key for a supplier and request.
// Filters are part of the key since some suppliers apply them server side.
func Key(supplier string, req domain.SearchRequest) string {
	k := searchKey{
		Supplier:      supplier,
		Origin:        strings.ToUpper(req.Origin),
		Destination:   strings.ToUpper(req.Destination),
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        req.Adults,
		Children:      req.Children,
		Infants:       req.Infants,
		Cabin:         string(req.Cabin),
	}
	for name, value := range req.Filters {
		k.Filters = append(k.Filters, name+"="+value)
	}
	sort.Strings(k.Filters)

	data, _ := json.Marshal(k)
	sum := sha256.Sum256(data)
	return searchPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached result set for supplier and req.
func (s *Searches) Get(ctx context.Context, supplier string, req domain.SearchRequest) ([]domain.NormalizedOffer, bool, error) {
	data, found, err := s.store.Get(ctx, Key(supplier, req))
	if err != nil || !found {
		return nil, false, err
	}

	var offers []domain.NormalizedOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, false, fmt.Errorf("decode search result: %w", err)
	}
	return offers, true, nil
}

// Put caches a result set. Empty result sets are cached too.
func (s *Searches) Put(ctx context.Context, supplier string, req domain.SearchRequest, offers []domain.NormalizedOffer) error {
	if offers == nil {
		offers = []domain.NormalizedOffer{}
	}
	data, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("encode search result: %w", err)
	}
	return s.store.Put(ctx, Key(supplier, req), data, s.ttl)
}
