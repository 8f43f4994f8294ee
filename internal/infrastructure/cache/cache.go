// Package cache provides the look-aside cache for compliance results and
// regulation reads. Backend failures are never surfaced to callers; every
// failure degrades to a miss so the service keeps working without a cache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/pkg/constants"
)

// Store is a byte-oriented cache backend. Implementations log their own
// failures; Get reports a plain miss on any error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Ping(ctx context.Context) error
	Close() error
}

// keyProfile is the canonical subset of a business profile that determines
// an evaluation outcome. Persisted IDs and timestamps are excluded so two
// identical profiles share a cache entry.
type keyProfile struct {
	Industry      string  `json:"industry"`
	State         string  `json:"state"`
	County        string  `json:"county"`
	City          string  `json:"city"`
	ZipCode       string  `json:"zipCode"`
	Size          string  `json:"size"`
	EmployeeCount int     `json:"employeeCount"`
	AnnualRevenue float64 `json:"annualRevenue"`
	BusinessType  string  `json:"businessType"`
}

// ComplianceKey derives the cache key for a profile's evaluation result.
func ComplianceKey(profile *models.BusinessProfile) string {
	canonical, _ := json.Marshal(keyProfile{
		Industry:      profile.Industry,
		State:         profile.Location.State,
		County:        profile.Location.County,
		City:          profile.Location.City,
		ZipCode:       profile.Location.ZipCode,
		Size:          string(profile.Size),
		EmployeeCount: profile.EmployeeCount,
		AnnualRevenue: profile.AnnualRevenue,
		BusinessType:  profile.BusinessType,
	})
	sum := sha256.Sum256(canonical)
	return fmt.Sprintf("%s:%s", constants.CacheKeyComplianceScan, hex.EncodeToString(sum[:]))
}

// RegulationKey derives the cache key for a single regulation read.
func RegulationKey(id int64) string {
	return fmt.Sprintf("%s:%d", constants.CacheKeyRegulation, id)
}

// Manager layers typed accessors over a Store.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager wraps a store with the configured TTL. A zero TTL falls back to
// the default.
func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}
	return &Manager{store: store, ttl: ttl}
}

// GetComplianceResult returns a cached evaluation result, if present.
func (m *Manager) GetComplianceResult(ctx context.Context, key string) (*models.ComplianceResult, bool) {
	data, ok := m.store.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var result models.ComplianceResult
	if err := json.Unmarshal(data, &result); err != nil {
		m.store.Delete(ctx, key)
		return nil, false
	}
	return &result, true
}

// SetComplianceResult caches an evaluation result under the profile key.
func (m *Manager) SetComplianceResult(ctx context.Context, key string, result *models.ComplianceResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	m.store.Set(ctx, key, data, m.ttl)
}

// GetRegulation returns a cached regulation, if present.
func (m *Manager) GetRegulation(ctx context.Context, id int64) (*models.Regulation, bool) {
	data, ok := m.store.Get(ctx, RegulationKey(id))
	if !ok {
		return nil, false
	}
	var reg models.Regulation
	if err := json.Unmarshal(data, &reg); err != nil {
		m.store.Delete(ctx, RegulationKey(id))
		return nil, false
	}
	return &reg, true
}

// SetRegulation caches a regulation by ID.
func (m *Manager) SetRegulation(ctx context.Context, reg *models.Regulation) {
	data, err := json.Marshal(reg)
	if err != nil {
		return
	}
	m.store.Set(ctx, RegulationKey(reg.ID), data, m.ttl)
}

// Ping checks backend health.
func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}

// Close releases backend resources.
func (m *Manager) Close() error {
	return m.store.Close()
}
