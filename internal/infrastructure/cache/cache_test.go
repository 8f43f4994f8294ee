package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizcomply/bizcomply/internal/config"
	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/internal/infrastructure/monitoring"
	"github.com/bizcomply/bizcomply/pkg/constants"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

func testMetrics() *monitoring.Metrics {
	return monitoring.NewMetrics(prometheus.NewRegistry())
}

func sampleProfile() *models.BusinessProfile {
	return &models.BusinessProfile{
		Name:     "Cache Test Co",
		Industry: constants.IndustryRetail,
		Location: models.Location{
			State: "CA", County: "Kern", City: "Bakersfield", ZipCode: "93301",
		},
		Size:          constants.SizeSmall,
		EmployeeCount: 6,
		AnnualRevenue: 250_000,
		BusinessType:  "Sole Proprietorship",
	}
}

func sampleResult() *models.ComplianceResult {
	return &models.ComplianceResult{
		Business:        *sampleProfile(),
		ComplianceScore: 91,
		RiskLevel:       constants.RiskLow,
		NextDeadlines:   []string{"2026-10-01"},
		Recommendations: []string{"Maintain detailed records of all compliance activities"},
	}
}

func TestComplianceKey(t *testing.T) {
	t.Run("identical profiles share a key", func(t *testing.T) {
		a, b := sampleProfile(), sampleProfile()
		b.ID = 42
		b.Name = "Different Name"
		assert.Equal(t, ComplianceKey(a), ComplianceKey(b))
	})

	t.Run("attribute changes produce distinct keys", func(t *testing.T) {
		a, b := sampleProfile(), sampleProfile()
		b.EmployeeCount = 7
		assert.NotEqual(t, ComplianceKey(a), ComplianceKey(b))
	})
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	manager := NewManager(NewMemoryStore(time.Minute, testMetrics()), time.Minute)
	ctx := context.Background()

	key := ComplianceKey(sampleProfile())
	_, found := manager.GetComplianceResult(ctx, key)
	assert.False(t, found)

	manager.SetComplianceResult(ctx, key, sampleResult())

	cached, found := manager.GetComplianceResult(ctx, key)
	require.True(t, found)
	assert.Equal(t, 91, cached.ComplianceScore)
	assert.Equal(t, constants.RiskLow, cached.RiskLevel)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	server := miniredis.RunT(t)

	store, err := NewRedisStore(context.Background(), &config.RedisConfig{
		Addr: server.Addr(),
	}, logger.NewNoop(), testMetrics())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	manager := NewManager(store, time.Minute)
	ctx := context.Background()

	reg := &models.Regulation{
		ID:       7,
		Title:    "Bakersfield Business Tax Certificate",
		Category: constants.CategoryBusinessLicensing,
	}
	manager.SetRegulation(ctx, reg)

	cached, found := manager.GetRegulation(ctx, 7)
	require.True(t, found)
	assert.Equal(t, reg.Title, cached.Title)

	t.Run("entries expire", func(t *testing.T) {
		server.FastForward(2 * time.Minute)
		_, found := manager.GetRegulation(ctx, 7)
		assert.False(t, found)
	})

	t.Run("backend failure degrades to miss", func(t *testing.T) {
		manager.SetRegulation(ctx, reg)
		server.SetError("connection refused")
		_, found := manager.GetRegulation(ctx, 7)
		assert.False(t, found)
		server.SetError("")
	})
}

func TestNoopStore(t *testing.T) {
	manager := NewManager(NewNoopStore(), time.Minute)
	ctx := context.Background()

	key := ComplianceKey(sampleProfile())
	manager.SetComplianceResult(ctx, key, sampleResult())
	_, found := manager.GetComplianceResult(ctx, key)
	assert.False(t, found)
	assert.NoError(t, manager.Ping(ctx))
}
