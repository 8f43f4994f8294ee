package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bizcomply/bizcomply/internal/config"
	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/internal/domain/repository"
	"github.com/bizcomply/bizcomply/pkg/constants"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

// TestPostgresIntegration exercises the full persistence stack against a real
// PostgreSQL instance. Gated on BIZCOMPLY_INTEGRATION_TESTS so the default
// test run stays docker-free.
func TestPostgresIntegration(t *testing.T) {
	if os.Getenv("BIZCOMPLY_INTEGRATION_TESTS") == "" {
		t.Skip("set BIZCOMPLY_INTEGRATION_TESTS=1 to run postgres integration tests")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("bizcomply_test"),
		tcpostgres.WithUsername("bizcomply"),
		tcpostgres.WithPassword("bizcomply"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := &config.DatabaseConfig{
		Driver:   "postgres",
		Host:     host,
		Port:     port.Int(),
		User:     "bizcomply",
		Password: "bizcomply",
		Database: "bizcomply_test",
		SSLMode:  "disable",
	}

	conn, err := NewDBConnection(ctx, cfg, logger.NewNoop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.Migrate(ctx))
	require.NoError(t, NewSeeder(conn.DB(), logger.NewNoop()).Seed(ctx))

	businessRepo := NewBusinessRepository(conn.DB(), logger.NewNoop())
	regulationRepo := NewRegulationRepository(conn.DB(), logger.NewNoop())
	complianceRepo := NewComplianceRepository(conn.DB(), logger.NewNoop())

	business := testBusiness()
	require.NoError(t, businessRepo.Create(ctx, business))

	corpus, err := regulationRepo.FindByJurisdictions(ctx, []constants.Jurisdiction{
		constants.JurisdictionFederal,
		constants.JurisdictionState,
		constants.JurisdictionCounty,
		constants.JurisdictionCity,
	})
	require.NoError(t, err)
	require.Len(t, corpus, len(seedCorpus()))

	regs, total, err := regulationRepo.FindAll(ctx, repository.RegulationFilter{Search: "osha"})
	require.NoError(t, err)
	require.Greater(t, total, int64(0))
	require.NotEmpty(t, regs)

	record := &models.ComplianceRecord{
		BusinessID:      business.ID,
		ComplianceScore: 81,
		RiskLevel:       constants.RiskMedium,
	}
	require.NoError(t, complianceRepo.SaveResult(ctx, record))

	require.NoError(t, complianceRepo.UpsertBusinessRegulation(ctx, &models.BusinessRegulation{
		BusinessID:       business.ID,
		RegulationID:     corpus[0].ID,
		IsApplicable:     true,
		ComplianceStatus: constants.ComplianceStatusPending,
	}))

	applied, err := complianceRepo.AppliedRegulations(ctx, business.ID)
	require.NoError(t, err)
	require.Len(t, applied, 1)

	latest, err := complianceRepo.LatestResult(ctx, business.ID)
	require.NoError(t, err)
	require.Equal(t, 81, latest.ComplianceScore)
}
