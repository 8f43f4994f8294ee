package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/internal/domain/service"
	"github.com/bizcomply/bizcomply/internal/infrastructure/persistence/postgres"
	"github.com/bizcomply/bizcomply/pkg/constants"
)

var checkFlags struct {
	name          string
	industry      string
	state         string
	county        string
	city          string
	zipCode       string
	size          string
	employeeCount int
	annualRevenue float64
	businessType  string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a compliance check against the stored corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		conn, log, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		profile := &models.BusinessProfile{
			Name:     checkFlags.name,
			Industry: checkFlags.industry,
			Location: models.Location{
				State:   checkFlags.state,
				County:  checkFlags.county,
				City:    checkFlags.city,
				ZipCode: checkFlags.zipCode,
			},
			Size:          constants.BusinessSize(checkFlags.size),
			EmployeeCount: checkFlags.employeeCount,
			AnnualRevenue: checkFlags.annualRevenue,
			BusinessType:  checkFlags.businessType,
		}
		if err := profile.Validate(); err != nil {
			return err
		}

		repo := postgres.NewRegulationRepository(conn.DB(), log)
		corpus, err := repo.FindByJurisdictions(ctx, service.JurisdictionTiers(profile))
		if err != nil {
			return err
		}

		selected := service.SelectApplicableRegulations(profile, corpus)
		result := service.Evaluate(profile, selected, time.Now())

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkFlags.name, "name", "CLI Check", "business name")
	checkCmd.Flags().StringVar(&checkFlags.industry, "industry", "", "industry (e.g. Retail, Healthcare)")
	checkCmd.Flags().StringVar(&checkFlags.state, "state", "CA", "2-letter state code")
	checkCmd.Flags().StringVar(&checkFlags.county, "county", "Kern", "county")
	checkCmd.Flags().StringVar(&checkFlags.city, "city", "Bakersfield", "city")
	checkCmd.Flags().StringVar(&checkFlags.zipCode, "zip", "93301", "zip code")
	checkCmd.Flags().StringVar(&checkFlags.size, "size", "Small", "business size: Small, Medium, Large")
	checkCmd.Flags().IntVar(&checkFlags.employeeCount, "employees", 1, "employee count")
	checkCmd.Flags().Float64Var(&checkFlags.annualRevenue, "revenue", 100000, "annual revenue in USD")
	checkCmd.Flags().StringVar(&checkFlags.businessType, "type", "LLC", "business type")
	_ = checkCmd.MarkFlagRequired("industry")

	rootCmd.AddCommand(checkCmd)
}
