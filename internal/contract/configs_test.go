package contract

import (
	"testing"
	"time"

	"github.com/mcarrero/laborstat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProcessAndValidateDefaults tests that an empty raw input resolves to
// the documented defaults.
func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	err := ProcessAndValidate(cfg, &ConfigRawInput{})

	require.NoError(t, err)
	assert.Equal(t, schema.UnemploymentRate, cfg.Indicator)
	assert.Equal(t, schema.RegionDimension, cfg.Dimension)
	assert.Equal(t, schema.Quarterly, cfg.Frequency)
	assert.Equal(t, DefaultStartYear, cfg.StartYear)
	assert.Equal(t, time.Now().Year()-1, cfg.EndYear)
	assert.Equal(t, schema.DefaultMinAge, cfg.MinAge)
	assert.Equal(t, schema.DefaultMaxAge, cfg.MaxAge)
	assert.Equal(t, schema.NominalBasis, cfg.Basis)
	assert.Nil(t, cfg.Categories)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
	assert.Equal(t, DefaultPrecision, cfg.Precision)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, schema.NoneBackend, cfg.StoreBackend)
}

// TestProcessAndValidateAliases tests the accepted indicator and breakdown
// spellings.
func TestProcessAndValidateAliases(t *testing.T) {
	tests := []struct {
		name      string
		input     ConfigRawInput
		indicator schema.Indicator
		dimension schema.Dimension
	}{
		{name: "activity alias", input: ConfigRawInput{Indicator: "activity"}, indicator: schema.ParticipationRate, dimension: schema.RegionDimension},
		{name: "wages alias", input: ConfigRawInput{Indicator: "wages"}, indicator: schema.MonthlyWage, dimension: schema.RegionDimension},
		{name: "sex alias", input: ConfigRawInput{Breakdown: "sex"}, indicator: schema.UnemploymentRate, dimension: schema.GenderDimension},
		{name: "mixed case", input: ConfigRawInput{Indicator: "Employment", Breakdown: "AGE"}, indicator: schema.EmploymentRate, dimension: schema.AgeDimension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			require.NoError(t, ProcessAndValidate(cfg, &tt.input))
			assert.Equal(t, tt.indicator, cfg.Indicator)
			assert.Equal(t, tt.dimension, cfg.Dimension)
		})
	}
}

// TestProcessAndValidateErrors tests rejected inputs.
func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name  string
		input ConfigRawInput
	}{
		{name: "unknown indicator", input: ConfigRawInput{Indicator: "inflation"}},
		{name: "unknown breakdown", input: ConfigRawInput{Breakdown: "planet"}},
		{name: "unknown frequency", input: ConfigRawInput{Frequency: "daily"}},
		{name: "start year too early", input: ConfigRawInput{StartYear: 1975}},
		{name: "inverted year range", input: ConfigRawInput{StartYear: 2020, EndYear: 2015}},
		{name: "age below working age", input: ConfigRawInput{MinAge: 12}},
		{name: "inverted age filter", input: ConfigRawInput{MinAge: 50, MaxAge: 30}},
		{name: "unknown basis", input: ConfigRawInput{Basis: "chained"}},
		{name: "timeout too large", input: ConfigRawInput{TimeoutSeconds: 90}},
		{name: "precision too large", input: ConfigRawInput{Precision: 5}},
		{name: "unknown output", input: ConfigRawInput{Output: "xml"}},
		{name: "parquet without file", input: ConfigRawInput{Output: "parquet"}},
		{name: "unknown store backend", input: ConfigRawInput{StoreBackend: "oracle"}},
		{name: "mysql without connect string", input: ConfigRawInput{StoreBackend: "mysql"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ProcessAndValidate(&Config{}, &tt.input))
		})
	}
}

// TestProcessAndValidateCategories tests the three-way category selection.
func TestProcessAndValidateCategories(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, &ConfigRawInput{}))
	assert.Nil(t, cfg.Categories)

	cfg = &Config{}
	require.NoError(t, ProcessAndValidate(cfg, &ConfigRawInput{Categories: "none"}))
	assert.NotNil(t, cfg.Categories)
	assert.Empty(t, cfg.Categories)

	cfg = &Config{}
	require.NoError(t, ProcessAndValidate(cfg, &ConfigRawInput{Categories: " Madrid , Catalonia ,"}))
	assert.Equal(t, []string{"Madrid", "Catalonia"}, cfg.Categories)
}

// TestProcessAndValidateTimeout tests timeout parsing bounds.
func TestProcessAndValidateTimeout(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, &ConfigRawInput{TimeoutSeconds: 10}))
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
}

// TestRevalidateQuery tests string overrides on a validated config.
func TestRevalidateQuery(t *testing.T) {
	base := &Config{}
	require.NoError(t, ProcessAndValidate(base, &ConfigRawInput{}))

	cfg := base.Clone()
	require.NoError(t, RevalidateQuery(cfg, "wage", "education", "annual", "constant", 2016, 2020))
	assert.Equal(t, schema.MonthlyWage, cfg.Indicator)
	assert.Equal(t, schema.EducationDimension, cfg.Dimension)
	assert.Equal(t, schema.Annual, cfg.Frequency)
	assert.Equal(t, schema.ConstantBasis, cfg.Basis)
	assert.Equal(t, 2016, cfg.StartYear)
	assert.Equal(t, 2020, cfg.EndYear)

	// Empty strings keep the existing values.
	cfg = base.Clone()
	require.NoError(t, RevalidateQuery(cfg, "", "", "", "", 0, 0))
	assert.Equal(t, base.Indicator, cfg.Indicator)
	assert.Equal(t, base.StartYear, cfg.StartYear)

	// Inverted ranges are rejected.
	cfg = base.Clone()
	assert.Error(t, RevalidateQuery(cfg, "", "", "", "", 2020, 2015))
}

// TestConfigClone tests that clones do not share category slices.
func TestConfigClone(t *testing.T) {
	cfg := &Config{Categories: []string{"Madrid"}}
	clone := cfg.Clone()
	clone.Categories[0] = "Catalonia"
	assert.Equal(t, "Madrid", cfg.Categories[0])
}

// TestConfigQuery tests the projection into the engine request.
func TestConfigQuery(t *testing.T) {
	cfg := &Config{
		Indicator: schema.MonthlyWage,
		Dimension: schema.GenderDimension,
		Frequency: schema.Annual,
		StartYear: 2016,
		EndYear:   2020,
		MinAge:    25,
		MaxAge:    54,
		Basis:     schema.ConstantBasis,
	}
	query := cfg.Query()
	assert.Equal(t, schema.MonthlyWage, query.Indicator)
	assert.Equal(t, schema.GenderDimension, query.Dimension)
	assert.Equal(t, 25, query.MinAge)
	assert.Equal(t, schema.ConstantBasis, query.Basis)
}

// TestValidateStoreConnectionString tests server-backend requirements.
func TestValidateStoreConnectionString(t *testing.T) {
	assert.NoError(t, ValidateStoreConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateStoreConnectionString(schema.NoneBackend, ""))
	assert.NoError(t, ValidateStoreConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/db"))
	assert.Error(t, ValidateStoreConnectionString(schema.MySQLBackend, ""))
	assert.Error(t, ValidateStoreConnectionString(schema.PostgreSQLBackend, "  "))
	assert.Error(t, ValidateStoreConnectionString(schema.DatabaseBackend("oracle"), "x"))
}
