package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/mcarrero/laborstat/schema"
)

// Default values for configuration.
const (
	DefaultStartYear    = 2014
	DefaultFetchTimeout = 4 * time.Second
	MaxFetchTimeout     = 30 * time.Second
	DefaultPrecision    = 2
	MinQueryYear        = 1980
)

// DefaultBaseURL is the upstream statistics endpoint. Every series is a GET
// against this path plus a numeric series identifier.
const DefaultBaseURL = "https://servicios.ine.es/wstempus/js/ES/DATOS_SERIE/"

// Config holds the validated, final runtime configuration for a query.
type Config struct {
	Indicator  schema.Indicator
	Dimension  schema.Dimension
	Frequency  schema.Frequency
	StartYear  int
	EndYear    int
	MinAge     int
	MaxAge     int
	Basis      schema.Basis
	Categories []string // nil = all catalog categories

	BaseURL      string
	FetchTimeout time.Duration

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	Indicator  string `mapstructure:"indicator"`
	Breakdown  string `mapstructure:"breakdown"`
	Frequency  string `mapstructure:"frequency"`
	StartYear  int    `mapstructure:"start-year"`
	EndYear    int    `mapstructure:"end-year"`
	MinAge     int    `mapstructure:"min-age"`
	MaxAge     int    `mapstructure:"max-age"`
	Basis      string `mapstructure:"basis"`
	Categories string `mapstructure:"categories"`

	BaseURL        string `mapstructure:"base-url"`
	TimeoutSeconds int    `mapstructure:"timeout"`

	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
}

// Query projects the validated config into the engine's immutable request.
func (c *Config) Query() schema.SeriesQuery {
	return schema.SeriesQuery{
		Indicator:  c.Indicator,
		Dimension:  c.Dimension,
		Frequency:  c.Frequency,
		StartYear:  c.StartYear,
		EndYear:    c.EndYear,
		MinAge:     c.MinAge,
		MaxAge:     c.MaxAge,
		Basis:      c.Basis,
		Categories: c.Categories,
	}
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Categories != nil {
		clone.Categories = make([]string, len(c.Categories))
		copy(clone.Categories, c.Categories)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Indicator ---
	ind, err := parseIndicator(input.Indicator)
	if err != nil {
		return err
	}
	cfg.Indicator = ind

	// --- 2. Breakdown dimension ---
	dim, err := parseDimension(input.Breakdown)
	if err != nil {
		return err
	}
	cfg.Dimension = dim

	// --- 3. Frequency ---
	switch strings.ToLower(input.Frequency) {
	case "", "quarterly", "q":
		cfg.Frequency = schema.Quarterly
	case "annual", "a", "yearly":
		cfg.Frequency = schema.Annual
	default:
		return fmt.Errorf("invalid frequency '%s'. must be quarterly or annual", input.Frequency)
	}

	// --- 4. Year range ---
	startYear := input.StartYear
	if startYear == 0 {
		startYear = DefaultStartYear
	}
	endYear := input.EndYear
	if endYear == 0 {
		endYear = time.Now().Year() - 1
	}
	if startYear < MinQueryYear {
		return fmt.Errorf("start year %d is before %d", startYear, MinQueryYear)
	}
	if startYear > endYear {
		return fmt.Errorf("start year (%d) cannot be after end year (%d)", startYear, endYear)
	}
	cfg.StartYear = startYear
	cfg.EndYear = endYear

	// --- 5. Age filter ---
	minAge := input.MinAge
	if minAge == 0 {
		minAge = schema.DefaultMinAge
	}
	maxAge := input.MaxAge
	if maxAge == 0 {
		maxAge = schema.DefaultMaxAge
	}
	if minAge < schema.DefaultMinAge || maxAge > 99 || minAge > maxAge {
		return fmt.Errorf("invalid age filter [%d, %d]", minAge, maxAge)
	}
	cfg.MinAge = minAge
	cfg.MaxAge = maxAge

	// --- 6. Basis ---
	switch strings.ToLower(input.Basis) {
	case "", "nominal":
		cfg.Basis = schema.NominalBasis
	case "constant", "real":
		cfg.Basis = schema.ConstantBasis
	default:
		return fmt.Errorf("invalid basis '%s'. must be nominal or constant", input.Basis)
	}

	// --- 7. Category selection ---
	// The flag distinguishes "unset" (all categories) from "none". A literal
	// "none" keeps the empty-selection path reachable from the CLI.
	switch trimmed := strings.TrimSpace(input.Categories); trimmed {
	case "":
		cfg.Categories = nil
	case "none":
		cfg.Categories = []string{}
	default:
		parts := strings.Split(trimmed, ",")
		cfg.Categories = make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Categories = append(cfg.Categories, p)
			}
		}
	}

	// --- 8. Upstream endpoint ---
	cfg.BaseURL = strings.TrimSpace(input.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.FetchTimeout = DefaultFetchTimeout
	if input.TimeoutSeconds > 0 {
		cfg.FetchTimeout = time.Duration(input.TimeoutSeconds) * time.Second
	}
	if cfg.FetchTimeout > MaxFetchTimeout {
		return fmt.Errorf("timeout cannot exceed %s", MaxFetchTimeout)
	}

	// --- 9. Precision and output ---
	if input.Precision < 0 || input.Precision > 2 {
		return fmt.Errorf("precision must be between 0 and 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision
	if cfg.Precision == 0 {
		cfg.Precision = DefaultPrecision
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	switch cfg.Output {
	case schema.TextOut, schema.CSVOut, schema.JSONOut, schema.ParquetOut:
	default:
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	cfg.Width = input.Width
	cfg.UseColors = parseYesNo(input.Color, true)

	// --- 10. Run archive ---
	backend := schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if backend == "" {
		backend = schema.NoneBackend
	}
	switch backend {
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend, schema.NoneBackend:
	default:
		return fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", input.StoreBackend)
	}
	if err := ValidateStoreConnectionString(backend, input.StoreDBConnect); err != nil {
		return err
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = input.StoreDBConnect

	return nil
}

// ValidateStoreConnectionString checks that server backends come with a
// connection string. SQLite falls back to a default file path, so an empty
// string is fine there.
func ValidateStoreConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if strings.TrimSpace(connStr) == "" {
			return fmt.Errorf("%s backend requires --store-db-connect", backend)
		}
	case schema.SQLiteBackend, schema.NoneBackend, "":
	default:
		return fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
	return nil
}

// RevalidateQuery applies string overrides on an already-validated config.
// Used by callers that receive loosely-typed parameters, like MCP tools.
func RevalidateQuery(cfg *Config, indicator, breakdown, frequency, basis string, startYear, endYear int) error {
	if indicator != "" {
		ind, err := parseIndicator(indicator)
		if err != nil {
			return err
		}
		cfg.Indicator = ind
	}
	if breakdown != "" {
		dim, err := parseDimension(breakdown)
		if err != nil {
			return err
		}
		cfg.Dimension = dim
	}
	switch strings.ToLower(frequency) {
	case "":
	case "quarterly", "q":
		cfg.Frequency = schema.Quarterly
	case "annual", "a", "yearly":
		cfg.Frequency = schema.Annual
	default:
		return fmt.Errorf("invalid frequency '%s'. must be quarterly or annual", frequency)
	}
	switch strings.ToLower(basis) {
	case "":
	case "nominal":
		cfg.Basis = schema.NominalBasis
	case "constant", "real":
		cfg.Basis = schema.ConstantBasis
	default:
		return fmt.Errorf("invalid basis '%s'. must be nominal or constant", basis)
	}
	if startYear > 0 {
		cfg.StartYear = startYear
	}
	if endYear > 0 {
		cfg.EndYear = endYear
	}
	if cfg.StartYear < MinQueryYear {
		return fmt.Errorf("start year %d is before %d", cfg.StartYear, MinQueryYear)
	}
	if cfg.StartYear > cfg.EndYear {
		return fmt.Errorf("start year (%d) cannot be after end year (%d)", cfg.StartYear, cfg.EndYear)
	}
	return nil
}

func parseIndicator(raw string) (schema.Indicator, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "unemployment", "unemployment-rate":
		return schema.UnemploymentRate, nil
	case "participation", "activity", "participation-rate":
		return schema.ParticipationRate, nil
	case "employment", "employment-rate":
		return schema.EmploymentRate, nil
	case "wage", "wages", "monthly-wage":
		return schema.MonthlyWage, nil
	default:
		return "", fmt.Errorf("invalid indicator '%s'. must be unemployment, participation, employment, wage", raw)
	}
}

func parseDimension(raw string) (schema.Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "region", "regions":
		return schema.RegionDimension, nil
	case "education", "education-level":
		return schema.EducationDimension, nil
	case "age", "age-group":
		return schema.AgeDimension, nil
	case "gender", "sex":
		return schema.GenderDimension, nil
	default:
		return "", fmt.Errorf("invalid breakdown '%s'. must be region, education, age, gender", raw)
	}
}

func parseYesNo(raw string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true", "1", "on":
		return true
	case "no", "n", "false", "0", "off":
		return false
	default:
		return fallback
	}
}
