package schema

// Custom string types for type safety.
type (
	// Indicator represents the economic metric being measured.
	Indicator string

	// Dimension represents the population-segmentation axis used to split
	// an indicator into categories.
	Dimension string

	// Frequency represents the granularity of the returned observations.
	Frequency string

	// Basis represents the value basis for monetary indicators.
	Basis string

	// SourceTag represents the overall data provenance of a result.
	SourceTag string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run archiving.
	DatabaseBackend string
)

// All indicators supported.
const (
	UnemploymentRate  Indicator = "unemployment"   // default
	ParticipationRate Indicator = "participation"
	EmploymentRate    Indicator = "employment"
	MonthlyWage       Indicator = "wage"
)

// All breakdown dimensions supported.
const (
	RegionDimension    Dimension = "region" // default
	EducationDimension Dimension = "education"
	AgeDimension       Dimension = "age"
	GenderDimension    Dimension = "gender"
)

// All frequencies supported.
const (
	Quarterly Frequency = "quarterly" // default
	Annual    Frequency = "annual"
)

// All value bases supported. Basis only matters for the wage indicator;
// rates are unitless and ignore it.
const (
	NominalBasis  Basis = "nominal" // default
	ConstantBasis Basis = "constant"
)

// Provenance tags for a whole result.
const (
	OfficialSource  SourceTag = "official"
	SimulatedSource SourceTag = "simulated"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All archive backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// TotalCategory is the implicit aggregate category present in every dimension.
const TotalCategory = "Total"

// ReferenceYear anchors the synthetic calibration and constant-currency
// conversions. All base levels are stated in this year's terms.
const ReferenceYear = 2024

// Working-age bounds used when no age filter is given.
const (
	DefaultMinAge = 16
	DefaultMaxAge = 64
)

// AllIndicators lists every indicator in display order.
var AllIndicators = []Indicator{UnemploymentRate, ParticipationRate, EmploymentRate, MonthlyWage}

// AllDimensions lists every breakdown dimension in display order.
var AllDimensions = []Dimension{RegionDimension, EducationDimension, AgeDimension, GenderDimension}

// IsRate reports whether the indicator is a percentage rate rather than a
// monetary amount.
func (i Indicator) IsRate() bool {
	return i != MonthlyWage
}

// Unit returns the display unit for the indicator.
func (i Indicator) Unit() string {
	if i.IsRate() {
		return "%"
	}
	return "EUR/month"
}
