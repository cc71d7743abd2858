package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mcarrero/laborstat/schema"
)

// Color variables for console output.
var (
	OfficialColor  = color.New(color.FgGreen, color.Bold) // official data reached the upstream service
	SimulatedColor = color.New(color.FgYellow, color.Bold)
)

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning without stopping the run.
func LogWarn(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  %s: %v\n", msg, err)
		return
	}
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
}

// LogQueryHeader prints the one-line run header for a query.
func LogQueryHeader(cfg *Config) {
	fmt.Fprintf(os.Stderr, "📊 laborstat: %s by %s, %d-%d (%s, %s)\n",
		cfg.Indicator, cfg.Dimension, cfg.StartYear, cfg.EndYear, cfg.Frequency, cfg.Basis)
}

// GetPlainSourceLabel returns the plain provenance label for CSV, JSON and
// uncolored table printing.
func GetPlainSourceLabel(source schema.SourceTag) string {
	if source == schema.OfficialSource {
		return "Official"
	}
	return "Simulated"
}

// GetColorSourceLabel returns a colored provenance label for table output.
func GetColorSourceLabel(source schema.SourceTag) string {
	text := GetPlainSourceLabel(source)
	if source == schema.OfficialSource {
		return OfficialColor.Sprint(text)
	}
	return SimulatedColor.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}
