package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mcarrero/laborstat/internal/contract"
	"golang.org/x/term"
)

// writeWithFile handles the common pattern of opening a file, writing to it,
// and cleaning up. It accepts a writer function that takes an io.Writer and
// returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// createFormatter builds the float formatter closure shared by the writers.
func createFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}

// terminalWidth returns the effective terminal width, honoring the override.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detected
}
