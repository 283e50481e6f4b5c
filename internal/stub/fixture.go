package stub

import (
	_ "embed"
	"fmt"
	"os"

	"studyguide/internal/analysis"
)

//go:embed fixtures/sample.json
var sampleFixture []byte

// SampleFixture returns a copy of the embedded sample analysis.
func SampleFixture() []byte {
	return append([]byte(nil), sampleFixture...)
}

// checkFixture makes sure data decodes as an analysis result.
func checkFixture(data []byte) error {
	if _, err := analysis.DecodeResult(data); err != nil {
		return fmt.Errorf("invalid fixture: %w", err)
	}
	return nil
}

// ReadFixture reads and checks a fixture file.
func ReadFixture(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	if err := checkFixture(data); err != nil {
		return nil, err
	}
	return data, nil
}
