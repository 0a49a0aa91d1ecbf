//go:build cucumber
// +build cucumber

package cucumber

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"
)

// TestCucumberFeatures runs the feature files under features/.
func TestCucumberFeatures(t *testing.T) {
	featuresPath := filepath.Join("..", "..", "features")
	var output io.Writer = io.Discard
	if testing.Verbose() {
		output = os.Stdout
	}
	options := godog.Options{
		Format:   "progress",
		Paths:    []string{featuresPath},
		Output:   output,
		Strict:   true,
		TestingT: t,
	}

	suite := godog.TestSuite{
		Name:                "quizlint-features",
		ScenarioInitializer: InitializeScenario,
		Options:             &options,
	}

	if suite.Run() != 0 {
		t.Fatalf("cucumber features failed")
	}
}
