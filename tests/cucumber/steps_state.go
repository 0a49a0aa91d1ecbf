//go:build cucumber
// +build cucumber

package cucumber

import (
	"bytes"
	"context"
	"os"

	"github.com/cucumber/godog"
)

// featureState holds scenario state for cucumber CLI tests.
type featureState struct {
	repoDir    string
	configPath string
	stdout     bytes.Buffer
	stderr     bytes.Buffer
	exitCode   int
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, state.reset()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^the taxonomy:$`, state.theTaxonomy)
	ctx.Step(`^a content file "([^"]+)":$`, state.aContentFile)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the exit code is (\d+)$`, state.theExitCodeIs)
	ctx.Step(`^the output contains "([^"]+)"$`, state.theOutputContains)
	ctx.Step(`^the file "([^"]+)" contains "([^"]+)"$`, state.theFileContains)
	ctx.Step(`^the file "([^"]+)" does not contain "([^"]+)"$`, state.theFileDoesNotContain)
	ctx.Step(`^the taxonomy lists "([^"]+)" under domain "([^"]+)" group "([^"]+)" exactly once$`, state.theTaxonomyListsOnce)
}

// reset clears buffers and creates a fresh repository for the scenario.
func (s *featureState) reset() error {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.repoDir = ""
	s.configPath = ""
	return s.newRepository()
}

// cleanup removes the scenario repository.
func (s *featureState) cleanup() {
	if s.repoDir != "" {
		_ = os.RemoveAll(s.repoDir)
	}
}
