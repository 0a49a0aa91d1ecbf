package report

import (
	"context"
	"fmt"
	"strings"

	"quizlint/internal/findings"
)

// ResolveRun finds a stored run by reference. An empty ref or "latest" selects the newest
// run. Otherwise ref matches a run id, a unique run id prefix, or a commit prefix, in which
// case the newest run at that commit wins.
func ResolveRun(ctx context.Context, store *findings.Store, ref string) (findings.Run, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == "latest" {
		return store.LatestRun(ctx, "")
	}
	runs, err := store.ListRuns(ctx)
	if err != nil {
		return findings.Run{}, err
	}
	var matches []findings.Summary
	for _, run := range runs {
		if run.ID == ref {
			return store.LoadRun(ctx, run.ID)
		}
		if strings.HasPrefix(run.ID, ref) {
			matches = append(matches, run)
		}
	}
	switch len(matches) {
	case 1:
		return store.LoadRun(ctx, matches[0].ID)
	case 0:
	default:
		return findings.Run{}, fmt.Errorf("run reference %q is ambiguous (%d matches)", ref, len(matches))
	}
	for _, run := range runs {
		if run.RepoCommit != "" && strings.HasPrefix(run.RepoCommit, ref) {
			return store.LoadRun(ctx, run.ID)
		}
	}
	return findings.Run{}, fmt.Errorf("%w: %s", findings.ErrRunNotFound, ref)
}
