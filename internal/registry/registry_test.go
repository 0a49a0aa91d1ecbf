package registry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"quizlint/internal/taxonomy"
	"quizlint/internal/testutil"
)

const fixture = `version: 1
domains:
  thai:
    kind: grouped
    groups:
      grammar: [คำนาม]
      reading: []
  social:
    kind: flat
    topics:
      - topic: History
prefixes:
  - prefix: thai-
    domain: thai
`

func TestRegistry_RegisterGrouped(t *testing.T) {
	reg := newFixture(t)
	added, err := reg.Register("thai", "grammar", "คำกริยา")
	if err != nil || !added {
		t.Fatalf("expected label to be added, got %v %v", added, err)
	}
	added, err = reg.Register("thai", "grammar", "คำกริยา")
	if err != nil || added {
		t.Fatalf("expected repeat registration to be a no-op, got %v %v", added, err)
	}
	ok, err := reg.Contains("thai", "grammar", "คำกริยา")
	if err != nil || !ok {
		t.Fatalf("expected registered label to be valid")
	}
	if len(reg.Additions()) != 1 || !reg.Modified() {
		t.Fatalf("expected one addition, got %+v", reg.Additions())
	}
}

func TestRegistry_RegisterRequiresMain(t *testing.T) {
	reg := newFixture(t)
	if _, err := reg.Register("thai", "", "x"); !errors.Is(err, ErrNoMain) {
		t.Fatalf("expected ErrNoMain, got %v", err)
	}
	if _, err := reg.Register("thai", "writing", "x"); !errors.Is(err, ErrUnknownMain) {
		t.Fatalf("expected ErrUnknownMain, got %v", err)
	}
	if _, err := reg.Register("nope", "", "x"); !errors.Is(err, taxonomy.ErrUnknownDomain) {
		t.Fatalf("expected ErrUnknownDomain, got %v", err)
	}
	if reg.Modified() {
		t.Fatalf("expected failed registrations to leave the taxonomy untouched")
	}
}

func TestRegistry_RegisterFlatIgnoresMain(t *testing.T) {
	reg := newFixture(t)
	added, err := reg.Register("social", "anything", "Economics")
	if err != nil || !added {
		t.Fatalf("expected flat registration, got %v %v", added, err)
	}
	if additions := reg.Additions(); additions[0].Main != "" {
		t.Fatalf("expected flat addition without main, got %+v", additions[0])
	}
}

func TestRegistry_ConcurrentRegistration_SingleEntry(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		reg := newFixture(t)
		var wg sync.WaitGroup
		var mu sync.Mutex
		wins := 0
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				added, err := reg.Register("thai", "reading", "ใจความสำคัญ")
				if err != nil {
					t.Errorf("register: %v", err)
					return
				}
				if added {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		if wins != 1 {
			t.Fatalf("expected exactly one successful registration, got %d", wins)
		}
		labels := reg.Snapshot().Domains["thai"].Groups["reading"]
		if len(labels) != 1 {
			t.Fatalf("expected one taxonomy entry, got %v", labels)
		}
	})
}

func TestRegistry_SaveLoadRoundTrip(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		path := filepath.Join(t.TempDir(), "taxonomy.yml")
		if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		reg, err := Load(path)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if _, err := reg.Register("thai", "grammar", "กริยา"); err != nil {
			t.Fatalf("register: %v", err)
		}
		if err := reg.Save(path, "th"); err != nil {
			t.Fatalf("save: %v", err)
		}
		if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
			t.Fatalf("expected tmp file to be removed, got %v", err)
		}
		reloaded, err := Load(path)
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		labels := reloaded.Snapshot().Domains["thai"].Groups["grammar"]
		if strings.Join(labels, ",") != "กริยา,คำนาม" {
			t.Fatalf("unexpected labels after save %v", labels)
		}
	})
}

func TestRegistry_SnapshotIsIndependent(t *testing.T) {
	reg := newFixture(t)
	snapshot := reg.Snapshot()
	snapshot.Domains["thai"].Groups["grammar"][0] = "changed"
	ok, err := reg.Contains("thai", "grammar", "คำนาม")
	if err != nil || !ok {
		t.Fatalf("expected snapshot edits not to leak into the registry")
	}
}

func newFixture(t *testing.T) *Registry {
	t.Helper()
	tax, err := taxonomy.Parse([]byte(fixture))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return New(tax)
}

func runWithTimeout(t *testing.T, timeout time.Duration, fn func()) {
	t.Helper()
	ctx := testutil.Context(t, timeout)
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-ctx.Done():
		t.Fatalf("test timed out")
	case <-done:
	}
}
