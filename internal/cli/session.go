package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"quizlint/internal/config"
	"quizlint/internal/findings"
	"quizlint/internal/logger"
	"quizlint/internal/vcs"
)

// describeRepo is a test seam for reading repository metadata.
var describeRepo = vcs.Describe

// commonFlags are shared by the commands that load the config.
type commonFlags struct {
	configPath *string
	verbose    *bool
	noStore    *bool
}

func bindCommonFlags(flags *flag.FlagSet, withStore bool) commonFlags {
	common := commonFlags{
		configPath: flags.String("config", "", "Path to config file (default: search for .quizlint/config.yml)"),
		verbose:    flags.Bool("verbose", false, "Verbose logging"),
		noStore:    new(bool),
	}
	if withStore {
		common.noStore = flags.Bool("no-store", false, "Do not record this run in the findings database")
	}
	return common
}

// parseFlags parses args and reports the exit code to use when parsing stops the command.
func parseFlags(cmd *Command, flags *flag.FlagSet, args []string, stdout, stderr io.Writer) (int, bool) {
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	if flags.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}

// session is the resolved config and logger for one command invocation.
type session struct {
	cfg     config.Config
	logger  *zap.Logger
	noStore bool
}

func openSession(common commonFlags, stderr io.Writer) (*session, error) {
	cfg, err := loadConfig(*common.configPath)
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Env, *common.verbose, stderr)
	log.Debug("config loaded",
		zap.String("file", cfg.File),
		zap.String("root", cfg.Root),
		zap.String("content", cfg.Content.Dir))
	return &session{cfg: cfg, logger: log, noStore: *common.noStore}, nil
}

// commandContext is cancelled on SIGINT or SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// record stores a finished run in the findings database. Failures are logged and never
// change the exit code.
func (s *session) record(ctx context.Context, stdout io.Writer, started time.Time, write func(*findings.Store, findings.Meta) (string, error)) {
	if s.noStore || !s.cfg.Store.Enabled {
		return
	}
	meta := findings.Meta{
		StartedAt:  started,
		FinishedAt: time.Now(),
		ContentDir: s.relative(s.cfg.Content.Dir),
	}
	repo, err := describeRepo(ctx, s.cfg.Root, s.cfg.Content.Dir)
	if err != nil {
		s.logger.Debug("repository metadata unavailable", zap.Error(err))
	} else {
		meta.Repo = repo
	}

	store, err := findings.Open(ctx, s.cfg.Store.Path)
	if err != nil {
		s.logger.Warn("findings store unavailable, run not recorded", zap.String("path", s.cfg.Store.Path), zap.Error(err))
		return
	}
	defer store.Close()
	id, err := write(store, meta)
	if err != nil {
		s.logger.Warn("record findings", zap.Error(err))
		return
	}
	fmt.Fprintf(stdout, "Recorded run %s\n", id)
}

func (s *session) relative(path string) string {
	rel, err := filepath.Rel(s.cfg.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
