package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"quizlint/internal/findings"
	"quizlint/internal/reportserver"
)

// serveReport is a test seam for running the report server.
var serveReport = reportserver.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) runnerFunc {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		common := bindCommonFlags(flags, false)
		addr := flags.String("addr", "", "Address to listen on (default: server.addr from config)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		sess, err := openSession(common, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		defer func() { _ = sess.logger.Sync() }()

		listen := sess.cfg.Server.Addr
		if *addr != "" {
			listen = *addr
		}

		ctx, stop := commandContext()
		defer stop()

		store, err := openServeStore(ctx, sess.cfg.Store.Path)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open findings database: %v\n", err)
			return ExitError
		}
		defer store.Close()

		err = serveReport(ctx, store, reportserver.Config{
			Addr:    listen,
			PDFFont: sess.cfg.Report.PDFFont,
			Logger:  sess.logger,
			Ready: func(bound string) {
				fmt.Fprintf(stdout, "Serving findings at http://%s\n", bound)
			},
		})
		if err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// openServeStore opens the findings database read-only, creating an empty one first so a
// fresh repository can be served.
func openServeStore(ctx context.Context, path string) (*findings.Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		created, err := findings.Open(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := created.Close(); err != nil {
			return nil, err
		}
	}
	return findings.OpenReadOnly(ctx, path)
}
