package cli

import (
	"flag"
	"fmt"
	"io"
)

// runCheck builds the handler for the check command: validate, then scan the result.
func runCheck(cmd *Command) runnerFunc {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		common := bindCommonFlags(flags, true)
		opts := bindValidateFlags(flags)
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		sess, err := openSession(common, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		defer func() { _ = sess.logger.Sync() }()

		ctx, stop := commandContext()
		defer stop()

		fmt.Fprintln(stdout, "== Categories ==")
		validateCode := executeValidate(ctx, sess, opts, display{}, stdout, stderr)
		if ctx.Err() != nil {
			return ExitError
		}
		fmt.Fprintln(stdout, "\n== Duplicates ==")
		scanCode := executeScan(ctx, sess, false, stdout, stderr)
		if validateCode != ExitOK {
			return validateCode
		}
		return scanCode
	}
}
