package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"swipelist/internal/cli"
)

func isEntryID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "e-") && len(s) > len("e-")
}

// rewriteDirectEntryLookupArgs turns `swipelist <entry-id>` into
// `swipelist show <entry-id>`. Cobra treats the first positional token as a
// subcommand, so persistent flags before it have to be skipped.
func rewriteDirectEntryLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}
	valueFlags := map[string]bool{
		"--dir":      true,
		"--format":   true,
		"--log-file": true,
	}

	insertShow := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "show")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			if i+1 < len(argv) && isEntryID(argv[i+1]) {
				return insertShow(i + 1)
			}
			return argv
		case strings.HasPrefix(a, "-"):
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		case isEntryID(a):
			return insertShow(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectEntryLookupArgs(os.Args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
