// Copyright © 2025 The failtrace authors

package trace

import (
	"context"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// StringSourceFile is the pseudo-filename runtimes report for code executed
// from a command-line argument rather than a file.
const StringSourceFile = "<string>"

// cmdlineTimeout bounds the ps(1) fallback so a wedged process table can
// never stall a render.
const cmdlineTimeout = 2 * time.Second

// Command-line words: a possibly-quoted span with attached prefix/suffix
// characters, or a bare word.
var cmdlineWord = regexp.MustCompile(
	`[^\t ]*"(?:\\.|[^"\\])*"[^\t ]*` +
		`|[^\t ]*'(?:\\.|[^'\\])*'[^\t ]*` +
		`|[^\t ]+`)

// CommandLineSource makes a best effort to recover source text for code
// executed from a "-c"-style argument by inspecting the host process's own
// command line.  It returns an empty string on any platform or permission
// limitation.
func CommandLineSource() string {
	argv := processArgv()
	if len(argv) == 0 {
		return ""
	}

	// Strip our own trailing arguments.  If they do not line up with the
	// observed command line the output cannot be trusted.
	extra := os.Args[1:]
	if len(extra) > 0 {
		if len(argv) <= len(extra) {
			return ""
		}
		tail := argv[len(argv)-len(extra):]
		for i := range tail {
			if tail[i] != extra[i] {
				return ""
			}
		}
		argv = argv[1 : len(argv)-len(extra)]
	}

	// Drop everything up to and including the -c flag; source attached
	// directly to the flag ("-cprint(x)") is kept.
	skip := 0
	for i := range argv {
		a := strings.TrimSpace(argv[i])
		if !strings.HasPrefix(a, "-c") {
			skip++
			continue
		}
		rest := strings.TrimSpace(a[2:])
		if rest != "" {
			argv[i] = rest
		} else {
			skip++
		}
		break
	}
	if skip >= len(argv) {
		return ""
	}
	return strings.Join(argv[skip:], " ")
}

func processArgv() []string {
	switch runtime.GOOS {
	case "windows":
		return nil
	case "linux":
		if data, err := os.ReadFile("/proc/self/cmdline"); err == nil {
			parts := strings.Split(strings.TrimRight(string(data), "\x00"), "\x00")
			if len(parts) > 0 && parts[0] != "" {
				return parts
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cmdlineTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, "ps", "-ww",
		"-p", strconv.Itoa(os.Getpid()), "-o", "command=").Output()
	if err != nil {
		return nil
	}
	return splitCommandLine(strings.TrimSpace(string(out)))
}

func splitCommandLine(cmdline string) []string {
	return cmdlineWord.FindAllString(cmdline, -1)
}
