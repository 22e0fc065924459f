// Package script builds a wasicore.Sandbox from command-line preopen
// arguments and runs a tiny newline-delimited operation language against
// it, for cmd/wasicorectl's "run" subcommand.
//
// A script line is one of:
//
//	open <dirfd> <path> <ro|rw|create>
//	write <fd> <text...>
//	read <fd> <n>
//	mkdir <dirfd> <path>
//	unlink <dirfd> <path>
//	close <fd>
//
// Every op reports its result (or error) as one output string; Run collects
// them in order so the caller can print or compare them.
package script

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wasicore/wasicore"
)

// NewSandboxFromArgs parses "dir[:mapped]" positional arguments into
// wasicore.Preopen entries and constructs a Sandbox over them. extraEnv, if
// non-nil, becomes the sandbox's environ; a nil value means no environment
// variables are exposed to the script.
func NewSandboxFromArgs(args []string, extraEnv []string) (*wasicore.Sandbox, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("wasicorectl: at least one dir[:mapped] argument is required")
	}
	preopens := make([]wasicore.Preopen, 0, len(args))
	for _, a := range args {
		real, mapped, ok := strings.Cut(a, ":")
		if !ok {
			mapped = real
		}
		preopens = append(preopens, wasicore.Preopen{MappedPath: mapped, RealPath: real})
	}
	return wasicore.New(wasicore.Config{
		FdTableSize: 64,
		Environ:     extraEnv,
		Preopens:    preopens,
	})
}

// Op is one parsed script line.
type Op struct {
	Line int
	Verb string
	Args []string
}

// Load reads and parses a script file, skipping blank lines and lines
// starting with '#'.
func Load(path string) ([]Op, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ops []Op
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		ops = append(ops, Op{Line: lineNo, Verb: fields[0], Args: fields[1:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

// Run executes each op against sb in order, returning one result string per
// op. Execution stops at the first op that fails to parse or whose verb is
// unrecognized; per-syscall errno failures are reported inline instead of
// aborting the script, since a script exercising error paths is a normal
// use case.
func Run(sb *wasicore.Sandbox, ops []Op) ([]string, error) {
	results := make([]string, 0, len(ops))
	for _, op := range ops {
		r, err := runOne(sb, op)
		if err != nil {
			return results, fmt.Errorf("line %d: %w", op.Line, err)
		}
		results = append(results, fmt.Sprintf("%d: %s", op.Line, r))
	}
	return results, nil
}

func runOne(sb *wasicore.Sandbox, op Op) (string, error) {
	switch op.Verb {
	case "open":
		if len(op.Args) < 3 {
			return "", fmt.Errorf("open requires <dirfd> <path> <ro|rw|create>")
		}
		dirFd, err := parseFd(op.Args[0])
		if err != nil {
			return "", err
		}
		path := op.Args[1]
		var rightsBase wasicore.Rights
		var oflags wasicore.Oflags
		switch op.Args[2] {
		case "ro":
			rightsBase = wasicore.RightFdRead | wasicore.RightFdSeek
		case "rw":
			rightsBase = wasicore.RightFdRead | wasicore.RightFdWrite | wasicore.RightFdSeek
		case "create":
			rightsBase = wasicore.RightFdRead | wasicore.RightFdWrite | wasicore.RightFdSeek
			oflags = wasicore.OflagCreat
		default:
			return "", fmt.Errorf("unknown open mode %q", op.Args[2])
		}
		fd, errno := sb.PathOpen(dirFd, 0, path, oflags, rightsBase, rightsBase, 0)
		if errno != wasicore.ESUCCESS {
			return fmt.Sprintf("open %s -> errno %s", path, errno), nil
		}
		return fmt.Sprintf("open %s -> fd %d", path, fd), nil

	case "write":
		if len(op.Args) < 2 {
			return "", fmt.Errorf("write requires <fd> <text...>")
		}
		fd, err := parseFd(op.Args[0])
		if err != nil {
			return "", err
		}
		text := strings.Join(op.Args[1:], " ")
		n, errno := sb.FdWrite(fd, [][]byte{[]byte(text)})
		if errno != wasicore.ESUCCESS {
			return fmt.Sprintf("write fd=%d -> errno %s", fd, errno), nil
		}
		return fmt.Sprintf("write fd=%d -> %d bytes", fd, n), nil

	case "read":
		if len(op.Args) < 2 {
			return "", fmt.Errorf("read requires <fd> <n>")
		}
		fd, err := parseFd(op.Args[0])
		if err != nil {
			return "", err
		}
		n, err := strconv.Atoi(op.Args[1])
		if err != nil {
			return "", err
		}
		buf := make([]byte, n)
		read, errno := sb.FdRead(fd, [][]byte{buf})
		if errno != wasicore.ESUCCESS {
			return fmt.Sprintf("read fd=%d -> errno %s", fd, errno), nil
		}
		return fmt.Sprintf("read fd=%d -> %q", fd, buf[:read]), nil

	case "mkdir":
		if len(op.Args) < 2 {
			return "", fmt.Errorf("mkdir requires <dirfd> <path>")
		}
		dirFd, err := parseFd(op.Args[0])
		if err != nil {
			return "", err
		}
		errno := sb.PathCreateDirectory(dirFd, op.Args[1])
		return fmt.Sprintf("mkdir %s -> %s", op.Args[1], errno), nil

	case "unlink":
		if len(op.Args) < 2 {
			return "", fmt.Errorf("unlink requires <dirfd> <path>")
		}
		dirFd, err := parseFd(op.Args[0])
		if err != nil {
			return "", err
		}
		errno := sb.PathUnlinkFile(dirFd, op.Args[1])
		return fmt.Sprintf("unlink %s -> %s", op.Args[1], errno), nil

	case "close":
		if len(op.Args) < 1 {
			return "", fmt.Errorf("close requires <fd>")
		}
		fd, err := parseFd(op.Args[0])
		if err != nil {
			return "", err
		}
		errno := sb.FdClose(fd)
		return fmt.Sprintf("close fd=%d -> %s", fd, errno), nil

	default:
		return "", fmt.Errorf("unknown op %q", op.Verb)
	}
}

func parseFd(s string) (wasicore.Fd, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid fd %q: %w", s, err)
	}
	return wasicore.Fd(n), nil
}
