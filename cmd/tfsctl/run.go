package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tfs-go/tfs/tfs"
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Replay a line-oriented operation script against one filesystem",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

// handleSet maps the script's own textual handle names (the <name>
// token of "open"/"write"/etc.) to the engine's integer handles, so a
// script can refer to "h1", "h2", ... without knowing allocation
// order in advance.
type handleSet map[string]int

func runScript(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	fs, err := tfs.New()
	if err != nil {
		return fmt.Errorf("tfs.New: %w", err)
	}
	defer fs.Close()

	handles := make(handleSet)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := runLine(fs, handles, text); err != nil {
			fmt.Fprintf(os.Stderr, "[ tfs_run ] line %d: %v\n", line, err)
		}
	}
	return scanner.Err()
}

func runLine(fs *tfs.Filesystem, handles handleSet, line string) error {
	fields := strings.Fields(line)
	op := fields[0]
	args := fields[1:]

	switch op {
	case "lookup":
		if len(args) != 1 {
			return fmt.Errorf("lookup wants 1 arg, got %d", len(args))
		}
		inum, err := fs.Lookup(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("[ tfs_lookup ] %s -> inode %d\n", args[0], inum)

	case "open":
		if len(args) < 2 {
			return fmt.Errorf("open wants <path> <name> [flags...]")
		}
		path, name := args[0], args[1]
		var flags tfs.OpenFlag
		for _, f := range args[2:] {
			switch f {
			case "creat":
				flags |= tfs.Creat
			case "trunc":
				flags |= tfs.Trunc
			case "append":
				flags |= tfs.Append
			default:
				return fmt.Errorf("unknown open flag %q", f)
			}
		}
		h, err := fs.Open(path, flags)
		if err != nil {
			return err
		}
		handles[name] = h
		fmt.Printf("[ tfs_open ] %s -> handle %s (%d)\n", path, name, h)

	case "write":
		if len(args) < 2 {
			return fmt.Errorf("write wants <name> <text>")
		}
		h, ok := handles[args[0]]
		if !ok {
			return fmt.Errorf("unknown handle %q", args[0])
		}
		payload := strings.Join(args[1:], " ")
		n, err := fs.Write(h, []byte(payload))
		if err != nil {
			return err
		}
		fmt.Printf("[ tfs_write ] %s: %d bytes\n", args[0], n)

	case "read":
		if len(args) != 2 {
			return fmt.Errorf("read wants <name> <count>")
		}
		h, ok := handles[args[0]]
		if !ok {
			return fmt.Errorf("unknown handle %q", args[0])
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad count %q: %w", args[1], err)
		}
		buf := make([]byte, n)
		got, err := fs.Read(h, buf)
		if err != nil {
			return err
		}
		fmt.Printf("[ tfs_read ] %s: %q\n", args[0], string(buf[:got]))

	case "close":
		if len(args) != 1 {
			return fmt.Errorf("close wants <name>")
		}
		h, ok := handles[args[0]]
		if !ok {
			return fmt.Errorf("unknown handle %q", args[0])
		}
		if err := fs.CloseHandle(h); err != nil {
			return err
		}
		delete(handles, args[0])
		fmt.Printf("[ tfs_close ] %s\n", args[0])

	case "copy":
		if len(args) != 2 {
			return fmt.Errorf("copy wants <src-path> <dst-host-path>")
		}
		if err := fs.CopyToExternalFile(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("[ tfs_copy_to_external_fs ] %s -> %s\n", args[0], args[1])

	default:
		return fmt.Errorf("unknown op %q", op)
	}
	return nil
}
