package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dop251/goja"
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/cliptrim/script"
)

var (
	replDuration float64
	replBarWidth float64
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Drive a headless trimmer from a JavaScript shell",
	Long: `Start an interactive shell bound to a headless trimmer. Each line is
evaluated as JavaScript with the "trimmer" object in scope; .state prints the
current range and .help lists the shell commands.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().Float64VarP(&replDuration, "duration", "d", 120, "Clip duration in seconds")
	replCmd.Flags().Float64Var(&replBarWidth, "bar-width", 0, "Override the bar width in pixels")
}

func runRepl(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	submit, err := submitHook(out, cfg.UploadURL)
	if err != nil {
		return err
	}
	h, err := newHarness(replDuration, replBarWidth, false, nil, submit)
	if err != nil {
		return err
	}
	defer h.Close()
	rt := script.NewRuntime(h, out)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warn("no home directory for history", "error", err)
		homeDir = "."
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "trim> ",
		HistoryFile:  filepath.Join(homeDir, ".cliptrim_history"),
		AutoComplete: replCompleter(),
		Stdout:       out,
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	printReplHelp(out)
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		if !evalLine(rt, strings.TrimSpace(line), out) {
			return nil
		}
	}
}

// evalLine runs one shell line and reports whether the shell should go on.
func evalLine(rt *script.Runtime, line string, out io.Writer) bool {
	switch line {
	case "":
		return true
	case ".exit", ".quit":
		return false
	case ".help":
		printReplHelp(out)
		return true
	case ".state":
		line = "JSON.stringify(trimmer.state())"
	}

	v, err := rt.Execute(line)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return true
	}
	if v != nil && !goja.IsUndefined(v) {
		fmt.Fprintln(out, v.String())
	}
	return true
}

func printReplHelp(out io.Writer) {
	fmt.Fprintf(out, "Commands:\n")
	fmt.Fprintf(out, "  trimmer.drag(\"start\", x)     Drag a handle to client x\n")
	fmt.Fprintf(out, "  trimmer.dragToTime(\"end\", s) Drag a handle to a time in seconds\n")
	fmt.Fprintf(out, "  trimmer.click(x)              Click the timeline\n")
	fmt.Fprintf(out, "  trimmer.clickMedia()          Toggle playback\n")
	fmt.Fprintf(out, "  trimmer.advance(ms)           Advance playback time\n")
	fmt.Fprintf(out, "  trimmer.setTitle(name)        Type a video name\n")
	fmt.Fprintf(out, "  trimmer.confirm()             Press Trim & upload\n")
	fmt.Fprintf(out, "  .state                        Show the current state\n")
	fmt.Fprintf(out, "  .exit                         Leave the shell\n")
}

func replCompleter() *readline.PrefixCompleter {
	items := []string{
		"pointerDown(", "pointerMove(", "pointerUp()", "drag(", "dragToTime(",
		"click(", "clickMedia()", "setTitle(", "confirm()", "submit()",
		"frames(", "advance(", "load(", "state()", "html()",
	}
	pcs := make([]readline.PrefixCompleterInterface, 0, len(items)+3)
	for _, item := range items {
		pcs = append(pcs, readline.PcItem("trimmer."+item))
	}
	pcs = append(pcs, readline.PcItem(".state"), readline.PcItem(".help"), readline.PcItem(".exit"))
	return readline.NewPrefixCompleter(pcs...)
}
