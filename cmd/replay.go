package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/cliptrim/headless"
	"github.com/chrisuehlinger/cliptrim/internal/platform/metrics"
	"github.com/chrisuehlinger/cliptrim/script"
	"github.com/chrisuehlinger/cliptrim/trimmer"
	"github.com/chrisuehlinger/cliptrim/upload"
)

var (
	replayDuration float64
	replayBarWidth float64
	replayAutoplay bool
	replayHTML     bool
	replayMetrics  bool
	replayUpload   string
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.js>",
	Short: "Run an interaction script against a headless trimmer",
	Long: `Run a JavaScript interaction script against a headless trimmer and print
the resulting range. The script drives the trimmer through the global
"trimmer" object (pointerDown, pointerMove, pointerUp, drag, click,
clickMedia, setTitle, confirm, advance, state, ...).`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().Float64VarP(&replayDuration, "duration", "d", 120, "Clip duration in seconds")
	replayCmd.Flags().Float64Var(&replayBarWidth, "bar-width", 0, "Override the bar width in pixels")
	replayCmd.Flags().BoolVar(&replayAutoplay, "autoplay", false, "Start playback when the clip loads")
	replayCmd.Flags().BoolVar(&replayHTML, "html", false, "Print the final region markup")
	replayCmd.Flags().BoolVar(&replayMetrics, "metrics", false, "Print interaction metrics")
	replayCmd.Flags().StringVar(&replayUpload, "upload-url", "", "Post confirmed trims to this endpoint")
}

func runReplay(cmd *cobra.Command, args []string) error {
	path := args[0]
	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	out := cmd.OutOrStdout()
	endpoint := cfg.UploadURL
	if cmd.Flags().Changed("upload-url") {
		endpoint = replayUpload
	}
	submit, err := submitHook(out, endpoint)
	if err != nil {
		return err
	}
	met := metrics.New()
	h, err := newHarness(replayDuration, replayBarWidth, replayAutoplay, met, submit)
	if err != nil {
		return err
	}
	defer h.Close()

	rt := script.NewRuntime(h, out)
	if err := rt.ExecuteScript(string(code), path); err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}

	printRange(out, h.Selector())
	if replayHTML {
		fmt.Fprintln(out, h.Doc.String())
	}
	if replayMetrics {
		if err := met.WriteText(out); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// newHarness builds a headless trimmer whose form hands submissions to submit.
func newHarness(duration, barWidth float64, autoplay bool, obs trimmer.Observer, submit func(trimmer.Fields) error) (*headless.Harness, error) {
	h, err := headless.New(duration, headless.Options{
		BarWidth: barWidth,
		Autoplay: autoplay,
		Logger:   log,
		Observer: obs,
	})
	if err != nil {
		return nil, err
	}
	h.Form.OnSubmit = submit
	return h, nil
}

// submitHook prints each confirmed trim to out and, with an endpoint,
// uploads it using the configured session cookie and timeout.
func submitHook(out io.Writer, endpoint string) (func(trimmer.Fields) error, error) {
	up, err := newUploader(endpoint)
	if err != nil {
		return nil, err
	}
	return func(f trimmer.Fields) error {
		fmt.Fprintf(out, "submitted %s\n", formatFields(f))
		if up == nil {
			return nil
		}
		if err := up.Submit(f); err != nil {
			return err
		}
		log.Info("trim uploaded", "endpoint", up.Endpoint(), "title", f.VideoTitle)
		return nil
	}, nil
}

// newUploader returns nil for an empty endpoint.
func newUploader(endpoint string) (*upload.Uploader, error) {
	if endpoint == "" {
		return nil, nil
	}
	client, err := upload.NewClient(
		upload.WithTimeout(time.Duration(cfg.UploadTimeout * float64(time.Second))),
	)
	if err != nil {
		return nil, err
	}
	up, err := upload.NewUploader(endpoint, client)
	if err != nil {
		return nil, err
	}
	if cfg.UploadCookie != "" {
		if err := up.SetSession(cfg.UploadCookie); err != nil {
			return nil, err
		}
	}
	return up, nil
}

func printRange(out io.Writer, s *trimmer.Selector) {
	if s == nil {
		fmt.Fprintln(out, "no active trimmer")
		return
	}
	start, end := s.Range()
	fmt.Fprintf(out, "trim %s - %s (%s)\n",
		trimmer.FormatTime(start), trimmer.FormatTime(end), trimmer.FormatTime(end-start))
}
