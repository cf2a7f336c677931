package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/cliptrim/internal/platform/logger"
	"github.com/chrisuehlinger/cliptrim/internal/platform/metrics"
	"github.com/chrisuehlinger/cliptrim/trimmer"
	"github.com/chrisuehlinger/cliptrim/ui"
)

const shutdownTimeout = 5 * time.Second

var (
	openDuration    float64
	openTitle       string
	openMetricsAddr string
	openUpload      string
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the trimmer window",
	Long: `Open a desktop window with a simulated clip of --duration seconds.
Confirmed trims are printed to stdout and, with --upload-url, posted to the
upload endpoint. With --metrics-addr, interaction counters are served at
/metrics while the window is open.`,
	Args: cobra.NoArgs,
	RunE: runOpen,
}

func init() {
	openCmd.Flags().Float64VarP(&openDuration, "duration", "d", 120, "Clip duration in seconds")
	openCmd.Flags().StringVarP(&openTitle, "title", "t", "", "Initial video name")
	openCmd.Flags().StringVar(&openMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	openCmd.Flags().StringVar(&openUpload, "upload-url", "", "Post confirmed trims to this endpoint")
}

func runOpen(cmd *cobra.Command, args []string) error {
	if openDuration <= 0 {
		return &trimmer.InvalidDurationError{Duration: openDuration}
	}
	addr := cfg.MetricsAddr
	if cmd.Flags().Changed("metrics-addr") {
		addr = openMetricsAddr
	}

	endpoint := cfg.UploadURL
	if cmd.Flags().Changed("upload-url") {
		endpoint = openUpload
	}
	submit, err := submitHook(cmd.OutOrStdout(), endpoint)
	if err != nil {
		return err
	}
	opts := ui.Options{
		Duration:     openDuration,
		Title:        openTitle,
		PlaybackRate: cfg.PlaybackRate,
		Logger:       log,
		OnSubmit:     submit,
	}

	if addr != "" {
		met := metrics.New()
		opts.Observer = met

		r := chi.NewRouter()
		r.Use(logger.RequestLogger(log))
		r.Mount("/", met.Router())
		srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server error", "error", err)
			}
		}()
		log.Info("metrics server starting", "addr", addr)

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Error("metrics shutdown error", "error", err)
			}
		}()
	}

	width := float32(cfg.WindowWidth)
	return ui.Run(opts, width, width*3/5)
}

func formatFields(f trimmer.Fields) string {
	return fmt.Sprintf("%s - %s  start=%g end=%g title=%q",
		trimmer.FormatTime(f.StartTimeSeconds), trimmer.FormatTime(f.EndTimeSeconds),
		f.StartTimeSeconds, f.EndTimeSeconds, f.VideoTitle)
}
