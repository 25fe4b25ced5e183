// Package serve implements the serve command, which runs the capture loop
// and the dashboard HTTP server until interrupted.
package serve

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sensorscope/sensorscope/internal/pkg/cmdutil"
	"github.com/sensorscope/sensorscope/internal/pkg/constants"
	"github.com/sensorscope/sensorscope/internal/pkg/engine"
	"github.com/sensorscope/sensorscope/internal/pkg/logger"
	"github.com/sensorscope/sensorscope/internal/pkg/metrics"
	"github.com/sensorscope/sensorscope/internal/pkg/settings"
	"github.com/sensorscope/sensorscope/internal/pkg/signals"
	"github.com/sensorscope/sensorscope/internal/pkg/store"
	"github.com/sensorscope/sensorscope/internal/pkg/web"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sensorscope dashboard",
	Long:  `Start the capture loop and the dashboard web server. Capture begins paused; use the dashboard controls to start logging.`,
	RunE:  runServe,
}

var (
	listenAddr    string
	tickInterval  time.Duration
	bufferSize    int
	channelCount  int
	enableMetrics bool
)

func init() {
	ServeCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "listen address (default :8080)")
	ServeCmd.Flags().DurationVarP(&tickInterval, "interval", "i", 0, "capture tick interval (default 500ms)")
	ServeCmd.Flags().IntVarP(&bufferSize, "buffer-size", "b", 0, "samples retained per channel (default 10000)")
	ServeCmd.Flags().IntVarP(&channelCount, "channels", "c", 0, "number of simulated sensor channels (default 4)")
	ServeCmd.Flags().BoolVarP(&enableMetrics, "metrics", "m", true, "expose Prometheus metrics on /metrics")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cmdutil.GetStringConfig("listen", listenAddr)
	if addr == "" {
		addr = constants.DefaultListenAddr
	}
	interval := tickInterval
	if interval <= 0 {
		interval = cmdutil.GetDurationConfig("interval", constants.DefaultTickInterval)
	}
	capacity := bufferSize
	if capacity <= 0 {
		capacity = cmdutil.GetIntConfig("buffer_size", constants.DefaultBufferCapacity)
	}
	channels := channelCount
	if channels <= 0 {
		channels = cmdutil.GetIntConfig("channels", constants.ChannelCount)
	}
	withMetrics := cmdutil.GetBoolConfig("metrics", enableMetrics)

	names := make([]string, channels)
	for i := range names {
		names[i] = fmt.Sprintf("s%d", i+1)
	}
	st := store.NewSampleStore(names, capacity)
	registry := settings.NewRegistry(channels)

	var m *metrics.Metrics
	if withMetrics {
		m = metrics.New()
	}

	eng := engine.New(engine.Options{
		Store:    st,
		Registry: registry,
		Metrics:  m,
	})

	srv, err := web.NewServer(web.Options{
		Addr:         addr,
		Engine:       eng,
		Store:        st,
		Registry:     registry,
		Metrics:      m,
		TickInterval: interval,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	cleanup := signals.SetupHandler(ctx, cancel)
	defer cleanup()

	logger.Info("starting sensorscope",
		"addr", addr,
		"interval", interval.String(),
		"buffer_size", capacity,
		"channels", channels,
		"metrics", withMetrics,
	)

	go eng.Run(ctx, interval)
	return srv.Start(ctx)
}
