// Package constants provides shared constants used across sensorscope components.
package constants

import "time"

// Capture and buffering
const (
	// DefaultTickInterval is the cadence of the capture/refresh tick.
	// This is a soft periodic tick, not a hard real-time deadline.
	DefaultTickInterval = 500 * time.Millisecond

	// DefaultBufferCapacity is the maximum number of samples retained per
	// channel. Once full, the oldest sample is evicted on every append, so
	// memory stays bounded regardless of how long capture runs.
	DefaultBufferCapacity = 10000

	// ChannelCount is the number of simulated sensor channels.
	ChannelCount = 4
)

// Signal generator tuning. The walk is mean-reverting so that a long capture
// stays inside a plot-friendly band instead of drifting without bound.
const (
	// GeneratorSeedValue is the value a channel starts from before any sample exists.
	GeneratorSeedValue = 50.0

	// GeneratorStepRange bounds the uniform random step to [-GeneratorStepRange, +GeneratorStepRange].
	GeneratorStepRange = 2.5

	// GeneratorReversion is the fraction of the distance to the seed value
	// removed on every step.
	GeneratorReversion = 0.1

	// GeneratorMin and GeneratorMax clamp every generated value.
	GeneratorMin = 0.0
	GeneratorMax = 120.0
)

// Display settings defaults and slider bounds. The dashboard and the detail
// pages carry independent settings instances with different defaults.
const (
	DashboardDisplayPoints = 100
	DashboardMinPoints     = 10
	DashboardMaxPoints     = 500
	DetailDisplayPoints    = 500
	DetailMinPoints        = 100
	DefaultMarkerSize      = 6
	MinMarkerSize          = 2
	MaxMarkerSize          = 12
)

// HTTP server
const (
	// DefaultListenAddr is the dashboard listen address.
	DefaultListenAddr = ":8080"

	// HTTPReadTimeout and HTTPWriteTimeout bound request handling; every
	// handler is a synchronous computation over in-memory state.
	HTTPReadTimeout  = 10 * time.Second
	HTTPWriteTimeout = 10 * time.Second

	// ShutdownTimeout is the time to wait for graceful server shutdown.
	ShutdownTimeout = 2 * time.Second
)

// Process lifecycle
const (
	// SignalChannelBuffer sizes the OS signal channel.
	SignalChannelBuffer = 1
)

// Export
const (
	// ExportRatePerSecond and ExportBurst throttle CSV downloads. A full
	// export materializes up to DefaultBufferCapacity rows, so repeated
	// clicks should not be able to pile up work.
	ExportRatePerSecond = 1
	ExportBurst         = 2
)
