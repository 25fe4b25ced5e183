// Package config implements the config command, which prints the effective
// configuration after flags, config file and environment are merged.
package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sensorscope/sensorscope/internal/pkg/cmdutil"
	"github.com/sensorscope/sensorscope/internal/pkg/constants"
)

var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  `Print the configuration the serve command would run with, as YAML. Useful for checking which config file and environment overrides are in effect.`,
	RunE:  runConfig,
}

type resolved struct {
	Listen     string `yaml:"listen"`
	Interval   string `yaml:"interval"`
	BufferSize int    `yaml:"buffer_size"`
	Channels   int    `yaml:"channels"`
	Metrics    bool   `yaml:"metrics"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := resolved{
		Listen:     cmdutil.GetStringConfig("listen", ""),
		Interval:   cmdutil.GetDurationConfig("interval", constants.DefaultTickInterval).String(),
		BufferSize: cmdutil.GetIntConfig("buffer_size", constants.DefaultBufferCapacity),
		Channels:   cmdutil.GetIntConfig("channels", constants.ChannelCount),
		Metrics:    cmdutil.GetBoolConfig("metrics", true),
	}
	if cfg.Listen == "" {
		cfg.Listen = constants.DefaultListenAddr
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}
