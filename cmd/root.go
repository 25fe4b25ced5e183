package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sensorscope/sensorscope/cmd/config"
	"github.com/sensorscope/sensorscope/cmd/serve"
	"github.com/sensorscope/sensorscope/internal/pkg/logger"
	"github.com/sensorscope/sensorscope/internal/pkg/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     "sensorscope",
	Short:   "sensorscope watches your sensors",
	Long:    fmt.Sprintf("sensorscope %s - Live sensor telemetry dashboard", version.String()),
	Version: version.Detailed(),
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func addSubCommandPalattes() {
	rootCmd.AddCommand(serve.ServeCmd)
	rootCmd.AddCommand(config.ConfigCmd)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Initialize structured logging
	logger.Initialize()

	addSubCommandPalattes()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/sensorscope/config.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Priority order for config files:
		// 1. ~/.config/sensorscope/config.yaml
		// 2. ~/.config/sensorscope.yaml (XDG standard)
		// 3. ~/.sensorscope.yaml (legacy)
		viper.AddConfigPath(home + "/.config/sensorscope")
		viper.AddConfigPath(home + "/.config")
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigName("sensorscope")
		}
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
