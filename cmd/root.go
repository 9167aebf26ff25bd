/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/allbin/serialterm/internal/config"
	"github.com/allbin/serialterm/pkg/logging"
)

var (
	cfgFile string
	cfg     config.Config

	v = config.New()

	// logFile is the open log_file, if any
	logFile *os.File
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "serialterm",
	Short: "Interactive terminal for serial (COM) ports",
	Long: `serialterm talks to a device over a serial port: select a port and baud
rate, connect, type commands, send them and follow a scrolling log of sent and
received lines. The log can be cleared, saved to a file or copied.

Running serialterm without a subcommand starts the terminal UI.

Configuration is read from ~/.config/serialterm/config.yaml (or --config),
SERIALTERM_* environment variables and the flags below.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(false)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version for the root command
func SetVersion(version string) {
	rootCmd.Version = version
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/serialterm/config.yaml)")
	flags.StringP("port", "p", "", "Serial port to select")
	flags.IntP("baud", "b", 9600, "Baud rate: 9600, 19200, 38400, 57600 or 115200")
	flags.String("theme", "radiance", "Theme: aqua, radiance, scidblue or elegance")
	flags.Bool("night-mode", false, "Start with the night background")
	flags.Bool("preserve-selection", false, "Keep the selected port across port list refreshes")
	flags.String("line-ending", "none", "Appended to sent lines: none, lf, cr, crlf")
	flags.String("encoding", "utf-8", "Text encoding of the device (e.g. utf-8, iso-8859-1, shift_jis)")
	flags.Duration("read-timeout", 0, "Serial read timeout (default 100ms)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-file", "", "Write logs to this file (the terminal UI discards logs otherwise)")

	bindFlag(v, flags, config.KeyPort, "port")
	bindFlag(v, flags, config.KeyBaudRate, "baud")
	bindFlag(v, flags, config.KeyTheme, "theme")
	bindFlag(v, flags, config.KeyNightMode, "night-mode")
	bindFlag(v, flags, config.KeyPreserveSelection, "preserve-selection")
	bindFlag(v, flags, config.KeyLineEnding, "line-ending")
	bindFlag(v, flags, config.KeyEncoding, "encoding")
	bindFlag(v, flags, config.KeyReadTimeout, "read-timeout")
	bindFlag(v, flags, config.KeyLogLevel, "log-level")
	bindFlag(v, flags, config.KeyLogFile, "log-file")
}

func bindFlag(v *viper.Viper, flags *pflag.FlagSet, key, flag string) {
	if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

// loadConfig reads the configuration and sets up logging to stderr or the
// configured log file.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	return setupLogging(os.Stderr)
}

// setupLogging directs logs to log_file when set, otherwise to fallback.
func setupLogging(fallback io.Writer) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	out := fallback
	if cfg.LogFile != "" {
		if logFile == nil {
			logFile, err = os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
		}
		out = logFile
	}
	logging.Init(level, out)
	return nil
}
