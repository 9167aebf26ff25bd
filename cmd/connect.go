/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/allbin/serialterm/internal/session"
	"github.com/allbin/serialterm/internal/settings"
	"github.com/allbin/serialterm/internal/tui/models"
	"github.com/allbin/serialterm/pkg/logging"
)

// connectCmd represents the connect command
var connectCmd = &cobra.Command{
	Use:   "connect [port]",
	Short: "Open the terminal UI and connect to a serial port",
	Long: `Open the terminal UI and connect right away to the given port (or the
configured one).

The terminal shows the sent and received lines in a scrolling console with an
input line for commands. Keys in normal mode:
  i        insert mode (type a command, enter sends it)
  t        connect/disconnect
  p        select port
  b/B      next/previous baud rate
  r        refresh the port list
  c        clear the console
  s        save the console to a file
  y        copy the console to the clipboard
  o        settings (theme, night mode)
  ?        help
  q        quit

Example usage:
  serialterm connect /dev/ttyUSB0
  serialterm connect COM3 --baud 115200 --line-ending crlf`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			cfg.Port = args[0]
		}
		if cfg.Port == "" {
			return fmt.Errorf("no port given: pass one as argument or set --port")
		}
		return runTUI(true)
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
}

// newSettings returns the startup settings from the configuration.
func newSettings() *settings.Settings {
	st := settings.New()
	st.Port = cfg.Port
	st.BaudRate = strconv.Itoa(cfg.BaudRate)
	st.SetTheme(cfg.Theme)
	st.SetNightMode(cfg.NightMode)
	return st
}

// openPort opens the ports of every session the commands create.
var openPort session.OpenFunc = session.OpenSerial

func newSession() (*session.Session, error) {
	opts, err := cfg.SessionOptions()
	if err != nil {
		return nil, err
	}
	opts.Open = openPort
	return session.New(opts), nil
}

func runTUI(autoConnect bool) error {
	// The alt screen owns the terminal; logs go to log_file or nowhere
	if err := setupLogging(io.Discard); err != nil {
		return err
	}

	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	m := models.NewSerialModel(sess, newSettings(), models.Options{
		RefreshInterval:   cfg.RefreshInterval,
		PreserveSelection: cfg.PreserveSelection,
		MaxLogLines:       cfg.MaxLogLines,
		AutoConnect:       autoConnect,
	})

	logging.Info("tui", "starting terminal UI")
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()

	// Ensure cleanup
	m.Cleanup()
	return err
}
