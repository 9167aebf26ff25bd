/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/allbin/serialterm/internal/console"
	"github.com/allbin/serialterm/internal/session"
	"github.com/allbin/serialterm/pkg/logging"
)

// listenCmd represents the listen command
var listenCmd = &cobra.Command{
	Use:   "listen <port>",
	Short: "Print what a serial port receives",
	Long: `Connect to a serial port and print every received line until interrupted
(Ctrl+C) or until --duration elapses. Lines are printed as the terminal UI logs
them, e.g. "Received: OK".

With --output the received log is also saved to a file when listening stops.
A file name without extension gets ".txt".

Example usage:
  serialterm listen /dev/ttyUSB0
  serialterm listen COM3 --baud 115200 --timestamps
  serialterm listen /dev/ttyACM0 --duration 30s --output boot.log`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		duration, _ := cmd.Flags().GetDuration("duration")
		timestamps, _ := cmd.Flags().GetBool("timestamps")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if duration > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, duration)
			defer cancel()
		}

		return listen(ctx, cmd.OutOrStdout(), args[0], listenOptions{
			output:     output,
			timestamps: timestamps,
		})
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)

	listenCmd.Flags().StringP("output", "o", "", "Save the received log to this file when done")
	listenCmd.Flags().DurationP("duration", "d", 0, "Stop listening after this long (default: until interrupted)")
	listenCmd.Flags().Bool("timestamps", false, "Prefix printed lines with the local time")
}

type listenOptions struct {
	output     string
	timestamps bool
}

func listen(ctx context.Context, out io.Writer, portPath string, opts listenOptions) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.Connect(portPath, strconv.Itoa(cfg.BaudRate)); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s Listening on %s at %d baud (Ctrl+C to stop)\n",
		infoStyle.Render("⚡"), portPath, cfg.BaudRate)

	log := console.NewLog(cfg.MaxLogLines)
	lost := false
	for !lost {
		select {
		case ev := <-sess.Events():
			line := ev.LogLine()
			log.Append(line)
			printLine(out, line, opts.timestamps)
			lost = ev.Kind == session.EventReadError
		case <-ctx.Done():
			lost = true
		}
	}

	stats := sess.Stats()
	if err := sess.Disconnect(); err != nil {
		logging.Warn("listen", "disconnect %s: %v", portPath, err)
	}
	fmt.Fprintf(out, "%s Received %d bytes in %s\n", successStyle.Render("✓"),
		stats.BytesReceived, time.Since(stats.ConnectedAt).Round(time.Second))

	if opts.output == "" {
		return nil
	}
	path := console.WithDefaultExtension(opts.output)
	if err := log.SaveToFile(path); err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("✗"), err)
	}
	fmt.Fprintf(out, "%s Saved %d lines to %s\n", successStyle.Render("✓"), log.Len(), path)
	return nil
}

func printLine(out io.Writer, line string, timestamps bool) {
	line = strings.TrimRight(line, "\r\n")
	if timestamps {
		fmt.Fprintf(out, "[%s] %s\n", time.Now().Format("15:04:05.000"), line)
		return
	}
	fmt.Fprintln(out, line)
}
