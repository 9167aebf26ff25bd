/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/allbin/serialterm/internal/session"
)

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send [data] <port>",
	Short: "Send a line to a serial port",
	Long: `Send one line of text to a serial port, the same way the terminal UI
sends its input line.

Data can be provided as:
- Command line argument: send "AT+GMR" /dev/ttyUSB0
- From stdin (pipe): echo "AT" | serialterm send /dev/ttyUSB0
- Interactive mode: serialterm send /dev/ttyUSB0 (prompts for input)

The text is trimmed, encoded with --encoding and followed by --line-ending.
With --wait the command stays connected for that long and prints the lines
the device answers with.

Example usage:
  serialterm send "AT+GMR" /dev/ttyUSB0 --line-ending crlf
  serialterm send "status" COM3 --baud 115200 --wait 2s`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data, portPath string

		// Parse arguments: either "send data port" or "send port"
		if len(args) == 1 {
			portPath = args[0]
			var err error
			data, err = readInput(cmd.OutOrStdout(), os.Stdin)
			if err != nil {
				return err
			}
		} else {
			data = args[0]
			portPath = args[1]
		}

		wait, _ := cmd.Flags().GetDuration("wait")
		return sendData(cmd.OutOrStdout(), portPath, data, wait)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().DurationP("wait", "w", 0, "Keep the port open this long and print received lines")
}

// readInput reads the data from a pipe or prompts for it on a terminal.
func readInput(out io.Writer, in *os.File) (string, error) {
	stat, err := in.Stat()
	if err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
		return promptForData(out, in), nil
	}
	stdinData, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading from stdin: %w", err)
	}
	return strings.TrimRight(string(stdinData), "\r\n"), nil
}

func promptForData(out io.Writer, in io.Reader) string {
	fmt.Fprint(out, infoStyle.Render("Enter data to send: "))

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return scanner.Text()
	}
	return ""
}

func sendData(out io.Writer, portPath, data string, wait time.Duration) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	fmt.Fprintf(out, "%s Opening %s at %d baud...\n", infoStyle.Render("⚡"), portPath, cfg.BaudRate)
	if err := sess.Connect(portPath, strconv.Itoa(cfg.BaudRate)); err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("✗"), err)
	}
	fmt.Fprintf(out, "%s Connected successfully\n", successStyle.Render("✓"))

	line, err := sess.Send(data)
	if err != nil {
		return fmt.Errorf("%s failed to send data: %w", errorStyle.Render("✗"), err)
	}
	fmt.Fprintf(out, "%s %s (%d bytes)\n", successStyle.Render("✓"), line, sess.Stats().BytesSent)

	if wait > 0 {
		printEvents(out, sess, time.After(wait))
	}
	return nil
}

// printEvents prints session events until done fires or the connection is lost.
func printEvents(out io.Writer, sess *session.Session, done <-chan time.Time) {
	for {
		select {
		case ev := <-sess.Events():
			fmt.Fprintln(out, strings.TrimRight(ev.LogLine(), "\r\n"))
			if ev.Kind == session.EventReadError {
				return
			}
		case <-done:
			return
		}
	}
}
