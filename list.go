package serial

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	bugst "go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// Swapped in tests
var (
	listNative   = bugst.GetPortsList
	listDetailed = enumerator.GetDetailedPortsList
)

// ListPorts returns the serial ports currently attached to the system, sorted.
// An empty list is not an error.
func ListPorts() ([]string, error) {
	ports, err := listNative()
	if err != nil {
		return nil, fmt.Errorf("listing serial ports: %w", err)
	}

	// Sort the ports for consistent ordering
	sorted := make([]string, len(ports))
	copy(sorted, ports)
	sort.Strings(sorted)

	return sorted, nil
}

// PortInfo describes a serial port for display
type PortInfo struct {
	Name         string
	Path         string
	Description  string
	IsUSB        bool
	VendorID     string
	ProductID    string
	SerialNumber string
	Product      string
}

// GetPortInfo returns detailed information about a specific port
func GetPortInfo(portPath string) (*PortInfo, error) {
	name := filepath.Base(portPath)
	info := &PortInfo{
		Name:        name,
		Path:        portPath,
		Description: getPortDescription(name),
	}

	details, err := listDetailed()
	if err == nil {
		for _, d := range details {
			if d.Name != portPath {
				continue
			}
			info.IsUSB = d.IsUSB
			info.VendorID = d.VID
			info.ProductID = d.PID
			info.SerialNumber = d.SerialNumber
			info.Product = d.Product
			if d.IsUSB && d.Product != "" {
				info.Description = d.Product
			}
			return info, nil
		}
	}

	// Not enumerated: accept it only if the device node exists
	if runtime.GOOS != "windows" && !isCharacterDevice(portPath) {
		return nil, ErrDeviceNotFound
	}

	return info, nil
}

// isCharacterDevice checks if the given path is a character device
func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	// Check if it's a character device
	mode := info.Mode()
	return mode&os.ModeCharDevice != 0
}

// getPortDescription provides human-readable descriptions for different port types
func getPortDescription(name string) string {
	switch {
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial Port"
	case strings.HasPrefix(name, "ttySAC"):
		return "Samsung Serial Port"
	case strings.HasPrefix(name, "ttyTHS"):
		return "Tegra Serial Port"
	case strings.HasPrefix(name, "ttyO"):
		return "OMAP Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	case strings.HasPrefix(name, "cu."), strings.HasPrefix(name, "tty."):
		return "macOS Serial Device"
	case strings.HasPrefix(strings.ToUpper(name), "COM"):
		return "COM Port"
	default:
		return "Serial Port"
	}
}
