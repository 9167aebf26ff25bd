package serial

import (
	"errors"
	"testing"

	"go.bug.st/serial/enumerator"
)

func stubPortLists(t *testing.T, ports []string, details []*enumerator.PortDetails) {
	t.Helper()
	originalList, originalDetailed := listNative, listDetailed
	listNative = func() ([]string, error) { return ports, nil }
	listDetailed = func() ([]*enumerator.PortDetails, error) { return details, nil }
	t.Cleanup(func() {
		listNative = originalList
		listDetailed = originalDetailed
	})
}

func TestListPortsSorted(t *testing.T) {
	stubPortLists(t, []string{"/dev/ttyUSB1", "/dev/ttyACM0", "/dev/ttyUSB0"}, nil)

	ports, err := ListPorts()
	if err != nil {
		t.Fatalf("ListPorts failed: %v", err)
	}

	expected := []string{"/dev/ttyACM0", "/dev/ttyUSB0", "/dev/ttyUSB1"}
	if len(ports) != len(expected) {
		t.Fatalf("Expected %d ports, got %d", len(expected), len(ports))
	}
	for i := range expected {
		if ports[i] != expected[i] {
			t.Errorf("ports[%d] = %s, expected %s", i, ports[i], expected[i])
		}
	}
}

func TestListPortsEmptyIsValid(t *testing.T) {
	stubPortLists(t, nil, nil)

	ports, err := ListPorts()
	if err != nil {
		t.Errorf("Empty enumeration should not fail: %v", err)
	}
	if len(ports) != 0 {
		t.Errorf("Expected no ports, got %v", ports)
	}
}

func TestListPortsError(t *testing.T) {
	original := listNative
	listNative = func() ([]string, error) { return nil, errors.New("enumeration failed") }
	defer func() { listNative = original }()

	if _, err := ListPorts(); err == nil {
		t.Error("Expected enumeration error to be returned")
	}
}

func TestIsCharacterDevice(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/dev/null", true},     // Should exist and be a character device
		{"/dev/zero", true},     // Should exist and be a character device
		{"/tmp", false},         // Directory, not character device
		{"/nonexistent", false}, // Doesn't exist
	}

	for _, test := range tests {
		result := isCharacterDevice(test.path)
		if result != test.expected {
			t.Errorf("isCharacterDevice(%s) = %v, expected %v", test.path, result, test.expected)
		}
	}
}

func TestGetPortDescription(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"ttyUSB0", "USB Serial Port"},
		{"ttyACM0", "USB CDC/ACM Device"},
		{"ttyS0", "Standard Serial Port"},
		{"ttyAMA0", "ARM Serial Port"},
		{"ttymxc0", "i.MX Serial Port"},
		{"ttyO0", "OMAP Serial Port"},
		{"ttySAC0", "Samsung Serial Port"},
		{"ttyTHS0", "Tegra Serial Port"},
		{"cu.usbserial-1410", "macOS Serial Device"},
		{"COM3", "COM Port"},
		{"unknown", "Serial Port"},
	}

	for _, test := range tests {
		result := getPortDescription(test.name)
		if result != test.expected {
			t.Errorf("getPortDescription(%s) = %s, expected %s", test.name, result, test.expected)
		}
	}
}

func TestGetPortInfoUSBDetails(t *testing.T) {
	stubPortLists(t, []string{"/dev/ttyUSB0"}, []*enumerator.PortDetails{{
		Name:         "/dev/ttyUSB0",
		IsUSB:        true,
		VID:          "1a86",
		PID:          "7523",
		SerialNumber: "",
		Product:      "USB Serial",
	}})

	info, err := GetPortInfo("/dev/ttyUSB0")
	if err != nil {
		t.Fatalf("GetPortInfo failed: %v", err)
	}
	if !info.IsUSB || info.VendorID != "1a86" || info.ProductID != "7523" {
		t.Errorf("USB details not copied: %+v", info)
	}
	if info.Description != "USB Serial" {
		t.Errorf("Expected product as description, got %s", info.Description)
	}
	if info.Name != "ttyUSB0" {
		t.Errorf("Expected name ttyUSB0, got %s", info.Name)
	}
}

func TestGetPortInfo(t *testing.T) {
	stubPortLists(t, nil, nil)

	// /dev/null always exists and is a character device
	info, err := GetPortInfo("/dev/null")
	if err != nil {
		t.Fatalf("GetPortInfo failed for /dev/null: %v", err)
	}

	if info.Name != "null" {
		t.Errorf("Expected name 'null', got '%s'", info.Name)
	}

	if info.Path != "/dev/null" {
		t.Errorf("Expected path '/dev/null', got '%s'", info.Path)
	}

	if info.Description == "" {
		t.Error("Description should not be empty")
	}

	// Test with non-existent device
	_, err = GetPortInfo("/dev/nonexistent")
	if err != ErrDeviceNotFound {
		t.Errorf("Expected ErrDeviceNotFound, got %v", err)
	}
}

// TestListPortsIntegration is an integration test that requires actual system
func TestListPortsIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ports, err := ListPorts()
	if err != nil {
		t.Skipf("Port enumeration unavailable: %v", err)
	}

	t.Logf("Found %d serial ports:", len(ports))
	for i, port := range ports {
		info, err := GetPortInfo(port)
		if err != nil {
			t.Logf("  %d. %s (error getting info: %v)", i+1, port, err)
		} else {
			t.Logf("  %d. %s (%s)", i+1, port, info.Description)
		}
	}
}
