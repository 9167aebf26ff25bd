// Package serial is the operating-system side of serialterm: it opens serial
// ports, lists the ports attached to the machine and classifies the errors the
// OS reports, on top of go.bug.st/serial.
//
// # Basic Usage
//
// Open a port at 9600 8N1 with a short read timeout:
//
//	port, err := serial.Open("/dev/ttyUSB0",
//	    serial.WithBaudRate(9600),
//	    serial.WithReadTimeout(100*time.Millisecond),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	n, err := port.Write([]byte("AT\r"))
//	buffer := make([]byte, 256)
//	n, err = port.Read(buffer) // 0, nil when the timeout expires
//
// A zero read timeout makes reads non-blocking.
//
// # Port Discovery
//
//	ports, err := serial.ListPorts()
//	for _, portPath := range ports {
//	    info, _ := serial.GetPortInfo(portPath)
//	    fmt.Printf("%s: %s (VID=%s PID=%s)\n",
//	        info.Path, info.Description, info.VendorID, info.ProductID)
//	}
//
// # Error Handling
//
// Open failures are returned as *PortOpenError, which matches ErrPortOpen and,
// where the cause is known, ErrDeviceNotFound, ErrPermissionDenied or
// ErrDeviceInUse:
//
//	if errors.Is(err, serial.ErrDeviceInUse) {
//	    // another program holds the port
//	}
//
// User supplied baud rates go through ParseBaudRate, which rejects anything
// that is not a positive integer with ErrInvalidBaudRate.
package serial
