// Package singleinstance keeps two magnifier processes from fighting over
// the overlay and hotkeys by claiming a loopback TCP port for the lifetime
// of the process.
package singleinstance

import (
	"fmt"
	"net"
	"os"
	"strconv"
)

const (
	defaultPort = 47621
	portEnvVar  = "GOSCOPE_INSTANCE_PORT"
)

// Claim holds the instance port until Release.
type Claim struct {
	l net.Listener
}

// Acquire binds the instance port. A busy port means another instance is
// already resident.
func Acquire() (*Claim, error) {
	port := instancePort()
	l, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("port %d busy, another instance is running", port)
	}
	return &Claim{l: l}, nil
}

// Release frees the port so a new instance can start.
func (c *Claim) Release() {
	if c.l != nil {
		_ = c.l.Close()
		c.l = nil
	}
}

func instancePort() int {
	if v := os.Getenv(portEnvVar); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < 65536 {
			return n
		}
	}
	return defaultPort
}
