//go:build linux || darwin

// Package server opens the listener of the HTTP server.
package server

import (
	"errors"
	"net"
	"os"
	"strconv"
)

// sdListenFDsStart is the first file descriptor passed by systemd.
const sdListenFDsStart = 3

var errNoActivation = errors.New("socket activation requested but no valid LISTEN_FDS")

// GetListener uses the systemd socket when SOCKET_ACTIVATION=1, and listens
// on addr otherwise.
func GetListener(addr string) (net.Listener, error) {
	if os.Getenv("SOCKET_ACTIVATION") != "1" {
		return net.Listen("tcp", addr)
	}
	if os.Getenv("LISTEN_FDS") != "1" {
		return nil, errNoActivation
	}
	if pid, err := strconv.Atoi(os.Getenv("LISTEN_PID")); err != nil || pid != os.Getpid() {
		return nil, errNoActivation
	}
	f := os.NewFile(uintptr(sdListenFDsStart), "listener")
	if f == nil {
		return nil, errNoActivation
	}
	return net.FileListener(f)
}
