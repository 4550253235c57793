//go:build !linux && !darwin

// Package server opens the listener of the HTTP server.
package server

import "net"

// GetListener listens on addr.
func GetListener(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}
