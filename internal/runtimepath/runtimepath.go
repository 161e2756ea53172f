// Package runtimepath locates the per-user files the daemon and its clients
// share at runtime.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// SocketName is the file name of the daemon IPC socket.
	SocketName = "frametile.sock"
	// SocketEnv overrides the socket path, for running a second daemon
	// next to the usual one.
	SocketEnv = "FRAMETILE_SOCKET"
)

// Dir returns the runtime directory holding the frametile IPC socket.
// Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
// 3) /tmp/frametile-runtime-<uid> (created, private to the user)
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	uid := os.Getuid()
	runUserDir := fmt.Sprintf("/run/user/%d", uid)
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir, nil
	}

	tmpDir := fmt.Sprintf("/tmp/frametile-runtime-%d", uid)
	if err := os.MkdirAll(tmpDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return tmpDir, nil
}

// SocketPath returns the daemon IPC socket path: $FRAMETILE_SOCKET when it
// is set, SocketName in Dir otherwise.
func SocketPath() (string, error) {
	if path := os.Getenv(SocketEnv); path != "" {
		if !filepath.IsAbs(path) {
			return "", fmt.Errorf("%s must be an absolute path, got %q", SocketEnv, path)
		}
		return filepath.Clean(path), nil
	}
	runtimeDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(runtimeDir, SocketName), nil
}
