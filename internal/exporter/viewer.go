package exporter

import (
	"os/exec"
	"runtime"

	"salescli/internal/errors"
)

// startCommand launches a detached process; replaced in tests
var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// viewerCommand returns the platform command that opens a document
func viewerCommand(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

// OpenViewer opens path with the default application of the desktop.
// It does not wait for the viewer to exit.
func OpenViewer(path string) error {
	name, args := viewerCommand(runtime.GOOS, path)
	if err := startCommand(name, args...); err != nil {
		return errors.NewIOError("failed to open viewer", path, err).WithContext("command", name)
	}
	return nil
}
