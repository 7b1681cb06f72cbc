//go:build !unix

package probe

import "os/exec"

// configureProcess keeps the default exec.CommandContext behavior, which
// kills the scanner process itself on cancellation.
func configureProcess(_ *exec.Cmd) {}
