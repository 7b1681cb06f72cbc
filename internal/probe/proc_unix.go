//go:build unix

package probe

import (
	"os/exec"
	"syscall"
)

// configureProcess starts the scanner in its own process group and makes
// cancellation kill the whole group, so helper processes the scanner spawned
// do not outlive the probe.
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
