//go:build linux

package stayon

import "os/exec"

func defaultCommand() []string {
	if _, err := exec.LookPath("xdg-screensaver"); err != nil {
		return nil
	}
	return []string{"xdg-screensaver", "reset"}
}
