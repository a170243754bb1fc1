//go:build darwin

package stayon

func defaultCommand() []string {
	return []string{"caffeinate", "-u", "-t", "1"}
}
