//go:build !linux && !darwin

package stayon

func defaultCommand() []string {
	return nil
}
