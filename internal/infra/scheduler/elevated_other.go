//go:build !unix && !windows

package scheduler

func IsElevated() bool {
	return false
}
