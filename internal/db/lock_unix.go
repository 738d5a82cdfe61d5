//go:build unix

package db

import "syscall"

func (l *writeLocker) tryLock() error {
	return syscall.Flock(int(l.file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
}

func (l *writeLocker) unlock() {
	if l.file != nil {
		syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	}
}

// isProcessAlive probes pid with signal 0
func isProcessAlive(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}
