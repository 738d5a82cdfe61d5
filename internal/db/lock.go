package db

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	lockFileName   = "db.lock"
	defaultTimeout = 500 * time.Millisecond
	initialBackoff = 5 * time.Millisecond
	maxBackoff     = 50 * time.Millisecond
)

// writeLocker serializes record writes across qc processes with an OS file
// lock on .qc/db.lock. The OS drops the lock if the holder exits.
type writeLocker struct {
	path string
	file *os.File
}

func newWriteLocker(baseDir string) *writeLocker {
	return &writeLocker{path: filepath.Join(baseDir, ".qc", lockFileName)}
}

// lockHolder is the diagnostic content of the lock file
type lockHolder struct {
	PID   int
	Since string
}

func (h lockHolder) String() string {
	if h.PID == 0 {
		return "unknown"
	}
	if !isProcessAlive(h.PID) {
		return fmt.Sprintf("pid %d since %s (stale, process exited)", h.PID, h.Since)
	}
	return fmt.Sprintf("pid %d since %s", h.PID, h.Since)
}

// acquire blocks until the lock is held or timeout elapses.
func (l *writeLocker) acquire(timeout time.Duration) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	l.file = f

	deadline := time.Now().Add(timeout)
	for backoff := initialBackoff; ; backoff = min(backoff*2, maxBackoff) {
		if err := l.tryLock(); err == nil {
			l.stamp()
			return nil
		}
		if time.Now().After(deadline) {
			holder := l.holder()
			l.file.Close()
			l.file = nil
			return fmt.Errorf("another qc process is saving records (waited %v)\n  holder: %s", timeout, holder)
		}
		time.Sleep(backoff)
	}
}

func (l *writeLocker) release() error {
	if l.file == nil {
		return nil
	}
	l.file.Truncate(0)
	l.unlock()
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *writeLocker) stamp() {
	l.file.Truncate(0)
	l.file.Seek(0, 0)
	fmt.Fprintf(l.file, "pid:%d\ntime:%s\n", os.Getpid(), time.Now().Format(time.RFC3339))
	l.file.Sync()
}

func (l *writeLocker) holder() lockHolder {
	var h lockHolder
	f, err := os.Open(l.path)
	if err != nil {
		return h
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		switch key {
		case "pid":
			h.PID, _ = strconv.Atoi(val)
		case "time":
			h.Since = val
		}
	}
	return h
}
