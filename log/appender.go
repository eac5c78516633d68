package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogAppender is an output destination for encoded log lines. Write must not keep p.
type LogAppender interface {
	io.Writer
	// Refresh flushes anything queued.
	Refresh()
	Close() error
}

// ConsoleAppender writes to stdout.
type ConsoleAppender struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsoleAppender() *ConsoleAppender {
	return &ConsoleAppender{out: os.Stdout}
}

func (a *ConsoleAppender) Write(p []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.out.Write(p)
}

func (a *ConsoleAppender) Refresh()     {}
func (a *ConsoleAppender) Close() error { return nil }

const (
	_defaultAsyncCacheSize    = 1024
	_defaultAsyncWriteMillSec = 200
	_mb                       = 1 << 20
)

// FileAppender writes to a file, rotating it once it exceeds FileSplitMB. In async
// mode lines are queued and written by a background goroutine.
type FileAppender struct {
	mu      sync.Mutex
	path    string
	splitMB int
	file    *os.File
	size    int64

	queue   chan []byte
	stop    chan struct{}
	stopped sync.WaitGroup
}

// NewFileAppender opens cfg.LogPath for appending. Failures to open are reported
// on stderr and the appender drops lines until a rotation succeeds.
func NewFileAppender(cfg *LogCfg) *FileAppender {
	a := &FileAppender{
		path:    cfg.LogPath,
		splitMB: cfg.FileSplitMB,
	}
	if err := a.open(); err != nil {
		fmt.Fprintf(os.Stderr, "log: open %s: %v\n", a.path, err)
	}

	if cfg.IsAsync {
		cacheSize := cfg.AsyncCacheSize
		if cacheSize <= 0 {
			cacheSize = _defaultAsyncCacheSize
		}
		interval := cfg.AsyncWriteMillSec
		if interval <= 0 {
			interval = _defaultAsyncWriteMillSec
		}
		a.queue = make(chan []byte, cacheSize)
		a.stop = make(chan struct{})
		a.stopped.Add(1)
		go a.loop(time.Duration(interval) * time.Millisecond)
	}
	return a
}

func (a *FileAppender) open() error {
	if dir := filepath.Dir(a.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	a.file, a.size = f, st.Size()
	return nil
}

// rotate moves the current file aside as <path>.<timestamp> and opens a new one.
func (a *FileAppender) rotate() {
	if a.file != nil {
		_ = a.file.Close()
		a.file = nil
	}
	backup := fmt.Sprintf("%s.%s", a.path, time.Now().Format("20060102-150405.000000"))
	if err := os.Rename(a.path, backup); err != nil {
		fmt.Fprintf(os.Stderr, "log: rotate %s: %v\n", a.path, err)
	}
	if err := a.open(); err != nil {
		fmt.Fprintf(os.Stderr, "log: reopen %s: %v\n", a.path, err)
	}
}

func (a *FileAppender) writeLocked(p []byte) (int, error) {
	if a.file == nil {
		return 0, os.ErrClosed
	}
	n, err := a.file.Write(p)
	a.size += int64(n)
	if a.splitMB > 0 && a.size >= int64(a.splitMB)*_mb {
		a.rotate()
	}
	return n, err
}

func (a *FileAppender) Write(p []byte) (int, error) {
	if a.queue != nil {
		line := append([]byte(nil), p...)
		select {
		case a.queue <- line:
			return len(p), nil
		default:
			// queue full, write through
		}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.writeLocked(p)
}

func (a *FileAppender) loop(interval time.Duration) {
	defer a.stopped.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-a.stop:
			a.Refresh()
			return
		case <-ticker.C:
			a.Refresh()
		}
	}
}

// Refresh writes out the lines queued at the time of the call.
func (a *FileAppender) Refresh() {
	if a.queue == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for n := len(a.queue); n > 0; n-- {
		_, _ = a.writeLocked(<-a.queue)
	}
}

// Close flushes the queue and closes the file.
func (a *FileAppender) Close() error {
	if a.stop != nil {
		close(a.stop)
		a.stopped.Wait()
		a.stop = nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.file == nil {
		return nil
	}
	err := a.file.Close()
	a.file = nil
	return err
}
