// Package ledger persists the set of URLs that have already been
// ingested, enforcing at-most-once processing across runs.
package ledger

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// filePerm is the mode used when creating the backing log file.
const filePerm = 0o644

// Ledger is a durable, append-only set of processed URLs. The backing
// store is a UTF-8 text file with one URL per line. Entries are never
// removed or compacted; the set only grows.
//
// The ledger assumes single-writer, single-process access. Concurrent
// runs against the same file are undefined behavior.
type Ledger struct {
	path string

	mu   sync.Mutex
	file *os.File
	seen map[string]struct{}
}

// New creates a ledger backed by the file at path. The file is not
// touched until Load or Mark is called.
func New(path string) *Ledger {
	return &Ledger{
		path: path,
		seen: make(map[string]struct{}),
	}
}

// Load reconstructs the processed-URL set by reading every line of the
// backing file. An unreadable or absent file yields an empty set rather
// than an error: absence means nothing has been processed yet.
func (l *Ledger) Load() map[string]struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		return l.copySeen()
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		url := strings.TrimSpace(scanner.Text())
		if url == "" {
			continue
		}
		l.seen[url] = struct{}{}
	}

	return l.copySeen()
}

// Mark records the URL as processed, appending it to the backing file.
// Marking an already-present URL is a no-op. A write failure is returned
// to the caller so it can skip the URL instead of silently reprocessing
// it on the next run.
func (l *Ledger) Mark(url string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seen[url]; ok {
		return nil
	}

	if l.file == nil {
		f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
		if err != nil {
			return fmt.Errorf("open ledger: %w", err)
		}
		l.file = f
	}

	if _, err := fmt.Fprintln(l.file, url); err != nil {
		return fmt.Errorf("append to ledger: %w", err)
	}

	l.seen[url] = struct{}{}
	return nil
}

// Contains reports whether the URL has already been processed.
func (l *Ledger) Contains(url string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.seen[url]
	return ok
}

// Len returns the number of processed URLs currently known.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.seen)
}

// Close releases the append handle, if one was opened.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Ledger) copySeen() map[string]struct{} {
	out := make(map[string]struct{}, len(l.seen))
	for url := range l.seen {
		out[url] = struct{}{}
	}
	return out
}
