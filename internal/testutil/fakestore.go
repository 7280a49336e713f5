// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"listsync/internal/blobstore"
)

// FakeStore is an in-memory implementation of blobstore.Store for testing.
// Revisions are counters; a Put with a non-empty expected revision that does
// not match fails with blobstore.ErrConflict.
type FakeStore struct {
	mu    sync.Mutex
	blobs map[string]blobstore.Blob
	rev   int
	puts  []string

	// Error injection for testing
	FetchErr map[string]error // path -> error
	PutErr   map[string]error // path -> error
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		blobs:    make(map[string]blobstore.Blob),
		FetchErr: make(map[string]error),
		PutErr:   make(map[string]error),
	}
}

// Set stores content at path as if another client wrote it.
func (f *FakeStore) Set(path, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rev++
	f.blobs[path] = blobstore.Blob{Content: []byte(content), Revision: strconv.Itoa(f.rev)}
}

// Get returns the content at path, or "" if absent.
func (f *FakeStore) Get(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.blobs[path].Content)
}

// Puts returns the paths of every successful Put, in order.
func (f *FakeStore) Puts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.puts...)
}

// PutCount returns the number of successful writes to path.
func (f *FakeStore) PutCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.puts {
		if p == path {
			n++
		}
	}
	return n
}

// SetFetchErr makes every Fetch of path fail with err. Nil clears it.
func (f *FakeStore) SetFetchErr(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FetchErr[path] = err
}

// SetPutErr makes every Put of path fail with err. Nil clears it.
func (f *FakeStore) SetPutErr(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PutErr[path] = err
}

// Fetch implements blobstore.Store.
func (f *FakeStore) Fetch(ctx context.Context, path string) (blobstore.Blob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.FetchErr[path]; err != nil {
		return blobstore.Blob{}, err
	}
	b, ok := f.blobs[path]
	if !ok {
		return blobstore.Blob{}, blobstore.ErrNotFound
	}
	return blobstore.Blob{Content: append([]byte(nil), b.Content...), Revision: b.Revision}, nil
}

// Put implements blobstore.Store.
func (f *FakeStore) Put(ctx context.Context, path string, content []byte, expectedRevision string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.PutErr[path]; err != nil {
		return "", err
	}
	if cur, ok := f.blobs[path]; ok && expectedRevision != "" && cur.Revision != expectedRevision {
		return "", blobstore.ErrConflict
	}
	f.rev++
	rev := strconv.Itoa(f.rev)
	f.blobs[path] = blobstore.Blob{Content: append([]byte(nil), content...), Revision: rev}
	f.puts = append(f.puts, path)
	return rev, nil
}

// FakeProbe is a switchable connectivity probe.
type FakeProbe struct {
	online atomic.Bool
	calls  atomic.Int64
}

// NewFakeProbe creates a probe reporting online.
func NewFakeProbe(online bool) *FakeProbe {
	p := &FakeProbe{}
	p.online.Store(online)
	return p
}

// Set changes what the next probes report.
func (p *FakeProbe) Set(online bool) { p.online.Store(online) }

// Calls returns how many times Probe ran.
func (p *FakeProbe) Calls() int { return int(p.calls.Load()) }

// Probe implements syncer.Prober.
func (p *FakeProbe) Probe(ctx context.Context) bool {
	p.calls.Add(1)
	return p.online.Load()
}
