package bucket

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/3leaps/bucketkit/pkg/store"
)

// fakeStore is an in-memory store.Store for tests.
//
// Objects are held as a flat key->summary map; List filters by prefix and
// paginates with pageSize. All fields are guarded by mu so the fan-out
// tests can hammer it concurrently.
type fakeStore struct {
	mu sync.Mutex

	// pageSize is the objects-per-page limit for List. Zero means 1000.
	pageSize int

	objects map[string]store.ObjectSummary
	bodies  map[string][]byte
	tags    map[string][]store.Tag

	// Injected failures, keyed by prefix (List) or key (Get/tagging).
	listErr   map[string]error
	getErr    map[string]error
	getTagErr map[string]error
	putTagErr map[string]error

	// deleteFn overrides DeleteObjects behavior when set.
	deleteFn func(keys []string) (*store.DeleteResult, error)

	// Call counters.
	listCalls   int
	getCalls    map[string]int
	deleteCalls int
	putCalls    []fakePut

	// listStarted is closed-once signaled per List call when set, letting
	// tests observe in-flight listings.
	listBlock map[string]chan struct{}

	closed bool
}

type fakePut struct {
	bucket string
	key    string
	body   []byte
	opts   store.PutOptions
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects:   make(map[string]store.ObjectSummary),
		bodies:    make(map[string][]byte),
		tags:      make(map[string][]store.Tag),
		listErr:   make(map[string]error),
		getErr:    make(map[string]error),
		getTagErr: make(map[string]error),
		putTagErr: make(map[string]error),
		getCalls:  make(map[string]int),
		listBlock: make(map[string]chan struct{}),
	}
}

// addObject registers an object with the given key and size.
func (f *fakeStore) addObject(key string, size int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = store.ObjectSummary{Bucket: "test-bucket", Key: key, Size: size, ETag: "etag-" + key}
}

// addContent registers an object together with its body.
func (f *fakeStore) addContent(key, body string) {
	f.addObject(key, int64(len(body)))
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[key] = []byte(body)
}

func (f *fakeStore) List(ctx context.Context, opts store.ListOptions) (*store.ListResult, error) {
	f.mu.Lock()
	f.listCalls++
	if block, ok := f.listBlock[opts.Prefix]; ok {
		f.mu.Unlock()
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		f.mu.Lock()
	}
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.listErr[opts.Prefix]; err != nil {
		return nil, err
	}

	var keys []string
	for key := range f.objects {
		if strings.HasPrefix(key, opts.Prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	pageSize := f.pageSize
	if pageSize == 0 {
		pageSize = 1000
	}

	start := 0
	if opts.ContinuationToken != "" {
		n, err := strconv.Atoi(opts.ContinuationToken)
		if err != nil {
			return nil, fmt.Errorf("bad continuation token %q", opts.ContinuationToken)
		}
		start = n
	}

	end := start + pageSize
	if end > len(keys) {
		end = len(keys)
	}

	result := &store.ListResult{}
	for _, key := range keys[start:end] {
		result.Objects = append(result.Objects, f.objects[key])
	}
	if end < len(keys) {
		result.IsTruncated = true
		result.ContinuationToken = strconv.Itoa(end)
	}

	return result, nil
}

func (f *fakeStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls[key]++

	if err := f.getErr[key]; err != nil {
		return nil, err
	}
	body, ok := f.bodies[key]
	if !ok {
		return nil, &store.StoreError{Op: "Get", Bucket: bucket, Key: key, Err: store.ErrNotFound}
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (f *fakeStore) Put(ctx context.Context, bucket, key string, body io.Reader, opts store.PutOptions) (*store.PutResult, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.putCalls = append(f.putCalls, fakePut{bucket: bucket, key: key, body: data, opts: opts})
	f.bodies[key] = data
	f.objects[key] = store.ObjectSummary{Bucket: bucket, Key: key, Size: int64(len(data))}

	return &store.PutResult{ServerSideEncryption: opts.ServerSideEncryption}, nil
}

func (f *fakeStore) DeleteObjects(ctx context.Context, bucket string, keys []string) (*store.DeleteResult, error) {
	f.mu.Lock()
	f.deleteCalls++
	deleteFn := f.deleteFn
	f.mu.Unlock()

	if deleteFn != nil {
		return deleteFn(keys)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	result := &store.DeleteResult{}
	for _, key := range keys {
		delete(f.objects, key)
		delete(f.bodies, key)
		result.Deleted = append(result.Deleted, key)
	}
	return result, nil
}

func (f *fakeStore) GetTagging(ctx context.Context, bucket, key string) ([]store.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.getTagErr[key]; err != nil {
		return nil, err
	}
	return append([]store.Tag(nil), f.tags[key]...), nil
}

func (f *fakeStore) PutTagging(ctx context.Context, bucket, key string, tags []store.Tag) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.putTagErr[key]; err != nil {
		return err
	}
	f.tags[key] = append([]store.Tag(nil), tags...)
	return nil
}

func (f *fakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

var _ store.Store = (*fakeStore)(nil)
