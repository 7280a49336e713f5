package connectivity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"listsync/internal/connectivity"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestProbe_AnyResponseIsOnline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	m := connectivity.New(srv.URL, time.Second, nil)

	assert.True(t, m.Probe(context.Background()))
}

func TestProbe_ClosedServerIsOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	m := connectivity.New(url, time.Second, nil)

	assert.False(t, m.Probe(context.Background()))
}

func TestProbe_TimeoutIsOffline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	m := connectivity.New(srv.URL, 50*time.Millisecond, nil)

	start := time.Now()
	assert.False(t, m.Probe(context.Background()))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestProbe_InvalidURLIsOffline(t *testing.T) {
	m := connectivity.New("://bad", time.Second, nil)

	assert.False(t, m.Probe(context.Background()))
}
