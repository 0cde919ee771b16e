package http

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"currencyconv/internal/config"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestServe_ShutsDownOnContextCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, listener, newServer(config.HTTPServer{}, handler), logger) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/", listener.Addr()))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewServer_Timeouts(t *testing.T) {
	s := newServer(config.HTTPServer{ReadTimeoutSeconds: 3, WriteTimeoutSeconds: 4}, http.NotFoundHandler())
	require.Equal(t, 3*time.Second, s.ReadTimeout)
	require.Equal(t, 4*time.Second, s.WriteTimeout)

	s = newServer(config.HTTPServer{}, http.NotFoundHandler())
	require.Zero(t, s.ReadTimeout)
	require.Zero(t, s.WriteTimeout)
}

func TestRequestID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = middleware.GetReqID(r.Context())
	})

	t.Run("generated", func(t *testing.T) {
		rr := httptest.NewRecorder()
		RequestID(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen)
		require.Len(t, seen, 36)
		require.Equal(t, seen, rr.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "test-id-123")
		rr := httptest.NewRecorder()
		RequestID(next).ServeHTTP(rr, req)

		require.Equal(t, "test-id-123", seen)
		require.Equal(t, "test-id-123", rr.Header().Get(RequestIDHeader))
	})
}

func TestRequestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	h := RequestID(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil)
	req.Header.Set(RequestIDHeader, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.WarnLevel, entry.Level)
	require.Equal(t, "abc", entry.Data["request_id"])
	require.Equal(t, http.StatusInternalServerError, entry.Data["status"])
	require.Equal(t, "/api/v1/currencies", entry.Data["path"])
}
