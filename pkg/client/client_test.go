package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, opts...)
	require.NoError(t, err)
	return client
}

type testLogger struct {
	lastMsg string
	count   int32
}

func (l *testLogger) Debugf(format string, args ...interface{}) { l.log(format, args...) }
func (l *testLogger) Infof(format string, args ...interface{})  { l.log(format, args...) }
func (l *testLogger) Errorf(format string, args ...interface{}) { l.log(format, args...) }
func (l *testLogger) log(format string, args ...interface{}) {
	atomic.AddInt32(&l.count, 1)
	l.lastMsg = fmt.Sprintf(format, args...)
}

func TestNewClient_Success(t *testing.T) {
	c, err := NewClient("http://api.example.com")
	assert.NoError(t, err)
	assert.NotNil(t, c)
	assert.Equal(t, "http://api.example.com", c.baseURL)
	assert.Equal(t, 3, c.retryMax)
	assert.Contains(t, c.userAgent, "sebaran-go-sdk/")
}

func TestNewClient_EmptyBaseURL(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient("ftp://invalid")
	assert.Error(t, err)
	_, err = NewClient("not a url")
	assert.Error(t, err)
}

func TestNewClient_BaseURLTrailingSlash(t *testing.T) {
	c, err := NewClient("http://api.example.com/")
	assert.NoError(t, err)
	assert.Equal(t, "http://api.example.com", c.BaseURL())
}

func TestNewClient_WithOptions(t *testing.T) {
	customClient := &http.Client{Timeout: 10 * time.Second}
	logger := &testLogger{}
	c, err := NewClient("http://api.example.com",
		WithHTTPClient(customClient),
		WithLogger(logger),
		WithRetryMax(5),
		WithUserAgent("custom-agent/1.0"),
	)
	assert.NoError(t, err)
	assert.Equal(t, customClient, c.httpClient)
	assert.Equal(t, logger, c.logger)
	assert.Equal(t, 5, c.retryMax)
	assert.Equal(t, "custom-agent/1.0", c.userAgent)
}

func TestClient_SubClients_LazyInit(t *testing.T) {
	c, _ := NewClient("http://api.example.com")

	assert.Nil(t, c.coverage)
	cov := c.Coverage()
	assert.NotNil(t, cov)
	assert.Same(t, cov, c.Coverage())

	assert.Nil(t, c.mapData)
	m := c.Map()
	assert.NotNil(t, m)
	assert.Same(t, m, c.Map())

	assert.Nil(t, c.theme)
	th := c.Theme()
	assert.NotNil(t, th)
	assert.Same(t, th, c.Theme())
}

func TestClient_Do_SetsHeaders(t *testing.T) {
	var gotHeaders http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{}`)
	})

	require.NoError(t, c.get(context.Background(), "/api/theme", nil))

	assert.Equal(t, "application/json", gotHeaders.Get("Accept"))
	assert.Contains(t, gotHeaders.Get("User-Agent"), "sebaran-go-sdk/")
	assert.NotEmpty(t, gotHeaders.Get("X-Request-ID"))
}

func TestClient_Do_RetriesServerErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"code":"COMMON_001","message":"oops"}`)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"theme":"dark"}`)
	}, WithRetryWait(time.Millisecond, 2*time.Millisecond))

	var resp struct {
		Theme string `json:"theme"`
	}
	require.NoError(t, c.get(context.Background(), "/api/theme", &resp))
	assert.Equal(t, "dark", resp.Theme)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestClient_Do_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":"COMMON_002","message":"bad payload"}`)
	})

	err := c.get(context.Background(), "/api/theme", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "COMMON_002", apiErr.Code)
	assert.Equal(t, "bad payload", apiErr.Message)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestClient_Do_ExhaustsRetries(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, WithRetryMax(2), WithRetryWait(time.Millisecond, 2*time.Millisecond))

	err := c.get(context.Background(), "/api/map", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsServerError())
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestClient_Do_ContextCancelledDuringBackoff(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, WithRetryWait(time.Hour, time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.get(ctx, "/api/map", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAPIError_Predicates(t *testing.T) {
	assert.True(t, (&APIError{StatusCode: 404}).IsNotFound())
	assert.True(t, (&APIError{StatusCode: 409}).IsConflict())
	assert.True(t, (&APIError{StatusCode: 502}).IsServerError())
	assert.False(t, (&APIError{StatusCode: 404}).IsServerError())
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: 409, Code: "CVR_002", Message: "already assigned", RequestID: "req-1"}
	msg := err.Error()
	assert.Contains(t, msg, "CVR_002")
	assert.Contains(t, msg, "409")
	assert.Contains(t, msg, "req-1")
}
