package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"learnhub_client/pkg/logger"
	"learnhub_client/pkg/monitoring"

	"go.uber.org/zap"
)

// authTransport attaches the bearer token and drops it when the backend answers 401.
type authTransport struct {
	tokens TokenStore
	base   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.tokens.Token(); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		logger.Log.Info("backend rejected token, clearing it", zap.String("path", req.URL.Path))
		t.tokens.ClearToken()
	}
	return resp, nil
}

type metricsTransport struct {
	base http.RoundTripper
}

func (t *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	endpoint := routeLabel(req.URL.Path)
	monitoring.APIRequestCounter.WithLabelValues(req.Method, endpoint, status).Inc()
	monitoring.APIRequestDuration.WithLabelValues(req.Method, endpoint).Observe(time.Since(start).Seconds())

	return resp, err
}

// routeLabel collapses ids so /api/courses/42 and /api/courses/43 share a series.
func routeLabel(path string) string {
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		if parts[i-1] == "courses" && parts[i] != "" {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
