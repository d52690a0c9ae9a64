package test

import (
	"io"
	"net/http"
	"testing"
)

// TestHealthEndpoint verifies health check endpoint
func TestHealthEndpoint(t *testing.T) {
	server := NewTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL() + "/healthz")
	if err != nil {
		t.Fatalf("Health check failed: %v", err)
	}
	defer resp.Body.Close()

	AssertStatusCode(t, resp, http.StatusOK)

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" && string(body) != "OK" {
		t.Errorf("Expected 'ok' or 'OK', got '%s'", string(body))
	}
}

// TestReadinessEndpoint verifies readiness check endpoint
func TestReadinessEndpoint(t *testing.T) {
	server := NewTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL() + "/readyz")
	if err != nil {
		t.Fatalf("Readiness check failed: %v", err)
	}
	defer resp.Body.Close()

	AssertStatusCode(t, resp, http.StatusOK)

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ready" {
		t.Errorf("Expected 'ready', got '%s'", string(body))
	}
}

// TestMetricsEndpoint verifies Prometheus metrics endpoint
func TestMetricsEndpoint(t *testing.T) {
	server := NewTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL() + "/metrics")
	if err != nil {
		t.Fatalf("Metrics endpoint failed: %v", err)
	}
	defer resp.Body.Close()

	AssertStatusCode(t, resp, http.StatusOK)
	AssertContentType(t, resp, "text/plain")

	body, _ := io.ReadAll(resp.Body)
	metrics := string(body)

	if len(metrics) < 1 {
		t.Errorf("Expected metrics data, got empty response")
	}
}

// TestBookingLifecycle verifies the booking check-in/check-out flow
func TestBookingLifecycle(t *testing.T) {
	t.Skip("Integration test requires running server - use docker-compose up")
}

// TestAutoCheckoutSweep verifies the scheduled checkout worker
func TestAutoCheckoutSweep(t *testing.T) {
	t.Skip("Integration test requires running server - use docker-compose up")
}
