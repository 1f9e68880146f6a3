package observability_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"skate_admin/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors show up in the output
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveReload("spots", nil)
	observability.ObserveReload("spots", errors.New("boom"))

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, want := range []string{
		"skadmin_http_requests_total",
		`skadmin_resource_reloads_total{outcome="ok",resource="spots"}`,
		`skadmin_resource_reloads_total{outcome="error",resource="spots"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output", want)
		}
	}
}

func TestLabelErr(t *testing.T) {
	if got := observability.LabelErr(nil); got != "none" {
		t.Fatalf("LabelErr(nil) = %q", got)
	}
	if got := observability.LabelErr(errors.New("x")); got != "*errors.errorString" {
		t.Fatalf("LabelErr = %q", got)
	}
}

func TestServe_ExposesAppRegistry(t *testing.T) {
	if srv := observability.Serve("", prometheus.NewRegistry()); srv != nil {
		t.Fatalf("empty addr must disable the metrics server")
	}

	reg := observability.InitRegistry()
	observability.ObserveReload("instructors", nil)

	srv := observability.Serve("127.0.0.1:0", reg)
	if srv == nil {
		t.Fatalf("expected a server")
	}
	defer srv.Close()

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	want := `skadmin_resource_reloads_total{outcome="ok",resource="instructors"}`
	if !strings.Contains(rr.Body.String(), want) {
		t.Fatalf("expected %s in output", want)
	}
}
