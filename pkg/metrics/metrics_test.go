package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveROI(t *testing.T) {
	m := New()

	m.ObserveROI("save", nil)
	m.ObserveROI("save", nil)
	m.ObserveROI("save", errors.New("boom"))

	if got := testutil.ToFloat64(m.ROIOperations.WithLabelValues("save", "ok")); got != 2 {
		t.Errorf("save ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ROIOperations.WithLabelValues("save", "error")); got != 1 {
		t.Errorf("save error = %v, want 1", got)
	}
}

func TestMetricTypes(t *testing.T) {
	m := New()
	m.Placeholders.Add(2)

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]dto.MetricType{
		"servetrack_stream_frames_ingested_total": dto.MetricType_COUNTER,
		"servetrack_stream_frames_sent_total":     dto.MetricType_COUNTER,
		"servetrack_stream_frames_dropped_total":  dto.MetricType_COUNTER,
		"servetrack_stream_placeholders_total":    dto.MetricType_COUNTER,
		"servetrack_stream_clients":               dto.MetricType_GAUGE,
		"servetrack_roi_feed_subscribers":         dto.MetricType_GAUGE,
		"servetrack_editor_sessions":              dto.MetricType_GAUGE,
	}
	seen := map[string]bool{}
	for _, f := range families {
		typ, ok := want[f.GetName()]
		if !ok {
			continue
		}
		seen[f.GetName()] = true
		if f.GetType() != typ {
			t.Errorf("%s type = %s, want %s", f.GetName(), f.GetType(), typ)
		}
		if f.GetName() == "servetrack_stream_placeholders_total" {
			if got := f.GetMetric()[0].GetCounter().GetValue(); got != 2 {
				t.Errorf("placeholders = %v, want 2", got)
			}
		}
	}
	if len(seen) != len(want) {
		t.Errorf("registered %d of %d families: %v", len(seen), len(want), seen)
	}
}

func TestHandlerExposesGauges(t *testing.T) {
	m := New()
	m.FramesIngested.Add(3)
	m.StreamClients.Add(1)
	m.ObserveCache(true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		"servetrack_stream_frames_ingested_total 3",
		"servetrack_stream_clients 1",
		`servetrack_roi_cache_lookups_total{result="hit"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
