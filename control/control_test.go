package control_test

import (
	"testing"

	"github.com/momentics/bolt-core/control"
)

func TestMetricsRegistryBasic(t *testing.T) {
	reg := control.NewMetricsRegistry()
	reg.Set(control.MetricRequestsSent, int64(42))
	reg.Set("bar.status", "ok")

	metrics := reg.GetSnapshot()
	if metrics[control.MetricRequestsSent] != int64(42) {
		t.Error("MetricsRegistry: value mismatch")
	}
	if metrics["bar.status"] != "ok" {
		t.Error("MetricsRegistry: string value mismatch")
	}
}

func TestMetricsRegistryIncr(t *testing.T) {
	reg := control.NewMetricsRegistry()
	reg.Incr(control.MetricRecordsStreamed, 3)
	reg.Incr(control.MetricRecordsStreamed, 4)
	if got := reg.GetSnapshot()[control.MetricRecordsStreamed]; got != int64(7) {
		t.Errorf("expected 7, got %v", got)
	}
}

func TestConfigStoreReload(t *testing.T) {
	cs := control.NewConfigStore(control.DefaultDriverConfig())
	var seen control.DriverConfig
	cs.OnReload(func(c control.DriverConfig) { seen = c })

	updated := control.DefaultDriverConfig()
	updated.MaxPipelinedRequests = 128
	cs.SetConfig(updated)

	if cs.Snapshot().MaxPipelinedRequests != 128 {
		t.Fatalf("snapshot not updated: %+v", cs.Snapshot())
	}
	if seen.MaxPipelinedRequests != 128 {
		t.Fatalf("listener not notified: %+v", seen)
	}
}
