package metrics

import "testing"

var sink []byte

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemorySnapshot_Since(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()
	sink = make([]byte, 1<<20)
	after := mc.Snapshot()

	d := after.Since(before)
	if d.TotalAlloc < 1<<20 {
		t.Errorf("TotalAlloc delta = %d, want at least 1 MiB", d.TotalAlloc)
	}
	if d.HeapAlloc != after.HeapAlloc {
		t.Error("Since should keep the current HeapAlloc")
	}
}

func TestMemorySnapshot_SinceNeverWraps(t *testing.T) {
	t.Parallel()

	before := MemorySnapshot{TotalAlloc: 10, NumGC: 5, PauseTotalNs: 7}
	after := MemorySnapshot{TotalAlloc: 4, NumGC: 2, PauseTotalNs: 1}
	d := after.Since(before)
	if d.TotalAlloc != 0 || d.NumGC != 0 || d.PauseTotalNs != 0 {
		t.Errorf("Since = %+v, want zero deltas", d)
	}
}
