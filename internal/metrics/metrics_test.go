package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestCollectorCounters(t *testing.T) {
	c := NewCollector("test")

	c.RecordCandidates(100, 40)
	c.RecordCandidates(50, 10)
	c.RecordMatch()
	c.RecordMatch()
	c.RecordSearch(150, 5*time.Millisecond)

	snap := c.GetSnapshot()
	if snap.Name != "test" {
		t.Errorf("Name = %q", snap.Name)
	}
	if snap.CandidatesTried != 150 {
		t.Errorf("CandidatesTried = %d, want 150", snap.CandidatesTried)
	}
	if snap.CandidatesPruned != 50 {
		t.Errorf("CandidatesPruned = %d, want 50", snap.CandidatesPruned)
	}
	if snap.MatchesFound != 2 {
		t.Errorf("MatchesFound = %d, want 2", snap.MatchesFound)
	}
	if snap.SearchesTotal != 1 {
		t.Errorf("SearchesTotal = %d, want 1", snap.SearchesTotal)
	}
	if snap.LastSearchUnixSec == 0 {
		t.Error("LastSearchUnixSec not set")
	}
}

func TestCollectorReset(t *testing.T) {
	c := NewCollector("test")
	c.RecordCandidates(10, 5)
	c.RecordMatch()
	c.RecordSearch(10, time.Millisecond)

	c.Reset()

	snap := c.GetSnapshot()
	if snap.CandidatesTried != 0 || snap.CandidatesPruned != 0 || snap.MatchesFound != 0 || snap.SearchesTotal != 0 {
		t.Errorf("counters survived reset: %+v", snap)
	}
	if snap.SearchDurationP50 != 0 {
		t.Errorf("histogram survived reset: p50 = %v", snap.SearchDurationP50)
	}
}

func TestCollectorConcurrentAccess(t *testing.T) {
	c := NewCollector("concurrent")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.RecordCandidates(1, 0)
			}
			c.RecordMatch()
			c.RecordSearch(1000, time.Millisecond)
		}()
	}
	wg.Wait()

	snap := c.GetSnapshot()
	if snap.CandidatesTried != 8000 {
		t.Errorf("CandidatesTried = %d, want 8000", snap.CandidatesTried)
	}
	if snap.MatchesFound != 8 {
		t.Errorf("MatchesFound = %d, want 8", snap.MatchesFound)
	}
	if snap.SearchesTotal != 8 {
		t.Errorf("SearchesTotal = %d, want 8", snap.SearchesTotal)
	}
}

func TestDurationPercentiles(t *testing.T) {
	c := NewCollector("durations")
	for i := 0; i < 90; i++ {
		c.RecordSearch(1, 5*time.Millisecond) // 1-10ms bucket
	}
	for i := 0; i < 10; i++ {
		c.RecordSearch(1, 5*time.Second) // 1-10s bucket
	}

	snap := c.GetSnapshot()
	if snap.SearchDurationP50 != 10*time.Millisecond {
		t.Errorf("p50 = %v, want bucket upper bound 10ms", snap.SearchDurationP50)
	}
	if snap.SearchDurationP99 != 10*time.Second {
		t.Errorf("p99 = %v, want bucket upper bound 10s", snap.SearchDurationP99)
	}
}

func TestPercentileEmptyHistogram(t *testing.T) {
	c := NewCollector("empty")
	if p := c.GetSnapshot().SearchDurationP50; p != 0 {
		t.Errorf("p50 of empty histogram = %v", p)
	}
}
