package pinger

import (
	"sync"
	"time"
)

// Statistics is a point in time snapshot of one pinger's results.
type Statistics struct {
	IsReady      bool          `json:"ready"`
	IsHealthy    bool          `json:"healthy"`
	LastRun      time.Time     `json:"lastRun"`
	LastLatency  time.Duration `json:"lastLatency"`
	LastError    string        `json:"lastError,omitempty"`
	SuccessCount uint64        `json:"successCount"`
	ErrorCount   uint64        `json:"errorCount"`
}

// Stats holds the mutable results of one pinger.
type Stats struct {
	mu           sync.RWMutex
	name         string
	lastRun      time.Time
	lastLatency  time.Duration
	lastError    error
	successCount uint64
	errorCount   uint64
}

// NewPingerStats creates empty stats for the named pinger.
func NewPingerStats(name string) *Stats {
	return &Stats{name: name}
}

func (s *Stats) record(at time.Time, latency time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRun = at
	s.lastLatency = latency
	s.lastError = err

	if err != nil {
		s.errorCount++

		return
	}

	s.successCount++
}

// snapshot derives readiness and health from the last error. A pinger that is
// not critical for readiness or health never flips the respective flag.
func (s *Stats) snapshot(info *pingerInfo) *Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := &Statistics{
		IsReady:      !info.readyCritical || s.lastError == nil,
		IsHealthy:    !info.healthCritical || s.lastError == nil,
		LastRun:      s.lastRun,
		LastLatency:  s.lastLatency,
		SuccessCount: s.successCount,
		ErrorCount:   s.errorCount,
	}

	if s.lastError != nil {
		result.LastError = s.lastError.Error()
	}

	return result
}
