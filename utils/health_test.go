package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHealthMonitorCheck(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("unreachable") }

	cases := []struct {
		name         string
		mongo, redis Pinger
		healthy      bool
	}{
		{"all up", up, up, true},
		{"mongo down", down, up, false},
		{"redis down", up, down, false},
	}
	for _, c := range cases {
		m := NewHealthMonitor(c.mongo, c.redis, time.Minute)
		got := m.Check(context.Background())
		if got.Healthy() != c.healthy {
			t.Errorf("%s: healthy = %v, want %v", c.name, got.Healthy(), c.healthy)
		}
		if m.Status() != got {
			t.Errorf("%s: Status should return the last check", c.name)
		}
		if got.CheckedAt.IsZero() {
			t.Errorf("%s: CheckedAt not set", c.name)
		}
	}
}

func TestHealthMonitorStartStopsWithContext(t *testing.T) {
	calls := make(chan struct{}, 16)
	ping := func(context.Context) error {
		select {
		case calls <- struct{}{}:
		default:
		}
		return nil
	}
	m := NewHealthMonitor(ping, ping, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	m.Start(ctx)
	if !m.Status().Healthy() {
		t.Fatal("Start should run a synchronous first check")
	}
	time.Sleep(20 * time.Millisecond)
	cancel()
	if len(calls) < 2 {
		t.Errorf("expected periodic checks, got %d probes", len(calls))
	}
}
