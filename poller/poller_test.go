// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/order-watch/models"
	"github.com/danielhkuo/order-watch/tracker"
)

func pending(id, notes string) models.Order {
	return models.Order{ID: id, Status: models.StatusPending, Notes: notes}
}

// queueFetcher serves scripted responses in order, repeating the last one.
type queueFetcher struct {
	mu        sync.Mutex
	responses [][]models.Order
	errs      []error
	calls     int
}

func (f *queueFetcher) FetchOrders(ctx context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return f.responses[i], err
}

func TestRun_AppliesPollsAndStopsOnCancel(t *testing.T) {
	f := &queueFetcher{responses: [][]models.Order{
		{pending("1", "")},
		{pending("1", "changed")},
	}}

	tr := tracker.New(nil, "tenant:1")
	p := New(f, tr, 5*time.Millisecond)

	results := make(chan tracker.Result, 16)
	p.OnResult = func(r tracker.Result) { results <- r }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	// First poll fires immediately; the second brings the change.
	deadline := time.After(2 * time.Second)
	var sawChange bool
	for !sawChange {
		select {
		case r := <-results:
			if len(r.ChangedIDs) == 1 && r.ChangedIDs[0] == "1" {
				sawChange = true
			}
		case <-deadline:
			t.Fatal("timed out waiting for the change to be reconciled")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRun_FetchFailureKeepsState(t *testing.T) {
	f := &queueFetcher{
		responses: [][]models.Order{
			{pending("1", "")},
			nil,
			{pending("1", "changed")},
		},
		errs: []error{nil, errors.New("network down"), nil},
	}

	tr := tracker.New(nil, "tenant:1")
	p := New(f, tr, 5*time.Millisecond)

	results := make(chan tracker.Result, 16)
	p.OnResult = func(r tracker.Result) { results <- r }

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go p.Run(ctx)

	// The failed poll must produce no result; the next success must still
	// diff against the pre-failure snapshot and detect the change.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case r := <-results:
			if len(r.ChangedIDs) == 1 && r.ChangedIDs[0] == "1" {
				return
			}
			if len(r.Orders) == 0 {
				t.Fatal("failed poll leaked an empty result")
			}
		case <-deadline:
			t.Fatal("change after transient failure was never detected")
		}
	}
}

// blockingFetcher stalls its first call until released, so a newer poll can
// complete first.
type blockingFetcher struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
	stale   []models.Order
	fresh   []models.Order
}

func (f *blockingFetcher) FetchOrders(ctx context.Context) ([]models.Order, error) {
	f.mu.Lock()
	n := f.calls
	f.calls++
	f.mu.Unlock()

	if n == 0 {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return f.stale, nil
	}
	return f.fresh, nil
}

func TestRun_StaleResponseDiscarded(t *testing.T) {
	f := &blockingFetcher{
		release: make(chan struct{}),
		stale:   []models.Order{pending("1", "old view")},
		fresh:   []models.Order{pending("1", "fresh view")},
	}

	tr := tracker.New(nil, "tenant:1")
	p := New(f, tr, 5*time.Millisecond)

	results := make(chan tracker.Result, 16)
	p.OnResult = func(r tracker.Result) { results <- r }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	// Wait for the fresh (second) poll to land, then release the stale one.
	select {
	case r := <-results:
		if r.Orders[0].Notes != "fresh view" {
			t.Fatalf("expected the fresh poll first, got %q", r.Orders[0].Notes)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("fresh poll never applied")
	}
	close(f.release)

	// The stale response must never be applied: subsequent results keep the
	// fresh view and report no change back to the old one.
	timeout := time.After(100 * time.Millisecond)
	for {
		select {
		case r := <-results:
			if r.Orders[0].Notes == "old view" {
				t.Fatal("stale response regressed the state")
			}
			if len(r.ChangedIDs) != 0 {
				t.Fatalf("stale response caused a phantom change: %v", r.ChangedIDs)
			}
		case <-timeout:
			return
		}
	}
}

func TestRun_AutoSurfaceThroughLoop(t *testing.T) {
	f := &queueFetcher{responses: [][]models.Order{
		{pending("7", "")},
		{pending("7", "extra bag")},
	}}

	tr := tracker.New(nil, "tenant:1")
	p := New(f, tr, 5*time.Millisecond)

	surfaced := make(chan models.Order, 16)
	p.OnSurface = func(o models.Order) { surfaced <- o }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	select {
	case o := <-surfaced:
		if o.ID != "7" {
			t.Errorf("expected order 7 surfaced, got %s", o.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("changed order was never surfaced")
	}

	// The same id keeps polling unchanged afterwards: no second surfacing.
	select {
	case o := <-surfaced:
		t.Errorf("unexpected second surface of %s", o.ID)
	case <-time.After(50 * time.Millisecond):
	}
}
