// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package poller drives the fetch-and-reconcile cycle: fetch the tenant's
// orders on a fixed interval, run them through the tracker, and hand the
// result to the caller. Reconciliation always happens in the loop
// goroutine, so the tracker has a single writer.
package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/order-watch/models"
	"github.com/danielhkuo/order-watch/tracker"
)

// DefaultInterval matches the dashboard's refresh cadence.
const DefaultInterval = 4 * time.Second

// Fetcher retrieves the current order list. apiclient.Client satisfies it.
type Fetcher interface {
	FetchOrders(ctx context.Context) ([]models.Order, error)
}

// Poller runs the poll loop for one tracker.
type Poller struct {
	fetcher  Fetcher
	tracker  *tracker.Tracker
	interval time.Duration

	// OnResult receives every applied reconciliation. Optional.
	OnResult func(tracker.Result)
	// OnSurface receives orders chosen by the auto-surface policy. Optional.
	OnSurface func(models.Order)
	// DetailOpen reports whether a detail view is currently open, which
	// suppresses auto-surfacing. Optional; nil means never open.
	DetailOpen func() bool
}

// New builds a poller. A non-positive interval falls back to
// DefaultInterval.
func New(fetcher Fetcher, tr *tracker.Tracker, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{fetcher: fetcher, tracker: tr, interval: interval}
}

type fetchResult struct {
	seq    uint64
	orders []models.Order
	err    error
}

// Run polls until ctx is cancelled. The first poll fires immediately.
//
// Polls are started by the timer regardless of in-flight fetches. A slow
// response is discarded when a newer poll has already started: last-write-
// wins by poll start order, not completion order, so a stale response can
// never regress the snapshot. Fetch failures keep the previous state and
// are retried on the next tick with no backoff.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	results := make(chan fetchResult)
	var seq uint64

	start := func() {
		seq++
		go func(n uint64) {
			orders, err := p.fetcher.FetchOrders(ctx)
			select {
			case results <- fetchResult{seq: n, orders: orders, err: err}:
			case <-ctx.Done():
			}
		}(seq)
	}

	start()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start()
		case res := <-results:
			if res.seq != seq {
				slog.Debug("discarding stale poll response", "seq", res.seq, "latest", seq)
				continue
			}
			if res.err != nil {
				slog.Warn("poll failed, keeping last known state", "error", res.err)
				continue
			}
			p.apply(res.orders)
		}
	}
}

func (p *Poller) apply(orders []models.Order) {
	res := p.tracker.Apply(orders)
	if p.OnResult != nil {
		p.OnResult(res)
	}

	detailOpen := p.DetailOpen != nil && p.DetailOpen()
	if o, ok := p.tracker.AutoSurface(res, detailOpen); ok {
		if p.OnSurface != nil {
			p.OnSurface(o)
		}
	}
}
