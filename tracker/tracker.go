// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tracker

import (
	"log/slog"
	"sort"

	"github.com/danielhkuo/order-watch/models"
	"github.com/danielhkuo/order-watch/signature"
)

// Snapshot maps order id to the signature seen on the previous poll. It is
// rebuilt on every poll and has no durable counterpart.
type Snapshot map[string]string

// StickySet is the set of order ids currently flagged altered. Membership
// survives polls and (via the Store) reloads, until the order is invoiced.
type StickySet map[string]struct{}

// Has reports membership.
func (s StickySet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members sorted, for stable persistence and display.
func (s StickySet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s StickySet) clone() StickySet {
	out := make(StickySet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Store is the durable key-value store the sticky set persists to.
// stickystore.Store satisfies it.
type Store interface {
	LoadSticky(tenantKey string) (map[string]struct{}, error)
	SaveSticky(tenantKey string, ids []string) error
}

// Result is the outcome of one reconciliation pass.
type Result struct {
	// Orders is the incoming slice with Altered annotated from sticky
	// membership (not from the one-shot changed flag).
	Orders []models.Order
	// Snapshot is the rebuilt id -> signature map for the next poll.
	Snapshot Snapshot
	// Sticky is the updated sticky set.
	Sticky StickySet
	// ChangedIDs lists ids whose signature differed from the previous poll,
	// in incoming order. Used only for one-shot side effects such as
	// auto-surfacing, never for the visible indicator.
	ChangedIDs []string
	// StickyDirty is true when Sticky differs from the input set and must
	// be persisted.
	StickyDirty bool
}

// Reconcile runs one diff pass over a polled order list. It is pure: prev and
// sticky are not mutated, and the same inputs always produce the same Result.
//
// Per order: invoiced status evicts the id from the sticky set
// unconditionally, even when fields changed in the same poll; otherwise a
// signature change or the server's advisory altered flag adds it. The
// snapshot entry is refreshed either way. Orders present in prev but absent
// from incoming are dropped from the snapshot silently; their sticky entries
// are kept, since invoicing is the only eviction path.
func Reconcile(prev Snapshot, incoming []models.Order, sticky StickySet) Result {
	res := Result{
		Orders:   make([]models.Order, len(incoming)),
		Snapshot: make(Snapshot, len(incoming)),
		Sticky:   sticky.clone(),
	}

	for i, o := range incoming {
		sig := signature.Compute(o)
		prevSig, seen := prev[o.ID]
		changed := seen && prevSig != sig

		if models.NormalizeStatus(o.Status) == models.StatusInvoiced {
			delete(res.Sticky, o.ID)
		} else if changed || o.ServerAltered {
			res.Sticky[o.ID] = struct{}{}
		}

		res.Snapshot[o.ID] = sig
		o.Altered = res.Sticky.Has(o.ID)
		res.Orders[i] = o

		if changed {
			res.ChangedIDs = append(res.ChangedIDs, o.ID)
		}
	}

	res.StickyDirty = !equalSets(sticky, res.Sticky)
	return res
}

func equalSets(a, b StickySet) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if !b.Has(id) {
			return false
		}
	}
	return true
}

// Tracker owns the reconciliation state for one tenant session: the snapshot,
// the sticky set, and the never-persisted auto-opened set. All methods are
// intended for a single goroutine (the poll loop).
type Tracker struct {
	store      Store
	tenantKey  string
	snapshot   Snapshot
	sticky     StickySet
	autoOpened map[string]struct{}
}

// New builds a tracker for a tenant key and restores the sticky set from the
// store. A load failure degrades to an empty set; it never blocks startup.
func New(store Store, tenantKey string) *Tracker {
	t := &Tracker{
		store:      store,
		tenantKey:  tenantKey,
		snapshot:   make(Snapshot),
		sticky:     make(StickySet),
		autoOpened: make(map[string]struct{}),
	}

	if store != nil {
		ids, err := store.LoadSticky(tenantKey)
		if err != nil {
			slog.Warn("sticky set load failed, starting empty", "tenant_key", tenantKey, "error", err)
		} else {
			for id := range ids {
				t.sticky[id] = struct{}{}
			}
		}
	}
	return t
}

// Apply reconciles one poll's orders against the tracker state, adopts the
// new snapshot and sticky set, and persists the sticky set when it changed.
// Persistence is best-effort: a write failure is logged and the in-memory
// set stays authoritative.
func (t *Tracker) Apply(incoming []models.Order) Result {
	res := Reconcile(t.snapshot, incoming, t.sticky)
	t.snapshot = res.Snapshot
	t.sticky = res.Sticky
	if res.StickyDirty {
		t.persist()
	}
	return res
}

// MarkLocalEdit records a user-initiated save of an order: the id turns
// sticky immediately (or is evicted when the edit invoiced the order), so the
// indicator reflects the operator's optimistic view before the next poll.
func (t *Tracker) MarkLocalEdit(id, status string) {
	if models.NormalizeStatus(status) == models.StatusInvoiced {
		if !t.sticky.Has(id) {
			return
		}
		delete(t.sticky, id)
	} else {
		if t.sticky.Has(id) {
			return
		}
		t.sticky[id] = struct{}{}
	}
	t.persist()
}

// Sticky returns the current sticky ids, sorted.
func (t *Tracker) Sticky() []string {
	return t.sticky.IDs()
}

// AutoSurface picks the order to auto-open for a reconcile result: the first
// changed order that is not invoiced and has not been auto-opened before.
// It returns false while a detail view is open, so the operator's context is
// never yanked away. Each id surfaces at most once per process; the
// auto-opened set is deliberately not persisted.
func (t *Tracker) AutoSurface(res Result, detailOpen bool) (models.Order, bool) {
	if detailOpen {
		return models.Order{}, false
	}
	changed := make(map[string]struct{}, len(res.ChangedIDs))
	for _, id := range res.ChangedIDs {
		changed[id] = struct{}{}
	}
	for _, o := range res.Orders {
		if _, ok := changed[o.ID]; !ok {
			continue
		}
		if models.NormalizeStatus(o.Status) == models.StatusInvoiced {
			continue
		}
		if _, opened := t.autoOpened[o.ID]; opened {
			continue
		}
		t.autoOpened[o.ID] = struct{}{}
		return o, true
	}
	return models.Order{}, false
}

func (t *Tracker) persist() {
	if t.store == nil {
		return
	}
	if err := t.store.SaveSticky(t.tenantKey, t.sticky.IDs()); err != nil {
		slog.Warn("sticky set save failed", "tenant_key", t.tenantKey, "error", err)
	}
}
