// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tracker detects which orders changed between polls and keeps a
persistent "altered" indicator per order until the order is invoiced.

# Model

Three pieces of state, all owned by a single Tracker per tenant session:

  - Snapshot: order id -> signature from the previous poll. Rebuilt every
    poll, never persisted.
  - StickySet: ids currently flagged altered. Persisted to the durable store
    on every mutation, restored once at construction.
  - auto-opened set: ids already surfaced to the operator. Never persisted;
    resets on restart.

# Reconciliation

Reconcile is a pure function over (previous snapshot, incoming orders,
sticky set). An order is changed when its signature differs from the
snapshot entry. Changed or server-flagged orders become sticky; invoiced
orders are evicted from the sticky set unconditionally, even when other
fields changed in the same poll. The visible Altered annotation comes from
sticky membership, so it persists across polls until eviction.

The invariant: an id in the sticky set is never invoiced. Any transition to
invoiced evicts synchronously, in Apply and in MarkLocalEdit alike.

# Side Effects

ChangedIDs carries the one-shot signature diffs for notification surfacing
(AutoSurface); it never drives the indicator itself.
*/
package tracker
