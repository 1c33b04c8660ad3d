// Package models defines the core domain models for Tavolo.
//
// # Collections
//
// The persistent store holds four collections, each mapped to one model:
//   - MenuItem: a dish staff put on the menu
//   - Order: a customer order moving through the kitchen lifecycle
//   - User: a registered account (client or admin)
//   - Session: the currently-logged-in user (a User row, at most one)
//
// # Design Principles
//
// 1. **Caller-supplied ids**: menu items and orders carry integer ids chosen
//    by the caller; writes are upserts, so id reuse silently replaces.
// 2. **No cross-collection integrity**: order lines reference menu item ids
//    that may have been deleted since; readers must tolerate stale ids.
// 3. **Forward-only lifecycle**: order status only moves along
//    pending -> ready -> served. The transition table lives here so every
//    layer validates against the same source of truth.
package models
