// Package expedition contains the aggregate at the center of the dispatch
// domain: an Expedition is one driver's delivery route for one date within
// one company. The aggregate owns its Lines (one routed delivery each) and
// their Allocations (one participant driver's load share), and enforces the
// consistency rules between them:
//
//   - the lifecycle state machine (planned through done, with a recoverable
//     hold side-state) and the locking derived from it
//   - dense 1..N route sequencing of lines
//   - the participant/allocation mirror: every participant driver of a line
//     has exactly one allocation and vice versa
//   - the loading precondition: a line shared by several drivers may only be
//     loaded once every driver's share is filled in
//   - main-driver changes cascading into every line's participant set
//
// All mutations go through aggregate methods so the invariants cannot be
// bypassed; repositories persist whole aggregates.
package expedition
