// Package host drives a flow simulation the way an animation host does:
// a [Scheduler] fires subscribed handlers once per frame, and a [Session]
// owns the simulation state, installs its tick handler exactly once and
// applies outside edits (dragging the marker, deleting trails) between
// frames.
//
// Neither type is safe for concurrent use.
package host
