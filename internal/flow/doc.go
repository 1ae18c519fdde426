// Package flow advances a marker along a direction field one tick at a
// time and records the path it takes as trail segments.
//
//   - [Euler]: fixed-step integrator treating x as the independent variable
//   - [Detector]: tells simulated motion apart from external displacement
//   - [TrailManager]: ordered, append-only trail segments keyed by [SegmentID]
//   - [State]: everything a tick reads and mutates; see [State.Tick]
//
// A tick either opens a segment (first tick, stale reference or external
// move) or integrates one step and appends a sample whose radius is
// proportional to the distance travelled.
//
// # Example
//
//	f, _ := field.Lookup("linear")
//	st := flow.NewState(f, 0.05, 8, flow.NewDetector(0.5), flow.NewMarker(flow.Position{}))
//	for i := 0; i < 100; i++ {
//		if _, err := st.Tick(); err != nil {
//			log.Warn().Err(err).Msg("tick")
//		}
//	}
//
// # Thread Safety
//
// State and TrailManager are NOT thread-safe. Ticks must be driven from a
// single goroutine and never re-entered.
package flow
