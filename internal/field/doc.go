// Package field defines the slope functions f(x, y) of scalar ODEs
// dy/dx = f(x, y) and samples them into direction-field glyphs.
//
//   - [Field]: slope evaluator, the only capability the simulation needs
//   - [Func]: adapts a plain function, reporting NaN/Inf as [EvaluationError]
//   - [Registry]: named built-in fields selectable from configuration
//   - [Sample]: lazy grid of [Glyph] values for drawing the field
//
// # Example
//
//	f, _ := field.Lookup("linear")
//	for g := range field.Sample(f, field.Grid{XMin: -5, XMax: 5, YMin: -5, YMax: 5, Spacing: 0.8}) {
//		draw(g.Pos, g.Angle)
//	}
package field
