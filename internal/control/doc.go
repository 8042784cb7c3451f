// Package control binds named inputs to a simulation loop.
//
// A [Panel] exposes the trigger, numeric and choice inputs the live view
// and the CLI drive:
//
//   - playPause and reset are triggers
//   - speed, nodes and hbar are numeric with a fixed range and step
//   - mode is a choice between the primary and derived displays
//
// Numeric values are clamped to their range and snapped to the step before
// they reach the loop. The panel also receives the formatted readout as a
// [metrics.Sink] so its slots can be shown next to the controls.
//
//	p := control.NewPanel(loop, logger)
//	p.Set(control.Nodes, 25)
//	p.Fire(control.Reset)
package control
