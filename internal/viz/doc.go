// Package viz draws the spin network and hosts it in the terminal.
//
// Drawing goes through the [Surface] interface, implemented by:
//
//   - [Canvas]: braille terminal surface with per-dot intensity and colour
//   - [Raster]: RGBA image surface for PNG and GIF output
//
// Two renderers paint onto a surface: [Painter] draws the network itself,
// [DerivedPainter] draws an area disc per edge over a noise foam.
//
// # Key Bindings
//
//	Space - Play/Pause
//	R     - Rebuild the network
//	+/-   - Speed
//	]/[   - Node count
//	h/H   - ħ scale (extended)
//	M     - Display mode (extended)
//	U     - Units (extended)
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// Recordings are saved under <data dir>/recordings as animated GIFs.
package viz
