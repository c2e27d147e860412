// Package circuits provides the three animated analogies of electric
// current, each implementing [flow.Circuit]:
//
//   - [Electric]: charges around a rectangular wire loop, driven by voltage
//   - [Water]: drops through a gravity pipe and a return pump
//   - [Playground]: kids down a Bezier slide, across the yard and back up
//
// Each model is a pure position function over a closed 1000-unit path plus a
// speed law over the current parameter values. All parameters carry declared
// [min,max] bounds and can be tuned at runtime through [flow.Configurable].
package circuits
