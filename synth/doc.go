// Package synth is a control-rate synthesis engine that voices drive.
//
// The engine renders [Note] values whose parameters are either constants or
// [Input] graphs built from [LFO] generators and [Math] combinators. Blocks
// only advance once they are registered with [Synthesizer.AddBlocks]; the
// engine steps every registered block once per control period (the
// configured block size) and renders audio per sample in between.
//
// A Synthesizer is not safe for concurrent use. Callers that render from an
// audio callback serialize voice edits and rendering themselves, so that
// every graph edit lands between two control ticks.
package synth
