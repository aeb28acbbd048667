// Package main hosts the storyreel CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into pipeline
// runs, single-stage operations (synth, transcribe, fix, merge, render),
// queue maintenance, and configuration scaffolding. It centralizes
// configuration resolution, store access, and logger setup so subcommands
// can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
