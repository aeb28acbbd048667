// Package workflow advances chapters through the processing stages.
//
// The Manager scans the text directory into the queue, then drives each
// chapter through synthesis, transcription, and validation using the
// registered stage handlers while capturing progress and failure metadata.
// Chapters run in bounded batches with a configurable pause between them
// to stay under API rate limits. After the per-chapter stages, the manager
// merges every finished chapter onto one timeline and optionally renders
// the final video.
//
// A file lock serializes whole runs; two concurrent runs against the same
// project directory would race on the queue and the audio files.
package workflow
