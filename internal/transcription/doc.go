// Package transcription is the workflow stage that turns narrated audio
// into a repaired SRT subtitle file. Transcripts that still fail
// validation after repair flag the chapter for manual review instead of
// failing the run.
package transcription
