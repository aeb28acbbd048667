// Package srt implements the SubRip subtitle dialect produced by the
// transcription service: a timestamp codec, a block parser/serializer, a
// line-budget reflower, and a validator/fixer.
//
// Validation is strict (canonical timestamps only, 60-character and 10-word
// line budgets) while fixing is lenient: malformed timestamp shapes seen in
// generated output are normalized positionally, markdown emphasis is
// stripped, and over-budget records are re-blocked with proportionally
// subdivided intervals. Fix passes are pure content transforms; a fixed
// payload that still fails validation is a legitimate terminal state that
// callers must detect through the returned ValidationResult.
package srt
