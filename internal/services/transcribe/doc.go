// Package transcribe turns narration WAV files into validated SRT subtitles.
//
// The service uploads a chapter's audio to Gemini with a strict SRT prompt,
// cleans the model output (code fences, stray labels), writes the subtitle
// file, retires the audio into the done directory, and runs the repair pass
// from the srt package so downstream merging sees well-formed input.
package transcribe
