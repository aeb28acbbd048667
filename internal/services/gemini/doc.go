// Package gemini wraps the Gemini API for speech synthesis and audio
// transcription.
//
// The Client adapts the google.golang.org/genai SDK to the two narrow
// operations the pipeline needs: streaming narration audio for a chapter text
// and transcribing a narration WAV into SRT text. Stage services depend on the
// small interfaces declared in their own packages, so tests can substitute
// fakes without touching the SDK.
package gemini
