// Package tts synthesizes narration audio for chapter texts.
//
// Streamed Gemini audio arrives as raw PCM fragments tagged with a MIME type
// like "audio/L16;codec=pcm;rate=24000". The service concatenates the
// fragments and writes a single PCM WAV file per chapter.
package tts
