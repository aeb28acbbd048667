// Package render composes the final narration video with ffmpeg.
//
// Rendering has two halves. AssembleAudio stitches the per-chapter WAV
// fragments into one continuous track, inserting generated silence for
// chapters whose audio could not be used, so the track lines up with the
// merged subtitle timeline. RenderVideo then loops a static background
// image over that track and burns the merged subtitles in.
//
// All ffmpeg invocations go through an injectable command runner so the
// argument assembly can be tested without the binary present.
package render
