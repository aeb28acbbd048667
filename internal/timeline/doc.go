// Package timeline merges per-chapter audio/subtitle fragment pairs into a
// single globally timed subtitle payload plus a chapter-mark index.
//
// Each unit advances the running offset by its audio duration whether or not
// its subtitles are usable: invalid or missing subtitles leave a silent gap
// in the merged timeline instead of aborting the merge. Units whose audio
// duration cannot be determined contribute a fixed synthetic gap so the
// chapters that follow stay roughly aligned.
package timeline
