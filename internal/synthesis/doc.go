// Package synthesis is the workflow stage that turns chapter text into
// narrated WAV audio via the speech service. Chapters whose audio already
// exists are skipped so an interrupted run can resume without re-billing
// the API.
package synthesis
