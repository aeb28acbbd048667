// Package textutil provides text processing utilities for natural filename
// ordering and filesystem-safe sanitization.
//
// Natural ordering splits strings into digit and non-digit runs and compares
// digit runs numerically, so "Chapter 2" sorts before "Chapter 10". Merge
// units and batch inputs rely on this ordering.
package textutil
