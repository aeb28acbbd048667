// Package validation is the workflow stage that re-checks a chapter's SRT
// file against the subtitle format and line budgets, repairing what it can
// and flagging the rest for manual review.
package validation
