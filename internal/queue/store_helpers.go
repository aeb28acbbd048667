package queue

import (
	"database/sql"
	"errors"
	"time"
)

const chapterColumns = "id, name, text_path, audio_path, subtitle_path, status, error_message, created_at, updated_at, progress_stage, progress_percent, progress_message, duration_seconds, run_id, needs_review, review_reason"

func scanChapter(scanner interface{ Scan(dest ...any) error }) (*Chapter, error) {
	var (
		id              int64
		name            string
		textPath        sql.NullString
		audioPath       sql.NullString
		subtitlePath    sql.NullString
		statusStr       string
		errorMessage    sql.NullString
		createdRaw      sql.NullString
		updatedRaw      sql.NullString
		progressStage   sql.NullString
		progressPercent sql.NullFloat64
		progressMessage sql.NullString
		duration        sql.NullFloat64
		runID           sql.NullString
		needsReview     sql.NullInt64
		reviewReason    sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&name,
		&textPath,
		&audioPath,
		&subtitlePath,
		&statusStr,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
		&progressStage,
		&progressPercent,
		&progressMessage,
		&duration,
		&runID,
		&needsReview,
		&reviewReason,
	); err != nil {
		return nil, err
	}

	chapter := &Chapter{
		ID:              id,
		Name:            name,
		TextPath:        textPath.String,
		AudioPath:       audioPath.String,
		SubtitlePath:    subtitlePath.String,
		Status:          Status(statusStr),
		ErrorMessage:    errorMessage.String,
		ProgressStage:   progressStage.String,
		ProgressPercent: progressPercent.Float64,
		ProgressMessage: progressMessage.String,
		DurationSeconds: duration.Float64,
		RunID:           runID.String,
	}
	if needsReview.Valid {
		chapter.NeedsReview = needsReview.Int64 != 0
	}
	chapter.ReviewReason = reviewReason.String

	if created, err := parseTimeString(createdRaw.String); err == nil {
		chapter.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		chapter.UpdatedAt = updated
	}
	return chapter, nil
}

func collectChapters(rows *sql.Rows) ([]*Chapter, error) {
	var chapters []*Chapter
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, chapter)
	}
	return chapters, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
