package stage

import (
	"os"
	"strings"

	"storyreel/internal/services"
)

// ReadChapterText loads a chapter's source text and rejects empty payloads.
// On failure it returns a services.ErrValidation suitable for stage Execute
// methods.
func ReadChapterText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", services.Wrap(
			services.ErrValidation, "stage", "read chapter text",
			"Chapter text missing or unreadable; check the text directory", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", services.Wrap(
			services.ErrValidation, "stage", "read chapter text",
			"Chapter text is empty; remove the file or add content", nil)
	}
	return text, nil
}
