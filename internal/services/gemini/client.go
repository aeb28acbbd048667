package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// SpeechRequest describes one narration synthesis call.
type SpeechRequest struct {
	Model       string
	Voice       string
	Instruction string
	Text        []byte
}

// AudioChunk is a fragment of streamed narration audio.
type AudioChunk struct {
	Data     []byte
	MIMEType string
}

// TranscriptRequest describes one audio transcription call.
type TranscriptRequest struct {
	Model     string
	Prompt    string
	AudioPath string
	MIMEType  string
}

// Client wraps the Gemini API.
type Client struct {
	api *genai.Client
}

// New constructs a Gemini client for the public API backend.
func New(ctx context.Context, apiKey string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini: api key required")
	}
	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{api: api}, nil
}

// Synthesize streams narration audio for the request text and returns the
// collected chunks in arrival order.
func (c *Client) Synthesize(ctx context.Context, req SpeechRequest) ([]AudioChunk, error) {
	if req.Model == "" {
		return nil, errors.New("gemini: synthesis model required")
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: req.Instruction},
				{InlineData: &genai.Blob{Data: req.Text, MIMEType: "text/plain"}},
			},
		},
	}
	config := &genai.GenerateContentConfig{
		Temperature:        genai.Ptr[float32](1),
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: req.Voice},
			},
		},
	}

	var chunks []AudioChunk
	for resp, err := range c.api.Models.GenerateContentStream(ctx, req.Model, contents, config) {
		if err != nil {
			return nil, fmt.Errorf("gemini: synthesis stream: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		for _, part := range resp.Candidates[0].Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			chunks = append(chunks, AudioChunk{
				Data:     part.InlineData.Data,
				MIMEType: part.InlineData.MIMEType,
			})
		}
	}
	if len(chunks) == 0 {
		return nil, errors.New("gemini: no audio data received")
	}
	return chunks, nil
}

// Transcribe uploads the audio file and returns the model's raw transcript text.
func (c *Client) Transcribe(ctx context.Context, req TranscriptRequest) (string, error) {
	if req.Model == "" {
		return "", errors.New("gemini: transcription model required")
	}
	if req.AudioPath == "" {
		return "", errors.New("gemini: audio path required")
	}

	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = "audio/wav"
	}
	uploaded, err := c.api.Files.UploadFromPath(ctx, req.AudioPath, &genai.UploadFileConfig{MIMEType: mimeType})
	if err != nil {
		return "", fmt.Errorf("gemini: upload audio: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: req.Prompt},
				{FileData: &genai.FileData{FileURI: uploaded.URI, MIMEType: uploaded.MIMEType}},
			},
		},
	}

	resp, err := c.api.Models.GenerateContent(ctx, req.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini: transcription: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("gemini: empty transcription response")
	}
	return text, nil
}
