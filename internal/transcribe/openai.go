// Package transcribe turns audio files into text using OpenAI's
// Whisper API.
package transcribe

import (
	"context"
	"fmt"
	"os"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client wraps the OpenAI audio transcription endpoint.
type Client struct {
	client oai.Client
	model  oai.AudioModel
}

// Option customizes a Client.
type Option func(*Client)

// WithModel overrides the transcription model.
func WithModel(model oai.AudioModel) Option {
	return func(c *Client) {
		c.model = model
	}
}

// New creates a transcription client authenticated with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		client: oai.NewClient(option.WithAPIKey(apiKey)),
		model:  oai.AudioModelWhisper1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transcribe uploads the audio file at path and returns its transcript.
func (c *Client) Transcribe(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening audio file: %w", err)
	}
	defer f.Close()

	resp, err := c.client.Audio.Transcriptions.New(ctx, oai.AudioTranscriptionNewParams{
		Model: c.model,
		File:  f,
	})
	if err != nil {
		return "", fmt.Errorf("transcribing %s: %w", path, err)
	}
	return resp.Text, nil
}
