// Package transcriber turns recorded speech into text through a hosted
// speech-to-text model.
package transcriber

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"dinebook/pkg/logger"

	openai "github.com/sashabaranov/go-openai"
)

// ErrNotConfigured is returned when no provider credential is set.
var ErrNotConfigured = errors.New("speech-to-text provider is not configured")

type SpeechToText interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

type Config struct {
	APIKey   string
	BaseURL  string // empty uses the provider default
	Model    string
	Language string
	Timeout  time.Duration
}

type whisper struct {
	client   *openai.Client
	model    string
	language string
	timeout  time.Duration
	log      *logger.Logger
}

// NewWhisper returns a transcriber backed by the OpenAI audio API. With an
// empty API key every call fails with ErrNotConfigured.
func NewWhisper(cfg Config, log *logger.Logger) SpeechToText {
	w := &whisper{
		model:    cfg.Model,
		language: cfg.Language,
		timeout:  cfg.Timeout,
		log:      log,
	}
	if w.model == "" {
		w.model = openai.Whisper1
	}
	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
		}
		w.client = openai.NewClientWithConfig(clientCfg)
	}
	return w
}

func (w *whisper) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	if w.client == nil {
		return "", ErrNotConfigured
	}

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	if filename == "" {
		filename = "recording.webm"
	}

	start := time.Now()
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: filepath.Base(filename),
		Reader:   audio,
		Language: w.language,
	})
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}

	w.log.Debug("Audio transcribed",
		"model", w.model,
		"chars", len(resp.Text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp.Text, nil
}
