package dialogue

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoSpeech is returned for a blank answer.
var ErrNoSpeech = errors.New("no speech detected")

// LineRecognizer reads one answer per line, standing in for a microphone.
type LineRecognizer struct {
	scanner *bufio.Scanner
}

func NewLineRecognizer(r io.Reader) *LineRecognizer {
	return &LineRecognizer{scanner: bufio.NewScanner(r)}
}

func (l *LineRecognizer) Listen(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := strings.TrimSpace(l.scanner.Text())
	if line == "" {
		return "", ErrNoSpeech
	}
	return line, nil
}

// WriterPrompter prints each bot line with a speaker prefix.
type WriterPrompter struct {
	w io.Writer
}

func NewWriterPrompter(w io.Writer) *WriterPrompter {
	return &WriterPrompter{w: w}
}

func (p *WriterPrompter) Say(_ context.Context, text string) error {
	_, err := fmt.Fprintf(p.w, "%s: %s\n", SpeakerBot, text)
	return err
}
