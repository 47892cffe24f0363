package handler

import (
	"errors"
	"net/http"

	"dinebook/internal/voice/transcriber"
	apperrors "dinebook/pkg/errors"
	httputil "dinebook/pkg/http"
	"dinebook/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

const (
	TranscribePath = "/api/voice/transcribe"
	AudioField     = "audio"

	MsgNoAudio       = "No audio file uploaded"
	MsgNotConfigured = "Server is not configured with OPENAI_API_KEY"
	MsgFailed        = "Transcription failed"

	maxMemory = 8 << 20
)

type TranscriptResponse struct {
	Transcript string `json:"transcript"`
}

type TranscribeHandler struct {
	stt transcriber.SpeechToText
	log *logger.Logger
}

func NewTranscribeHandler(stt transcriber.SpeechToText, log *logger.Logger) *TranscribeHandler {
	return &TranscribeHandler{stt: stt, log: log}
}

func (h *TranscribeHandler) Transcribe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeError(w, apperrors.TooLarge("Audio file too large"))
			return
		}
		h.writeError(w, apperrors.InvalidInput(MsgNoAudio))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(AudioField)
	if err != nil {
		h.writeError(w, apperrors.InvalidInput(MsgNoAudio))
		return
	}
	defer file.Close()

	text, err := h.stt.Transcribe(r.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, transcriber.ErrNotConfigured) {
			h.log.Error("OPENAI_API_KEY is missing in environment variables")
			h.writeError(w, apperrors.ExternalProvider(MsgNotConfigured, err))
			return
		}
		h.log.Error("Whisper transcription error",
			"filename", header.Filename,
			"size", header.Size,
			"error", err,
		)
		h.writeError(w, apperrors.ExternalProvider(MsgFailed, err))
		return
	}

	if err := httputil.WriteSuccess(w, TranscriptResponse{Transcript: text}); err != nil {
		h.log.Error("failed to write success response", "handler", "Transcribe", "operation", "WriteSuccess", "error", err)
	}
}

func (h *TranscribeHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", "Transcribe", "operation", "WriteError", "error", writeErr)
	}
}

func (h *TranscribeHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(TranscribePath, h.Transcribe)
}
