package handler

import (
	"net/http"

	"dinebook/internal/dialogue"
	apperrors "dinebook/pkg/errors"
	httputil "dinebook/pkg/http"
	"dinebook/pkg/logger"
	"dinebook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	DialoguePath = "/api/voice/dialogue"

	MsgDialogueFinished = "Dialogue already finished, start a new one"
	MsgInvalidStep      = "Invalid dialogue step"
)

// DialogueRequest carries the state returned by the previous call. A missing
// state starts a new dialogue. An empty transcript means nothing was heard.
type DialogueRequest struct {
	State      *dialogue.State `json:"state,omitempty"`
	Transcript string          `json:"transcript"`
}

type DialogueResponse struct {
	State    dialogue.State       `json:"state"`
	Prompt   string               `json:"prompt"`
	Done     bool                 `json:"done"`
	Messages []dialogue.Message   `json:"messages"`
	Result   *model.BookingResult `json:"result,omitempty"`
	Error    string               `json:"error,omitempty"`
}

type DialogueHandler struct {
	booker dialogue.Booker
	log    *logger.Logger
}

func NewDialogueHandler(booker dialogue.Booker, log *logger.Logger) *DialogueHandler {
	return &DialogueHandler{booker: booker, log: log}
}

// Step applies one answer to the dialogue and, once the last question is
// answered, books the table.
func (h *DialogueHandler) Step(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req DialogueRequest
	if r.ContentLength != 0 {
		if err := httputil.DecodeJSON(r, &req); err != nil {
			h.writeError(w, err)
			return
		}
	}

	if req.State == nil {
		s := dialogue.Start()
		h.writeSuccess(w, DialogueResponse{
			State:    s,
			Prompt:   s.Prompt(),
			Messages: s.History,
		})
		return
	}

	prev := *req.State
	if prev.Step < 0 {
		h.writeError(w, apperrors.InvalidInput(MsgInvalidStep))
		return
	}
	if prev.Done() {
		h.writeError(w, apperrors.InvalidInput(MsgDialogueFinished))
		return
	}

	var next dialogue.State
	if req.Transcript == "" {
		next = dialogue.Skip(prev)
	} else {
		next = dialogue.Advance(prev, req.Transcript)
	}

	resp := DialogueResponse{}
	if next.Done() {
		var err error
		var result *model.BookingResult
		next, result, err = dialogue.Complete(r.Context(), next, h.booker)
		if err != nil {
			h.log.Warn("Voice dialogue booking failed", "error", err)
			resp.Error = apperrors.AsAppError(err).Message
		}
		resp.Result = result
	}

	resp.State = next
	resp.Prompt = next.Prompt()
	resp.Done = next.Done()
	resp.Messages = next.History[len(prev.History):]
	h.writeSuccess(w, resp)
}

func (h *DialogueHandler) writeSuccess(w http.ResponseWriter, resp DialogueResponse) {
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Dialogue", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DialogueHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", "Dialogue", "operation", "WriteError", "error", writeErr)
	}
}

func (h *DialogueHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(DialoguePath, h.Step)
}
