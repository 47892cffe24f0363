package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dinebook/internal/dialogue"
	apperrors "dinebook/pkg/errors"
	"dinebook/pkg/logger"
	"dinebook/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBooker struct {
	createFunc func(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResult, error)
}

func (m *mockBooker) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResult, error) {
	return m.createFunc(ctx, req)
}

func postDialogue(t *testing.T, booker dialogue.Booker, body any) (*httptest.ResponseRecorder, DialogueResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, DialoguePath, &buf)
	req.Header.Set("Content-Type", "application/json")

	router := httprouter.New()
	NewDialogueHandler(booker, logger.Discard()).RegisterRoutes(router)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp DialogueResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestDialogue_StartsWithoutState(t *testing.T) {
	w, resp := postDialogue(t, nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resp.State.Step)
	assert.Equal(t, dialogue.Steps[0].Prompt, resp.Prompt)
	assert.False(t, resp.Done)
	require.Len(t, resp.Messages, 3)
	assert.Equal(t, dialogue.MsgWelcome, resp.Messages[0].Text)
}

func TestDialogue_AdvancesOneStep(t *testing.T) {
	s := dialogue.Start()

	w, resp := postDialogue(t, nil, DialogueRequest{State: &s, Transcript: "priya sharma"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, resp.State.Step)
	assert.Equal(t, "Priya Sharma", resp.State.Fields.CustomerName)
	assert.Equal(t, dialogue.Steps[1].Prompt, resp.Prompt)
	assert.Equal(t, []dialogue.Message{
		{From: dialogue.SpeakerUser, Text: "priya sharma"},
		{From: dialogue.SpeakerBot, Text: dialogue.Steps[1].Prompt},
	}, resp.Messages)
}

func TestDialogue_EmptyTranscriptSkips(t *testing.T) {
	s := dialogue.Advance(dialogue.Start(), "priya")

	_, resp := postDialogue(t, nil, DialogueRequest{State: &s})

	assert.Equal(t, 2, resp.State.Step)
	assert.EqualValues(t, dialogue.DefaultGuests, resp.State.Fields.NumberOfGuests)
	require.NotEmpty(t, resp.Messages)
	assert.Equal(t, dialogue.MsgNotHeard, resp.Messages[0].Text)
}

func lastStep() dialogue.State {
	s := dialogue.Start()
	for _, a := range []string{"priya", "3", "6 December 2025", "8 pm", "thai", "none"} {
		s = dialogue.Advance(s, a)
	}
	return s
}

func TestDialogue_BooksAfterLastStep(t *testing.T) {
	var got *model.CreateBookingRequest
	booker := &mockBooker{createFunc: func(_ context.Context, req *model.CreateBookingRequest) (*model.BookingResult, error) {
		got = req
		return &model.BookingResult{Message: "Booking created successfully", VoiceSuggestion: "Enjoy"}, nil
	}}
	s := lastStep()

	w, resp := postDialogue(t, booker, DialogueRequest{State: &s, Transcript: "Mangalore India"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Done)
	assert.Empty(t, resp.Prompt)
	assert.Empty(t, resp.Error)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "Enjoy", resp.Result.VoiceSuggestion)

	require.NotNil(t, got)
	assert.Equal(t, "20:00", got.BookingTime)
	assert.Equal(t, "Mangalore India", got.Location)

	texts := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		texts = append(texts, m.Text)
	}
	assert.Equal(t, []string{"Mangalore India", dialogue.MsgDone, "Enjoy"}, texts)
}

func TestDialogue_BookingErrorIsReported(t *testing.T) {
	booker := &mockBooker{createFunc: func(_ context.Context, _ *model.CreateBookingRequest) (*model.BookingResult, error) {
		return nil, apperrors.Validation("That time slot is already booked on this date. Please choose another time.", nil)
	}}
	s := lastStep()

	w, resp := postDialogue(t, booker, DialogueRequest{State: &s, Transcript: "Bangalore"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Done)
	assert.Nil(t, resp.Result)
	assert.Contains(t, resp.Error, "already booked")
	assert.Equal(t, dialogue.MsgBookingError, resp.Messages[len(resp.Messages)-1].Text)
}

func TestDialogue_RejectsFinishedState(t *testing.T) {
	s := dialogue.State{Step: len(dialogue.Steps)}

	w, _ := postDialogue(t, nil, DialogueRequest{State: &s, Transcript: "again"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, MsgDialogueFinished, message(t, w))
}
