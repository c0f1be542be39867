// chat.go - The public message board. Messages are append-only and listed
// in full; there is no moderation and no pagination.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type postMessageReq struct {
	Name    string `json:"name"`
	Image   string `json:"image"`
	Message string `json:"message"`
	Mobile  string `json:"mobile"`
}

// postMessageHandler handles POST /chatbox.
func (s *Server) postMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req postMessageReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeMsg(w, http.StatusBadRequest, "message is required")
		return
	}

	msg := &ChatMessage{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Image:     req.Image,
		Message:   req.Message,
		Mobile:    req.Mobile,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.chat.Create(r.Context(), msg); err != nil {
		Error("chat: insert failed", nil, err)
		writeMsg(w, http.StatusInternalServerError, "failed to post message")
		return
	}

	GetMetrics().RecordChatPost()
	writeJSON(w, http.StatusCreated, msg)
}

// listMessagesHandler handles GET /chatbox.
func (s *Server) listMessagesHandler(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.chat.All(r.Context())
	if err != nil {
		Error("chat: list failed", nil, err)
		writeMsg(w, http.StatusInternalServerError, "server error")
		return
	}
	if msgs == nil {
		msgs = []ChatMessage{}
	}
	writeJSON(w, http.StatusOK, msgs)
}
