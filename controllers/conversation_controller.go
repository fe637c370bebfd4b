package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/nestorwheelock/buceo-feliz/services"
)

// ConversationController handles the mobile chat endpoints.
type ConversationController struct {
	Conversations *services.ConversationService
}

// NewConversationController initializes the conversation controller
func NewConversationController(conversations *services.ConversationService) *ConversationController {
	return &ConversationController{Conversations: conversations}
}

// HandleList - GET /api/mobile/conversations/
func (c *ConversationController) HandleList(w http.ResponseWriter, r *http.Request) {
	summaries, err := c.Conversations.ListConversations(r.Context())
	if err != nil {
		log.Printf("❌ Failed to list conversations: %v", err)
		http.Error(w, `{"error": "Failed to fetch conversations"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"conversations": summaries})
}

// HandleMessages - GET /api/mobile/conversations/{id}/messages/
func (c *ConversationController) HandleMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := mux.Vars(r)["id"]

	messages, err := c.Conversations.GetMessages(r.Context(), conversationID)
	if err != nil {
		if errors.Is(err, services.ErrConversationNotFound) {
			http.Error(w, `{"error": "Conversation not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("❌ Failed to fetch messages for %s: %v", conversationID, err)
		http.Error(w, `{"error": "Failed to fetch messages"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"messages": messages})
}

// HandleSend - POST /api/mobile/conversations/{id}/send/
func (c *ConversationController) HandleSend(w http.ResponseWriter, r *http.Request) {
	conversationID := mux.Vars(r)["id"]

	var request struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(request.Message) == "" {
		http.Error(w, `{"error": "Message required"}`, http.StatusBadRequest)
		return
	}

	user := UserFromContext(r.Context())
	messageID, err := c.Conversations.SendMessage(r.Context(), conversationID, request.Message, user)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConversationNotFound):
			http.Error(w, `{"error": "Conversation not found"}`, http.StatusNotFound)
		case errors.Is(err, services.ErrPersonNotFound):
			http.Error(w, `{"error": "Person not found"}`, http.StatusNotFound)
		default:
			log.Printf("❌ Failed to send message in %s: %v", conversationID, err)
			http.Error(w, `{"error": "Failed to send message"}`, http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":     "sent",
		"message_id": messageID,
	})
}
