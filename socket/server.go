package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// ConversationRoom returns the room name clients join for a conversation.
func ConversationRoom(conversationID string) string {
	return "conversation_" + conversationID
}

// NewChatServer initializes the Socket.IO server for staff chat.
// Clients join per-conversation rooms and receive newMessage events.
func NewChatServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(s socketio.Conn) error {
		log.Println("✅ Socket connected:", s.ID())
		return nil
	})

	server.OnEvent("/", "join", func(s socketio.Conn, data map[string]string) {
		conversationID := data["conversation_id"]
		if conversationID == "" {
			log.Println("❌ Invalid conversation_id in join request")
			return
		}
		log.Printf("👥 Socket %s joined conversation %s", s.ID(), conversationID)
		s.Join(ConversationRoom(conversationID))
	})

	server.OnEvent("/", "leave", func(s socketio.Conn, data map[string]string) {
		conversationID := data["conversation_id"]
		if conversationID == "" {
			return
		}
		s.Leave(ConversationRoom(conversationID))
	})

	server.OnEvent("/", "sendMessage", func(s socketio.Conn, payload map[string]interface{}) {
		conversationID, _ := payload["conversation_id"].(string)
		if conversationID == "" {
			log.Println("❌ Invalid conversation_id in sendMessage")
			return
		}
		server.BroadcastToRoom("/", ConversationRoom(conversationID), "newMessage", payload)
	})

	server.OnError("/", func(s socketio.Conn, err error) {
		log.Println("❌ Socket error:", err)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.Println("👋 Socket disconnected:", reason)
	})

	return server
}

// Broadcaster pushes chat events to conversation rooms.
type Broadcaster struct {
	Server *socketio.Server
}

// BroadcastNewMessage emits a newMessage event to everyone watching the
// conversation. Errors are logged, never returned; a dropped broadcast
// must not fail the send that triggered it.
func (b *Broadcaster) BroadcastNewMessage(conversationID string, payload map[string]interface{}) {
	if b == nil || b.Server == nil {
		return
	}
	ok := b.Server.BroadcastToRoom("/", ConversationRoom(conversationID), "newMessage", payload)
	if !ok {
		log.Printf("⚠️ No listeners in room %s", ConversationRoom(conversationID))
	}
}
