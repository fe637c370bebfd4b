package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/nestorwheelock/buceo-feliz/models"
	"github.com/nestorwheelock/buceo-feliz/utils"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrPersonNotFound       = errors.New("person not found")
)

const (
	maxConversations        = 100
	maxMessagesPerThread    = 200
	lastMessagePreviewChars = 100
)

// ChatBroadcaster pushes newMessage events to conversation watchers.
type ChatBroadcaster interface {
	BroadcastNewMessage(conversationID string, payload map[string]interface{})
}

// LeadMailer notifies the shop inbox about outbound replies.
type LeadMailer interface {
	SendLeadNotification(person *models.Person, messageText string, staff *models.StaffUser) error
}

// StaffNotifier pushes notifications to staff devices.
type StaffNotifier interface {
	BroadcastToStaff(ctx context.Context, title, body string, data map[string]string) int
}

// ConversationService implements the mobile chat operations.
type ConversationService struct {
	Dynamo      *DynamoService
	Broadcaster ChatBroadcaster
	Mailer      LeadMailer
	Notifier    StaffNotifier
}

// ListConversations returns open conversations newest-activity-first, each
// decorated with its person, last message preview and unread count.
func (s *ConversationService) ListConversations(ctx context.Context) ([]models.ConversationSummary, error) {
	var conversations []models.Conversation
	err := s.Dynamo.ScanWithFilter(ctx, models.ConversationsTable,
		func(item map[string]types.AttributeValue) bool {
			if utils.ExtractString(item, "deletedAt") != "" {
				return false
			}
			return utils.ExtractString(item, "status") != models.ConversationStatusClosed
		}, nil, &conversations)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversations: %w", err)
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].UpdatedAt > conversations[j].UpdatedAt
	})
	if len(conversations) > maxConversations {
		conversations = conversations[:maxConversations]
	}

	summaries := make([]models.ConversationSummary, 0, len(conversations))
	for _, conv := range conversations {
		person, err := s.personByID(ctx, conv.PersonID)
		if err != nil {
			// Orphaned conversation, skip it
			continue
		}

		messages, err := s.recentMessages(ctx, conv.ID)
		if err != nil {
			log.Printf("❌ Failed to load messages for conversation %s: %v", conv.ID, err)
			continue
		}

		summary := models.ConversationSummary{
			ID:       conv.ID,
			PersonID: person.ID,
			Name:     person.DisplayName(),
			Email:    person.Email,
			Initials: person.Initials(),
			Status:   conv.Status,
		}

		if len(messages) > 0 {
			last := messages[0] // newest first
			summary.LastMessage = truncateRunes(last.BodyText, lastMessagePreviewChars)
			t := last.CreatedAt
			summary.LastMessageTime = &t
			summary.NeedsReply = last.Direction == models.DirectionInbound
		}

		for _, msg := range messages {
			if msg.Direction == models.DirectionInbound && msg.Status != models.MessageStatusRead {
				summary.UnreadCount++
			}
		}

		summaries = append(summaries, summary)
	}

	log.Printf("✅ Listed %d conversations", len(summaries))
	return summaries, nil
}

// GetMessages returns a conversation's messages in chronological order and
// marks inbound unread messages as read.
func (s *ConversationService) GetMessages(ctx context.Context, conversationID string) ([]models.MessageView, error) {
	conv, err := s.conversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	person, _ := s.personByID(ctx, conv.PersonID)

	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable,
		"conversationId = :conversationId",
		map[string]types.AttributeValue{
			":conversationId": &types.AttributeValueMemberS{Value: conversationID},
		}, nil, maxMessagesPerThread, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	views := make([]models.MessageView, 0, len(messages))
	for _, msg := range messages {
		if msg.Direction == models.DirectionInbound && msg.Status != models.MessageStatusRead {
			s.markRead(ctx, msg, now)
			msg.Status = models.MessageStatusRead
		}

		views = append(views, models.MessageView{
			ID:         msg.MessageID,
			Body:       msg.BodyText,
			Direction:  msg.Direction,
			Status:     msg.Status,
			CreatedAt:  msg.CreatedAt,
			SenderName: senderName(msg, person),
		})
	}

	return views, nil
}

// SendMessage creates an outbound staff message, bumps the conversation,
// broadcasts it to the socket room, pushes a staff notification and
// notifies the shop inbox. Broadcast, push and email failures are logged,
// never returned.
func (s *ConversationService) SendMessage(ctx context.Context, conversationID, text string, staff *models.StaffUser) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("message is required")
	}

	conv, err := s.conversationByID(ctx, conversationID)
	if err != nil {
		return "", err
	}

	person, err := s.personByID(ctx, conv.PersonID)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	msg := models.Message{
		ConversationID: conversationID,
		CreatedAt:      now,
		MessageID:      uuid.New().String(),
		Direction:      models.DirectionOutbound,
		Channel:        models.ChannelInApp,
		FromAddress:    staff.Email,
		ToAddress:      person.Email,
		BodyText:       text,
		Status:         models.MessageStatusSent,
		SentAt:         now,
	}

	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, msg); err != nil {
		return "", fmt.Errorf("failed to store message: %w", err)
	}

	_, err = s.Dynamo.UpdateItem(ctx, models.ConversationsTable,
		"SET lastOutboundAt = :now, updatedAt = :now",
		map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: conversationID},
		},
		map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberS{Value: now},
		}, nil)
	if err != nil {
		log.Printf("❌ Failed to bump conversation %s: %v", conversationID, err)
	}

	if s.Broadcaster != nil {
		s.Broadcaster.BroadcastNewMessage(conversationID, map[string]interface{}{
			"conversation_id": conversationID,
			"message_id":      msg.MessageID,
			"message":         text,
			"direction":       msg.Direction,
			"status":          msg.Status,
			"created_at":      msg.CreatedAt,
			"sender_name":     "Staff",
		})
	}

	if s.Notifier != nil {
		s.Notifier.BroadcastToStaff(ctx, "Reply sent to "+person.DisplayName(),
			truncateRunes(text, lastMessagePreviewChars), map[string]string{
				"type":            "chat_message",
				"conversation_id": conversationID,
			})
	}

	if s.Mailer != nil {
		if err := s.Mailer.SendLeadNotification(person, text, staff); err != nil {
			log.Printf("❌ Lead notification email failed: %v", err)
		}
	}

	log.Printf("📩 Message %s sent in conversation %s", msg.MessageID, conversationID)
	return msg.MessageID, nil
}

// NeedsReply returns conversations whose newest message is inbound and
// older than the given cutoff. The sweep job uses this for digests.
func (s *ConversationService) NeedsReply(ctx context.Context, olderThan time.Duration) ([]models.ConversationSummary, error) {
	summaries, err := s.ListConversations(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-olderThan)
	var stale []models.ConversationSummary
	for _, summary := range summaries {
		if !summary.NeedsReply || summary.LastMessageTime == nil {
			continue
		}
		t, err := time.Parse(time.RFC3339, *summary.LastMessageTime)
		if err != nil {
			continue
		}
		if t.Before(cutoff) {
			stale = append(stale, summary)
		}
	}
	return stale, nil
}

func (s *ConversationService) conversationByID(ctx context.Context, id string) (*models.Conversation, error) {
	item, err := s.Dynamo.GetItem(ctx, models.ConversationsTable, map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}

	var conv models.Conversation
	if err := attributevalue.UnmarshalMap(item, &conv); err != nil {
		return nil, fmt.Errorf("failed to parse conversation: %w", err)
	}
	if conv.DeletedAt != "" {
		return nil, ErrConversationNotFound
	}
	return &conv, nil
}

func (s *ConversationService) personByID(ctx context.Context, id string) (*models.Person, error) {
	item, err := s.Dynamo.GetItem(ctx, models.PersonsTable, map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}

	var person models.Person
	if err := attributevalue.UnmarshalMap(item, &person); err != nil {
		return nil, fmt.Errorf("failed to parse person: %w", err)
	}
	if person.DeletedAt != "" {
		return nil, ErrPersonNotFound
	}
	return &person, nil
}

func (s *ConversationService) recentMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable,
		"conversationId = :conversationId",
		map[string]types.AttributeValue{
			":conversationId": &types.AttributeValueMemberS{Value: conversationID},
		}, nil, maxMessagesPerThread, true)
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	return messages, nil
}

func (s *ConversationService) markRead(ctx context.Context, msg models.Message, readAt string) {
	_, err := s.Dynamo.UpdateItem(ctx, models.MessagesTable,
		"SET #status = :read, readAt = :readAt",
		map[string]types.AttributeValue{
			"conversationId": &types.AttributeValueMemberS{Value: msg.ConversationID},
			"createdAt":      &types.AttributeValueMemberS{Value: msg.CreatedAt},
		},
		map[string]types.AttributeValue{
			":read":   &types.AttributeValueMemberS{Value: models.MessageStatusRead},
			":readAt": &types.AttributeValueMemberS{Value: readAt},
		},
		map[string]string{
			"#status": "status",
		})
	if err != nil {
		log.Printf("❌ Failed to mark message %s read: %v", msg.MessageID, err)
	}
}

// truncateRunes shortens s to at most max characters without splitting
// a multi-byte rune.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func senderName(msg models.Message, person *models.Person) string {
	if msg.Direction == models.DirectionInbound {
		if person != nil {
			name := strings.TrimSpace(person.FirstName + " " + person.LastName)
			if name != "" {
				return name
			}
			if person.Email != "" {
				return person.Email
			}
		}
		return "Visitor"
	}
	return "Staff"
}
