package services

import (
	"context"
	"fmt"
	"log"
	"time"
)

const (
	needsReplyAge     = 30 * time.Minute
	maxDeviceFailures = 5
)

// SweepService runs the scheduled maintenance jobs.
type SweepService struct {
	Conversations *ConversationService
	FCM           *FCMService
}

// NeedsReplySweep pushes a digest to staff devices when conversations have
// been waiting on a reply for too long.
func (s *SweepService) NeedsReplySweep(ctx context.Context) {
	stale, err := s.Conversations.NeedsReply(ctx, needsReplyAge)
	if err != nil {
		log.Printf("❌ Needs-reply sweep failed: %v", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	body := fmt.Sprintf("%d conversation(s) awaiting a reply", len(stale))
	sent := s.FCM.BroadcastToStaff(ctx, "Chat needs attention", body, map[string]string{
		"type": "needs_reply_digest",
	})
	log.Printf("🔔 Needs-reply digest: %d stale conversations, %d pushes sent", len(stale), sent)
}

// PurgeFailingDevices deactivates devices whose delivery failures passed
// the threshold.
func (s *SweepService) PurgeFailingDevices(ctx context.Context) {
	count, err := s.FCM.DeactivateFailingDevices(ctx, maxDeviceFailures)
	if err != nil {
		log.Printf("❌ Device purge failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("🧹 Deactivated %d failing FCM devices", count)
	}
}
