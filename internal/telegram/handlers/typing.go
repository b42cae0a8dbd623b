package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// typingInterval is below the 5 second lifetime of a chat action
const typingInterval = 4 * time.Second

// TypingNotifier sends periodic "typing" actions while a completion call is in flight
type TypingNotifier struct {
	sender Sender
	chatID int64
	done   chan struct{}
	once   sync.Once
}

// StartTyping sends a typing action immediately and then every typingInterval until Stop
func StartTyping(ctx context.Context, sender Sender, chatID int64) *TypingNotifier {
	t := &TypingNotifier{
		sender: sender,
		chatID: chatID,
		done:   make(chan struct{}),
	}

	t.send(ctx)

	go func() {
		ticker := time.NewTicker(typingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.send(ctx)
			case <-t.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return t
}

// Stop stops sending typing indicators. Safe to call more than once.
func (t *TypingNotifier) Stop() {
	t.once.Do(func() { close(t.done) })
}

func (t *TypingNotifier) send(ctx context.Context) {
	if err := t.sender.SendTyping(ctx, t.chatID); err != nil {
		ctxzap.Warn(ctx, "failed to send typing action",
			zap.Error(err),
			zap.Int64("chat_id", t.chatID),
		)
	}
}
