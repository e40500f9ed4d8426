package moderation

import (
	"context"
	"fmt"
	"time"

	"tg-moderator/internal/classifier"
	"tg-moderator/internal/gateway"
	"tg-moderator/internal/logger"
	"tg-moderator/internal/models"
)

// ViolationStore is the durable per-user violation counter and the
// append-only message audit log.
type ViolationStore interface {
	GetViolationCount(ctx context.Context, userID int64) (int, error)
	RecordViolation(ctx context.Context, userID int64, username string, isToxic bool) error
	AppendMessageLog(ctx context.Context, userID int64, username, messageText string, isToxic bool) error
}

// IncomingMessage is one chat message to be moderated.
type IncomingMessage struct {
	ChatID    int64
	MessageID int
	UserID    int64
	Username  string
	Text      string
}

// CommandTarget is the user a manual moderation command acts on.
type CommandTarget struct {
	UserID   int64
	Username string
}

// Engine decides and applies the punitive action for each incoming message.
// Gateway failures are logged and swallowed so a single failed action never
// stops message processing; store failures are returned to the caller.
type Engine struct {
	gateway    gateway.Gateway
	classifier classifier.Classifier
	store      ViolationStore
	language   string
	now        func() time.Time
}

// NewEngine creates a moderation engine with the given collaborators
func NewEngine(gw gateway.Gateway, cl classifier.Classifier, store ViolationStore, language string) *Engine {
	if language == "" {
		language = models.LangRussian
	}
	return &Engine{
		gateway:    gw,
		classifier: cl,
		store:      store,
		language:   language,
		now:        time.Now,
	}
}

func (e *Engine) text(key string) string {
	return models.GetTranslation(e.language, key)
}

// reply sends a reply in the chat; failures are logged, not propagated.
func (e *Engine) reply(ctx context.Context, chatID int64, messageID int, text string) {
	if err := e.gateway.Reply(ctx, chatID, messageID, text); err != nil {
		logger.Warningf("Error sending reply in chat %d: %v", chatID, err)
	}
}

// memberRole looks up the author's role. A failed lookup is logged and the
// user is treated as a regular member.
func (e *Engine) memberRole(ctx context.Context, chatID, userID int64) gateway.Role {
	role, err := e.gateway.GetMemberRole(ctx, chatID, userID)
	if err != nil {
		logger.Warningf("Error getting role of user %d in chat %d: %v", userID, chatID, err)
		return gateway.RoleMember
	}
	return role
}

// ProcessMessage classifies the message and runs the full moderation
// sequence for it. Every path is terminal: the message counts as processed
// once this returns, even if an individual gateway action failed.
func (e *Engine) ProcessMessage(ctx context.Context, msg IncomingMessage) error {
	toxic, err := e.classifier.Classify(ctx, msg.Text)
	if err != nil {
		return fmt.Errorf("classify message from user %d: %w", msg.UserID, err)
	}

	if !toxic {
		if err := e.store.RecordViolation(ctx, msg.UserID, msg.Username, false); err != nil {
			return &StoreError{Op: "record clean message", Err: err}
		}
		if err := e.store.AppendMessageLog(ctx, msg.UserID, msg.Username, msg.Text, false); err != nil {
			return &StoreError{Op: "append message log", Err: err}
		}
		return nil
	}

	logger.Infof("Toxic message %d from user %d in chat %d", msg.MessageID, msg.UserID, msg.ChatID)

	if e.memberRole(ctx, msg.ChatID, msg.UserID).IsPrivileged() {
		// Administrators and creators are exempt from punishment: the
		// offense is logged for audit but the counter stays untouched
		// and the message is not deleted.
		e.reply(ctx, msg.ChatID, msg.MessageID, e.text("admin_mute_refusal"))
		if err := e.store.RecordViolation(ctx, msg.UserID, msg.Username, false); err != nil {
			return &StoreError{Op: "record admin message", Err: err}
		}
		if err := e.store.AppendMessageLog(ctx, msg.UserID, msg.Username, msg.Text, true); err != nil {
			return &StoreError{Op: "append message log", Err: err}
		}
		return nil
	}

	target := CommandTarget{UserID: msg.UserID, Username: msg.Username}
	if err := e.applyEscalation(ctx, msg.ChatID, msg.MessageID, target); err != nil {
		return err
	}

	if err := e.gateway.DeleteMessage(ctx, msg.ChatID, msg.MessageID); err != nil {
		logger.Warningf("Error deleting message %d in chat %d: %v", msg.MessageID, msg.ChatID, err)
	}

	if err := e.store.RecordViolation(ctx, msg.UserID, msg.Username, true); err != nil {
		return &StoreError{Op: "record violation", Err: err}
	}
	if err := e.store.AppendMessageLog(ctx, msg.UserID, msg.Username, msg.Text, true); err != nil {
		return &StoreError{Op: "append message log", Err: err}
	}

	if err := e.gateway.DirectMessage(ctx, msg.UserID, e.text("toxic_message_removed")); err != nil {
		logger.Warningf("Error notifying user %d about removed message: %v", msg.UserID, err)
	}

	return nil
}

// applyEscalation reads the stored violation count, picks the punitive
// action from the policy table and applies it. The count is read before
// the current violation is recorded: the policy is evaluated on the prior
// count by design.
func (e *Engine) applyEscalation(ctx context.Context, chatID int64, messageID int, target CommandTarget) error {
	count, err := e.store.GetViolationCount(ctx, target.UserID)
	if err != nil {
		return &StoreError{Op: "get violation count", Err: err}
	}

	action := NextAction(count)
	if action.Kind == ActionKick {
		if err := e.gateway.RemoveMember(ctx, chatID, target.UserID); err != nil {
			logger.Warningf("Error kicking user %d from chat %d: %v", target.UserID, chatID, err)
			return nil
		}
		logger.Infof("Kicked user %d from chat %d after %d violations", target.UserID, chatID, count)
		e.reply(ctx, chatID, messageID, fmt.Sprintf(e.text("kick_confirmation"), target.Username))
		return nil
	}

	until := e.now().Add(action.Duration)
	if err := e.gateway.Restrict(ctx, chatID, target.UserID, until); err != nil {
		logger.Warningf("Error muting user %d in chat %d: %v", target.UserID, chatID, err)
		return nil
	}
	seconds := int(action.Duration / time.Second)
	logger.Infof("Muted user %d in chat %d for %d seconds", target.UserID, chatID, seconds)
	e.reply(ctx, chatID, messageID, fmt.Sprintf(e.text("mute_confirmation"), target.Username, seconds))
	return nil
}

// MuteUser handles the manual mute command. The duration comes from the
// same escalation table, evaluated on the current stored count; the counter
// itself is never touched by manual commands.
func (e *Engine) MuteUser(ctx context.Context, chatID int64, messageID int, target CommandTarget) error {
	if e.memberRole(ctx, chatID, target.UserID).IsPrivileged() {
		e.reply(ctx, chatID, messageID, e.text("admin_mute_refusal"))
		return nil
	}
	return e.applyEscalation(ctx, chatID, messageID, target)
}

// KickUser handles the manual kick command. It requires a reply target.
func (e *Engine) KickUser(ctx context.Context, chatID int64, messageID int, target *CommandTarget) error {
	if target == nil {
		e.reply(ctx, chatID, messageID, e.text("kick_no_reply"))
		return nil
	}

	if e.memberRole(ctx, chatID, target.UserID).IsPrivileged() {
		e.reply(ctx, chatID, messageID, e.text("admin_kick_refusal"))
		return nil
	}

	if err := e.gateway.RemoveMember(ctx, chatID, target.UserID); err != nil {
		logger.Warningf("Error kicking user %d from chat %d: %v", target.UserID, chatID, err)
		return nil
	}
	e.reply(ctx, chatID, messageID, fmt.Sprintf(e.text("kick_confirmation"), target.Username))
	return nil
}

// UnmuteUser handles the manual unmute command. It requires a reply target
// and fully restores send permissions; the violation counter is untouched.
func (e *Engine) UnmuteUser(ctx context.Context, chatID int64, messageID int, target *CommandTarget) error {
	if target == nil {
		e.reply(ctx, chatID, messageID, e.text("unmute_no_reply"))
		return nil
	}

	if err := e.gateway.Restore(ctx, chatID, target.UserID); err != nil {
		logger.Warningf("Error unmuting user %d in chat %d: %v", target.UserID, chatID, err)
		return nil
	}
	e.reply(ctx, chatID, messageID, fmt.Sprintf(e.text("unmute_confirmation"), target.Username))
	return nil
}
