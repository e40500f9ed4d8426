package handler

import (
	"errors"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg-moderator/internal/classifier"
	"tg-moderator/internal/config"
	"tg-moderator/internal/crash"
	"tg-moderator/internal/logger"
	"tg-moderator/internal/moderation"
)

var globalConfig *config.Config

func Initialize(cfg *config.Config) {
	globalConfig = cfg
}

// SetupMessageHandlers configures all bot message handlers
func SetupMessageHandlers(bh *th.BotHandler, bot *telego.Bot, engine *moderation.Engine) {
	bh.HandleMessage(func(ctx *th.Context, message telego.Message) error {
		defer crash.RecoverWithStack("message-handler")

		// Skip if no sender information or sender is a bot
		if message.From == nil || message.From.IsBot {
			return nil
		}

		// Only moderate the configured group, if one is set
		if message.Chat.Type != "private" && globalConfig.Bot.GroupID != -1 && message.Chat.ID != globalConfig.Bot.GroupID {
			return nil
		}

		if handled, err := handleCommand(ctx, bot, engine, message); handled {
			return err
		}

		if message.Chat.Type == "private" || message.Text == "" {
			return nil
		}

		return handleGroupMessage(ctx, engine, message)
	})
}

// handleGroupMessage runs one group message through the moderation engine.
// Engine failures are logged here; a single bad message never stops the
// update loop.
func handleGroupMessage(ctx *th.Context, engine *moderation.Engine, message telego.Message) error {
	msg := moderation.IncomingMessage{
		ChatID:    message.Chat.ID,
		MessageID: message.MessageID,
		UserID:    message.From.ID,
		Username:  displayName(message.From),
		Text:      message.Text,
	}

	err := engine.ProcessMessage(ctx.Context(), msg)
	if err == nil {
		return nil
	}

	var classErr *classifier.ClassificationError
	var storeErr *moderation.StoreError
	switch {
	case errors.As(err, &classErr):
		// Message stays unprocessed; the counter and log are untouched
		logger.Warningf("Classifier failed for message %d in chat %d: %v", message.MessageID, message.Chat.ID, err)
	case errors.As(err, &storeErr):
		logger.Errorf("Violation store failed for message %d in chat %d: %v", message.MessageID, message.Chat.ID, err)
	default:
		logger.Errorf("Error processing message %d in chat %d: %v", message.MessageID, message.Chat.ID, err)
	}
	return nil
}

// displayName returns the user's username, falling back to the first and
// last name for users without one.
func displayName(user *telego.User) string {
	if user.Username != "" {
		return user.Username
	}
	name := user.FirstName
	if user.LastName != "" {
		name += " " + user.LastName
	}
	return name
}
