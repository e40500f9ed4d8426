package handler

import (
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg-moderator/internal/models"
	"tg-moderator/internal/moderation"
)

// isCommand reports whether the message text is the given bot command,
// with or without the @botname suffix.
func isCommand(text, command string) bool {
	if text == "" || text[0] != '/' {
		return false
	}
	name := strings.Fields(text)[0]
	if at := strings.IndexByte(name, '@'); at != -1 {
		name = name[:at]
	}
	return name == "/"+command
}

// handleCommand dispatches bot commands. Returns true if the message was a
// command, so it is not fed to the classifier.
func handleCommand(ctx *th.Context, bot *telego.Bot, engine *moderation.Engine, message telego.Message) (bool, error) {
	switch {
	case isCommand(message.Text, "start"):
		return true, sendReply(ctx, bot, message, models.GetTranslation(globalConfig.Bot.Language, "welcome"))
	case isCommand(message.Text, "help"):
		return true, sendReply(ctx, bot, message, models.GetTranslation(globalConfig.Bot.Language, "help"))
	case isCommand(message.Text, "mute"):
		target := moderation.CommandTarget{
			UserID:   message.From.ID,
			Username: displayName(message.From),
		}
		return true, engine.MuteUser(ctx.Context(), message.Chat.ID, message.MessageID, target)
	case isCommand(message.Text, "unmute"):
		return true, engine.UnmuteUser(ctx.Context(), message.Chat.ID, message.MessageID, replyTarget(message))
	case isCommand(message.Text, "kick"):
		return true, engine.KickUser(ctx.Context(), message.Chat.ID, message.MessageID, replyTarget(message))
	}
	return false, nil
}

// replyTarget extracts the user the command acts on from the replied-to
// message, nil when the command was not sent as a reply.
func replyTarget(message telego.Message) *moderation.CommandTarget {
	if message.ReplyToMessage == nil || message.ReplyToMessage.From == nil {
		return nil
	}
	return &moderation.CommandTarget{
		UserID:   message.ReplyToMessage.From.ID,
		Username: displayName(message.ReplyToMessage.From),
	}
}

func sendReply(ctx *th.Context, bot *telego.Bot, message telego.Message, text string) error {
	_, err := bot.SendMessage(ctx.Context(), &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: message.Chat.ID},
		Text:   text,
		ReplyParameters: &telego.ReplyParameters{
			MessageID: message.MessageID,
		},
	})
	return err
}
