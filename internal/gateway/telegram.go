package gateway

import (
	"context"
	"time"

	"github.com/mymmrac/telego"
)

// TelegramGateway implements Gateway on top of the Telegram Bot API.
type TelegramGateway struct {
	bot *telego.Bot
}

// NewTelegramGateway creates a gateway backed by the given bot
func NewTelegramGateway(bot *telego.Bot) *TelegramGateway {
	return &TelegramGateway{bot: bot}
}

// GetMemberRole returns the member's role in the chat.
func (g *TelegramGateway) GetMemberRole(ctx context.Context, chatID, userID int64) (Role, error) {
	member, err := g.bot.GetChatMember(ctx, &telego.GetChatMemberParams{
		ChatID: telego.ChatID{ID: chatID},
		UserID: userID,
	})
	if err != nil {
		return RoleMember, &ActionError{Op: "get member role", Err: err}
	}

	switch member.MemberStatus() {
	case telego.MemberStatusCreator:
		return RoleCreator, nil
	case telego.MemberStatusAdministrator:
		return RoleAdministrator, nil
	default:
		return RoleMember, nil
	}
}

// Restrict removes the member's send permissions until the given time.
func (g *TelegramGateway) Restrict(ctx context.Context, chatID, userID int64, until time.Time) error {
	err := g.bot.RestrictChatMember(ctx, &telego.RestrictChatMemberParams{
		ChatID:      telego.ChatID{ID: chatID},
		UserID:      userID,
		Permissions: telego.ChatPermissions{},
		UntilDate:   until.Unix(),
	})
	if err != nil {
		return &ActionError{Op: "restrict", Err: err}
	}
	return nil
}

// Restore gives the member back the chat's default permissions. If the
// defaults cannot be fetched, full send permissions are granted.
func (g *TelegramGateway) Restore(ctx context.Context, chatID, userID int64) error {
	permissions := telego.ChatPermissions{
		CanSendMessages:       telego.ToPtr(true),
		CanSendAudios:         telego.ToPtr(true),
		CanSendDocuments:      telego.ToPtr(true),
		CanSendPhotos:         telego.ToPtr(true),
		CanSendVideos:         telego.ToPtr(true),
		CanSendVideoNotes:     telego.ToPtr(true),
		CanSendVoiceNotes:     telego.ToPtr(true),
		CanSendPolls:          telego.ToPtr(true),
		CanSendOtherMessages:  telego.ToPtr(true),
		CanAddWebPagePreviews: telego.ToPtr(true),
	}

	chatInfo, err := g.bot.GetChat(ctx, &telego.GetChatParams{
		ChatID: telego.ChatID{ID: chatID},
	})
	if err == nil && chatInfo.Permissions != nil {
		permissions = *chatInfo.Permissions
	}

	err = g.bot.RestrictChatMember(ctx, &telego.RestrictChatMemberParams{
		ChatID:      telego.ChatID{ID: chatID},
		UserID:      userID,
		Permissions: permissions,
	})
	if err != nil {
		return &ActionError{Op: "restore", Err: err}
	}
	return nil
}

// RemoveMember kicks the member from the chat without a permanent ban.
func (g *TelegramGateway) RemoveMember(ctx context.Context, chatID, userID int64) error {
	err := g.bot.BanChatMember(ctx, &telego.BanChatMemberParams{
		ChatID: telego.ChatID{ID: chatID},
		UserID: userID,
	})
	if err != nil {
		return &ActionError{Op: "remove member", Err: err}
	}

	// Lift the ban right away so the user can rejoin
	err = g.bot.UnbanChatMember(ctx, &telego.UnbanChatMemberParams{
		ChatID:       telego.ChatID{ID: chatID},
		UserID:       userID,
		OnlyIfBanned: true,
	})
	if err != nil {
		return &ActionError{Op: "remove member", Err: err}
	}
	return nil
}

// DeleteMessage deletes a message from the chat.
func (g *TelegramGateway) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	err := g.bot.DeleteMessage(ctx, &telego.DeleteMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		MessageID: messageID,
	})
	if err != nil {
		return &ActionError{Op: "delete message", Err: err}
	}
	return nil
}

// Reply sends a message in reply to another message in the chat.
func (g *TelegramGateway) Reply(ctx context.Context, chatID int64, messageID int, text string) error {
	_, err := g.bot.SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   text,
		ReplyParameters: &telego.ReplyParameters{
			MessageID: messageID,
		},
	})
	if err != nil {
		return &ActionError{Op: "reply", Err: err}
	}
	return nil
}

// DirectMessage sends a private message to the user.
func (g *TelegramGateway) DirectMessage(ctx context.Context, userID int64, text string) error {
	_, err := g.bot.SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: userID},
		Text:   text,
	})
	if err != nil {
		return &ActionError{Op: "direct message", Err: err}
	}
	return nil
}
