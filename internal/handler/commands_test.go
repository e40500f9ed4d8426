package handler

import (
	"testing"

	"github.com/mymmrac/telego"
)

func TestIsCommand(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		command string
		want    bool
	}{
		{"plain command", "/mute", "mute", true},
		{"command with bot mention", "/mute@moderator_bot", "mute", true},
		{"command with arguments", "/kick some reason", "kick", true},
		{"mention with arguments", "/kick@moderator_bot some reason", "kick", true},
		{"different command", "/unmute", "mute", false},
		{"prefix is not a match", "/muted", "mute", false},
		{"plain text", "привет", "mute", false},
		{"empty text", "", "mute", false},
		{"slash mid-text", "a /mute", "mute", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isCommand(tt.text, tt.command); got != tt.want {
				t.Errorf("isCommand(%q, %q) = %v, want %v", tt.text, tt.command, got, tt.want)
			}
		})
	}
}

func TestReplyTarget(t *testing.T) {
	from := &telego.User{ID: 456, Username: "test_user"}

	target := replyTarget(telego.Message{ReplyToMessage: &telego.Message{From: from}})
	if target == nil {
		t.Fatal("replyTarget returned nil for a reply message")
	}
	if target.UserID != 456 || target.Username != "test_user" {
		t.Errorf("target = %+v", target)
	}

	if replyTarget(telego.Message{}) != nil {
		t.Error("replyTarget must be nil without a replied-to message")
	}
	if replyTarget(telego.Message{ReplyToMessage: &telego.Message{}}) != nil {
		t.Error("replyTarget must be nil when the replied-to message has no sender")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user *telego.User
		want string
	}{
		{"username preferred", &telego.User{Username: "test_user", FirstName: "Иван"}, "test_user"},
		{"first name only", &telego.User{FirstName: "Иван"}, "Иван"},
		{"first and last name", &telego.User{FirstName: "Иван", LastName: "Петров"}, "Иван Петров"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayName(tt.user); got != tt.want {
				t.Errorf("displayName = %q, want %q", got, tt.want)
			}
		})
	}
}
