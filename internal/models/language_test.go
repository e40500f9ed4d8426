package models

import (
	"fmt"
	"testing"
)

// The Russian reply texts are a compatibility contract; they must stay
// byte-for-byte identical.
func TestRussianReplyTexts(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"admin_mute_refusal", "Невозможно замутить администратора."},
		{"admin_kick_refusal", "Невозможно кикнуть администратора."},
		{"kick_confirmation", "Пользователь %s был кикнут."},
		{"kick_no_reply", "Эта команда должна быть использована в ответ на сообщение пользователя, которого вы хотите кикнуть."},
		{"unmute_confirmation", "Пользователь %s размучен."},
		{"unmute_no_reply", "Эта команда должна быть использована в ответ на сообщение пользователя, которого вы хотите размутить."},
		{"toxic_message_removed", "Ваше сообщение было удалено, так как оно определено как токсичное. Пожалуйста, соблюдайте правила общения."},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := GetTranslation(LangRussian, tt.key); got != tt.want {
				t.Errorf("GetTranslation(ru, %s) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestFormattedReplyTexts(t *testing.T) {
	mute := fmt.Sprintf(GetTranslation(LangRussian, "mute_confirmation"), "test_user", 300)
	if mute != "Пользователь test_user замучен на 300 секунд." {
		t.Errorf("mute confirmation = %q", mute)
	}

	kick := fmt.Sprintf(GetTranslation(LangRussian, "kick_confirmation"), "test_user")
	if kick != "Пользователь test_user был кикнут." {
		t.Errorf("kick confirmation = %q", kick)
	}
}

func TestGetTranslationFallback(t *testing.T) {
	// Unknown language falls back to Russian.
	if got := GetTranslation("de", "admin_mute_refusal"); got != Translations[LangRussian]["admin_mute_refusal"] {
		t.Errorf("fallback for unknown language = %q", got)
	}

	// Unknown key falls back to the key itself.
	if got := GetTranslation(LangRussian, "no_such_key"); got != "no_such_key" {
		t.Errorf("fallback for unknown key = %q", got)
	}
}

func TestEnglishCoversRussianKeys(t *testing.T) {
	for key := range Translations[LangRussian] {
		if _, ok := Translations[LangEnglish][key]; !ok {
			t.Errorf("english translation missing key %q", key)
		}
	}
}
