package models

// Language constants
const (
	LangRussian = "ru"
	LangEnglish = "en"
)

// Translation is a map of message keys to translated text
type Translation map[string]string

// Translations stores all language translations. Russian is the reference
// language: its reply texts are part of the bot's compatibility contract and
// must not be reworded.
var Translations = map[string]Translation{
	LangRussian: {
		"welcome": "Привет! Я - бот для удаления токсичных комментариев и модерации сервера. Напиши /help, чтобы узнать больше.",
		"help": "Я - бот для удаления токсичных комментариев и модерации сервера.\n" +
			"Я автоматически удаляю токсичные комментарии. Если человек ведет себя слишком токсично, я временно лишаю его возможности писать в чат.\n" +
			"Все мои команды работают в ответ на сообщение пользователя, поэтому для ручной модерации требуется ввести команду в ответ на сообщение пользователя.\n" +
			"Список команд: /mute - замутить пользователя, /unmute - размутить пользователя, /kick - кикнуть пользователя",

		"admin_mute_refusal": "Невозможно замутить администратора.",
		"mute_confirmation":  "Пользователь %s замучен на %d секунд.",

		"admin_kick_refusal": "Невозможно кикнуть администратора.",
		"kick_confirmation":  "Пользователь %s был кикнут.",
		"kick_no_reply":      "Эта команда должна быть использована в ответ на сообщение пользователя, которого вы хотите кикнуть.",

		"unmute_confirmation": "Пользователь %s размучен.",
		"unmute_no_reply":     "Эта команда должна быть использована в ответ на сообщение пользователя, которого вы хотите размутить.",

		"toxic_message_removed": "Ваше сообщение было удалено, так как оно определено как токсичное. Пожалуйста, соблюдайте правила общения.",

		// Command descriptions for the Telegram command menu
		"cmd_desc_help":   "Показать справку",
		"cmd_desc_mute":   "Замутить пользователя",
		"cmd_desc_unmute": "Размутить пользователя",
		"cmd_desc_kick":   "Кикнуть пользователя",
	},
	LangEnglish: {
		"welcome": "Hi! I am a bot that removes toxic comments and moderates the server. Send /help to learn more.",
		"help": "I am a bot that removes toxic comments and moderates the server.\n" +
			"I automatically delete toxic comments. If someone behaves too toxically, I temporarily take away their ability to write in the chat.\n" +
			"All my commands work in reply to a user's message, so manual moderation requires sending the command in reply to the user's message.\n" +
			"Commands: /mute - mute a user, /unmute - unmute a user, /kick - kick a user",

		"admin_mute_refusal": "Cannot mute an administrator.",
		"mute_confirmation":  "User %s muted for %d seconds.",

		"admin_kick_refusal": "Cannot kick an administrator.",
		"kick_confirmation":  "User %s was kicked.",
		"kick_no_reply":      "This command must be used in reply to a message of the user you want to kick.",

		"unmute_confirmation": "User %s unmuted.",
		"unmute_no_reply":     "This command must be used in reply to a message of the user you want to unmute.",

		"toxic_message_removed": "Your message was removed because it was classified as toxic. Please follow the chat rules.",

		"cmd_desc_help":   "Show help",
		"cmd_desc_mute":   "Mute a user",
		"cmd_desc_unmute": "Unmute a user",
		"cmd_desc_kick":   "Kick a user",
	},
}

// GetTranslation returns the translated text for the given language and key.
// Falls back to Russian, then to the key itself.
func GetTranslation(language, key string) string {
	if translation, ok := Translations[language]; ok {
		if text, ok := translation[key]; ok {
			return text
		}
	}

	if text, ok := Translations[LangRussian][key]; ok {
		return text
	}

	return key
}
