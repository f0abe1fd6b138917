package handler

// commandReply возвращает текст ответа на команду
func (h *Handler) commandReply(chatID int64, command, args string) string {
	switch command {
	case "start", "help":
		return h.helpMessage(chatID)

	// Команды объединения (админы)
	case "merge":
		return h.adminOnly(chatID, h.runMerge)
	case "groups":
		return h.adminOnly(chatID, h.previewGroups)
	case "lastmerge":
		return h.adminOnly(chatID, h.lastMerge)
	case "holidays":
		return h.adminOnly(chatID, func() string { return h.listHolidays(args) })

	default:
		return "❌ Неизвестная команда. Используйте /help для списка команд."
	}
}

func (h *Handler) adminOnly(chatID int64, fn func() string) string {
	if !h.isAdmin(chatID) {
		return "❌ Доступ запрещен. Эта команда только для администраторов."
	}
	return fn()
}

func (h *Handler) helpMessage(chatID int64) string {
	text := "🗓 Бот календаря отпусков\n\n" +
		"/help - список команд\n"

	if h.isAdmin(chatID) {
		text += "\nКоманды администратора:\n" +
			"/merge - объединить однодневные отпуска сейчас\n" +
			"/groups - показать группы, которые будут объединены\n" +
			"/lastmerge - итог последнего объединения\n" +
			"/holidays [год] - праздники за год\n"
	}

	return text
}
