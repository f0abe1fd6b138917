package handler

import (
	"leave-calendar/internal/repository"
	"leave-calendar/internal/service"
	"leave-calendar/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Handler обрабатывает команды администратора в Telegram
type Handler struct {
	sender         telegram.Sender
	mergeJob       *service.MergeJob
	holidayService *service.HolidayService
	employeeRepo   repository.EmployeeRepository
	adminChatID    int64
}

func NewHandler(
	sender telegram.Sender,
	mergeJob *service.MergeJob,
	holidayService *service.HolidayService,
	employeeRepo repository.EmployeeRepository,
	adminChatID int64,
) *Handler {
	return &Handler{
		sender:         sender,
		mergeJob:       mergeJob,
		holidayService: holidayService,
		employeeRepo:   employeeRepo,
		adminChatID:    adminChatID,
	}
}

func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.Message == nil {
			continue
		}

		h.handleMessage(update.Message)
	}
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	if message.From != nil {
		logrus.Infof("[%s] %s", message.From.UserName, message.Text)
	}

	if !message.IsCommand() {
		return
	}

	reply := h.commandReply(message.Chat.ID, message.Command(), message.CommandArguments())
	h.send(message.Chat.ID, reply)
}

func (h *Handler) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.sender.Send(msg); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Warn("Failed to send telegram reply")
	}
}

// isAdmin проверяет права доступа
func (h *Handler) isAdmin(chatID int64) bool {
	return h.adminChatID != 0 && chatID == h.adminChatID
}
