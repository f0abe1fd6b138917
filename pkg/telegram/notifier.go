package telegram

import (
	"errors"
	"fmt"
	"leave-calendar/internal/models"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const notifyMaxElapsed = 30 * time.Second

// maxListedFailures сколько неудачных групп перечислять в сообщении
const maxListedFailures = 10

// Sender часть tgbotapi.BotAPI, нужная для отправки сообщений
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// SummaryNotifier отправляет итог прохода объединения в чат администратора
type SummaryNotifier struct {
	sender     Sender
	chatID     int64
	newBackoff func() backoff.BackOff
	logger     *logrus.Logger
}

func NewSummaryNotifier(sender Sender, chatID int64) *SummaryNotifier {
	return &SummaryNotifier{
		sender: sender,
		chatID: chatID,
		newBackoff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.MaxElapsedTime = notifyMaxElapsed
			return bo
		},
		logger: logrus.New(),
	}
}

func (n *SummaryNotifier) NotifyMergeSummary(summary *models.MergeSummary) error {
	if summary == nil || n.chatID == 0 {
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, FormatMergeSummary(summary))

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		_, err := n.sender.Send(msg)
		if err == nil {
			return nil
		}
		// Ошибки запроса (400/403) повторять бессмысленно
		var tgErr *tgbotapi.Error
		if errors.As(err, &tgErr) && tgErr.Code >= 400 && tgErr.Code < 500 && tgErr.Code != 429 {
			return backoff.Permanent(err)
		}
		n.logger.WithError(err).WithField("attempt", attempt).Warn("Failed to send merge summary, retrying")
		return err
	}, n.newBackoff())
}

// FormatMergeSummary форматирует итог для отображения
func FormatMergeSummary(summary *models.MergeSummary) string {
	var b strings.Builder

	b.WriteString("🗓 Объединение однодневных отпусков\n\n")
	fmt.Fprintf(&b, "Групп обработано: %d\n", summary.Groups)
	fmt.Fprintf(&b, "✅ Успешно: %d\n", summary.Succeeded)
	fmt.Fprintf(&b, "❌ С ошибкой: %d\n", summary.Failed)
	if summary.PartialFailures > 0 {
		fmt.Fprintf(&b, "⚠️ Частично (нужна проверка): %d\n", summary.PartialFailures)
	}
	fmt.Fprintf(&b, "Событий объединено: %d\n", summary.TotalEventsConsolidated)

	listed := 0
	for _, r := range summary.Results {
		if r.Success {
			continue
		}
		if listed == 0 {
			b.WriteString("\nОшибки:\n")
		}
		if listed == maxListedFailures {
			b.WriteString("• ...\n")
			break
		}
		fmt.Fprintf(&b, "• %s / %s %s..%s: %s\n",
			r.EmployeeID, r.LeaveType,
			r.StartDate.Format(models.DateLayout), r.EndDate.Format(models.DateLayout),
			r.Error)
		listed++
	}

	return b.String()
}
