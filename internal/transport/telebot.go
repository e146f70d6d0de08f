package transport

import (
	"strconv"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// TeleMessenger is the telebot-backed Messenger.
type TeleMessenger struct {
	bot *tele.Bot
}

// NewTeleMessenger wraps a bot instance.
func NewTeleMessenger(bot *tele.Bot) *TeleMessenger {
	return &TeleMessenger{bot: bot}
}

// SendText delivers an HTML-formatted text message.
func (m *TeleMessenger) SendText(chatID int64, text string) error {
	_, err := m.bot.Send(tele.ChatID(chatID), text, tele.ModeHTML)
	return err
}

// Copy re-sends a referenced message to another chat without the
// forwarded-from header.
func (m *TeleMessenger) Copy(chatID int64, ref domain.MessageRef) error {
	stored := tele.StoredMessage{
		MessageID: strconv.Itoa(ref.MessageID),
		ChatID:    ref.ChatID,
	}
	_, err := m.bot.Copy(tele.ChatID(chatID), stored)
	return err
}
