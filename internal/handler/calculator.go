package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// handleCalculation replies with the mutation keyboard for a number.
// Works in groups (reply) and private chats (new message).
func (h *Handler) handleCalculation(c tele.Context, digits string) error {
	number, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil
	}

	private := c.Chat().Type == tele.ChatPrivate
	lc := "ru"
	if private {
		lc = h.calc.LocaleFor(c.Sender().ID)
	}

	markup := h.mutationKeyboard(number, lc, private)
	text := h.locales.Get(lc, "calc.title", domain.FormatNumber(number))

	if private {
		return h.send(c, text, markup)
	}
	return c.Reply(text, markup, tele.ModeHTML)
}

// mutationKeyboard lays the categories out two per row, with a
// quick-recalculation button in private chats.
func (h *Handler) mutationKeyboard(number int64, lc string, private bool) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	row := tele.Row{}
	for i, m := range domain.Mutations {
		token := fmt.Sprintf("mut_%s_%d_%s", m.Emoji, number, lc)
		row = append(row, markup.Data(m.Emoji+" "+m.Name(lc), token))
		if (i+1)%2 == 0 {
			rows = append(rows, row)
			row = tele.Row{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	if private {
		rows = append(rows, markup.Row(markup.Data(h.locales.Get(lc, "calc.another"), "calc_another_"+lc)))
	}
	markup.Inline(rows...)
	return markup
}

// handleMutationSelect renders the four-tier result for the chosen
// category. Token: mut_<emoji>_<number>_<lang>.
func (h *Handler) handleMutationSelect(c tele.Context, data string) error {
	parts := strings.Split(data, "_")
	if len(parts) != 4 {
		return c.Respond(&tele.CallbackResponse{Text: h.text(c, "calc.bad_data")})
	}

	emoji := parts[1]
	number, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: h.text(c, "calc.bad_data")})
	}
	lc := parts[3]

	result := h.calc.Render(number, emoji, lc)
	if err := c.Edit(result, tele.ModeHTML); err != nil {
		if sendErr := h.send(c, result, nil); sendErr != nil {
			return sendErr
		}
	}
	return c.Respond(&tele.CallbackResponse{Text: h.locales.Get(lc, "calc.done")})
}

// handleCalcAnother prompts for a fresh number in private chats.
func (h *Handler) handleCalcAnother(c tele.Context, data string) error {
	lc := strings.TrimPrefix(data, "calc_another_")
	if lc != "ru" && lc != "en" {
		lc = "ru"
	}
	if err := h.send(c, h.locales.Get(lc, "calc.new_title"), nil); err != nil {
		return err
	}
	return c.Respond(&tele.CallbackResponse{Text: h.locales.Get(lc, "calc.enter_number")})
}

// handleMutationHelp lists every category with its tier percentages.
func (h *Handler) handleMutationHelp(c tele.Context) error {
	lc := h.calc.LocaleFor(c.Sender().ID)

	var b strings.Builder
	b.WriteString("🧮 <b>Build a Zoo</b>\n\n")
	for _, m := range domain.Mutations {
		percents := make([]string, 0, len(m.Percentages))
		for _, p := range m.Percentages {
			percents = append(percents, fmt.Sprintf("+%v%%", p))
		}
		fmt.Fprintf(&b, "%s %s (%s)\n", m.Emoji, m.Name(lc), strings.Join(percents, "/"))
	}
	b.WriteString("\n")
	for tier := 0; tier < 4; tier++ {
		if tier > 0 {
			b.WriteString(" → ")
		}
		b.WriteString(domain.TierEmojis[tier] + " " + domain.TierName(lc, tier))
	}
	return h.send(c, b.String(), nil)
}

// handlePing confirms the calculator is alive.
func (h *Handler) handlePing(c tele.Context) error {
	lc := h.calc.LocaleFor(c.Sender().ID)

	chatTitle := c.Chat().Title
	if chatTitle == "" {
		chatTitle = h.locales.Get(lc, "calc.private_chat")
	}
	sender := strings.TrimSpace(c.Sender().FirstName + " " + c.Sender().LastName)

	text := h.locales.Get(lc, "calc.pong",
		time.Now().Format("15:04:05"), chatTitle, sender)
	if c.Chat().Type == tele.ChatPrivate {
		return c.Send(text)
	}
	return c.Reply(text)
}
