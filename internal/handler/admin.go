package handler

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const userListPageSize = 10

// handleAdminPanel shows the admin action menu.
func (h *Handler) handleAdminPanel(c tele.Context) error {
	text := h.text(c, "admin.panel", c.Sender().ID, h.access.Count())

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data("📊 Статистика", "admin_stats"),
			markup.Data("📋 Список", "ulist_1"),
		),
		markup.Row(
			markup.Data("📢 Рассылка", "admin_broadcast"),
			markup.Data("💬 Чат", "admin_chat"),
		),
		markup.Row(
			markup.Data("🚫 Исключения", "admin_exceptions"),
			markup.Data("💾 Бэкапы", "admin_backup"),
		),
		markup.Row(
			markup.Data("ℹ️ О боте", "admin_about"),
			markup.Data("🔄 Обновить", "admin_refresh"),
		),
	)
	return h.editOrSend(c, text, markup)
}

// handleStats renders bot statistics.
func (h *Handler) handleStats(c tele.Context) error {
	summary, err := h.stats.Summary()
	if err != nil {
		h.logger.Error("Failed to load statistics", zap.Error(err))
		return h.alert(c, h.text(c, "common.error"))
	}

	var fruits strings.Builder
	if len(summary.FruitStats) == 0 {
		fruits.WriteString("  • —\n")
	}
	for fruit, count := range summary.FruitStats {
		fmt.Fprintf(&fruits, "  • %s: %d\n", fruit, count)
	}

	text := h.text(c, "admin.stats",
		summary.TotalUsers,
		summary.ActiveSubscribers,
		fruits.String(),
		summary.FreeTotems,
		summary.PaidTotems,
	)
	text += h.text(c, "admin.stats_recent", summary.RecentUsers)
	text += h.text(c, "admin.stats_ratio",
		summary.ActiveSubscribers, summary.TotalUsers, summary.SubscribedRatio())

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data("🔄 Обновить", "admin_stats"),
			markup.Data("📋 Список", "ulist_1"),
		),
		markup.Row(markup.Data("🛠️ Админ-панель", "admin_panel")),
	)
	return h.editOrSend(c, text, markup)
}

// handleUserList renders one page of the user list with profile links.
func (h *Handler) handleUserList(c tele.Context, page int) error {
	users, err := h.userRepo.GetAll()
	if err != nil {
		h.logger.Error("Failed to load users", zap.Error(err))
		return h.alert(c, h.text(c, "common.error"))
	}
	if len(users) == 0 {
		return h.editOrSend(c, h.text(c, "admin.userlist_empty"), nil)
	}

	totalPages := (len(users) + userListPageSize - 1) / userListPageSize
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	offset := (page - 1) * userListPageSize
	pageUsers := users[offset:min(offset+userListPageSize, len(users))]

	var b strings.Builder
	b.WriteString(h.text(c, "admin.userlist_header", len(users)))
	for i, u := range pageUsers {
		status := "❌"
		if u.IsSubscribed {
			status = "✅"
		}
		var link string
		if u.Username != "" {
			link = fmt.Sprintf("<a href='https://t.me/%s'>@%s</a>", u.Username, u.Username)
		} else {
			link = fmt.Sprintf("<a href='tg://user?id=%d'>%d</a>", u.ID, u.ID)
		}
		fmt.Fprintf(&b, "%d. %s - %s\n", offset+i+1, link, status)
	}
	if rest := len(users) - offset - len(pageUsers); rest > 0 {
		b.WriteString(h.text(c, "admin.userlist_more", rest))
	}

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	if totalPages > 1 {
		nav := tele.Row{}
		if page > 1 {
			nav = append(nav, markup.Data("⬅️", "ulist_"+strconv.Itoa(page-1)))
		}
		if page < totalPages {
			nav = append(nav, markup.Data("➡️", "ulist_"+strconv.Itoa(page+1)))
		}
		rows = append(rows, nav)
	}
	rows = append(rows,
		markup.Row(markup.Data("📢 Рассылка", "admin_broadcast")),
		markup.Row(markup.Data("🛠️ Админ-панель", "admin_panel")),
	)
	markup.Inline(rows...)

	return h.editOrSend(c, b.String(), markup)
}

// handleAbout shows bot info.
func (h *Handler) handleAbout(c tele.Context) error {
	text := h.text(c, "admin.about", c.Sender().ID, h.access.Count())
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("🛠️ Админ-панель", "admin_panel")))
	return h.editOrSend(c, text, markup)
}

// handleAdminHelp lists admin commands.
func (h *Handler) handleAdminHelp(c tele.Context) error {
	help := "🛠️ <b>Админ-команды:</b>\n\n" +
		"<b>/admin</b> - 🛠️ Панель администратора\n" +
		"<b>/stats</b> - 📊 Статистика бота\n" +
		"<b>/broadcast</b> - 📢 Рассылка сообщений\n" +
		"<b>/chat</b> - 💬 Чат с пользователем\n" +
		"<b>/stopchat</b> - 💬 Завершить чат\n" +
		"<b>/exceptions</b> - 🚫 Список исключений\n" +
		"<b>/backup</b> - 💾 Резервные копии\n" +
		"<b>/cancel</b> - ❌ Отменить операцию\n" +
		"<b>/help_admin</b> - ❓ Эта справка\n\n" +
		fmt.Sprintf("<b>👑 Администраторы:</b> %d", h.access.Count())
	return h.send(c, help, nil)
}
