package handler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/andrey2025-maker/SelenaZoo/internal/backup"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const backupListLimit = 10

// handleBackupMenu shows the backup actions.
func (h *Handler) handleBackupMenu(c tele.Context) error {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data("📦 SQL", "bkp_create"),
			markup.Data("🗜 SQL+GZ", "bkp_gz"),
			markup.Data("📑 JSON", "bkp_json"),
		),
		markup.Row(markup.Data("📋 Список", "bkp_list")),
		markup.Row(markup.Data("🛠️ Админ-панель", "admin_panel")),
	)
	return h.editOrSend(c, h.text(c, "backup.menu"), markup)
}

// handleBackupCreate produces an artifact and streams it back.
func (h *Handler) handleBackupCreate(c tele.Context, kind string) error {
	var (
		path string
		err  error
	)
	switch kind {
	case "json":
		path, err = h.backups.CreateJSONBackup()
	case "gz":
		path, err = h.backups.CreateBackup(true)
	default:
		path, err = h.backups.CreateBackup(false)
	}
	if err != nil {
		h.logger.Error("Backup creation failed", zap.Error(err))
		return h.alert(c, h.text(c, "backup.failed", err.Error()))
	}

	if c.Callback() != nil {
		_ = c.Respond(&tele.CallbackResponse{Text: h.text(c, "backup.created")})
	}

	_, info, err := h.backups.Resolve(filepath.Base(path))
	if err != nil {
		h.logger.Error("Backup vanished after creation", zap.String("path", path), zap.Error(err))
		return c.Send(h.text(c, "backup.missing", path))
	}
	return h.streamArtifact(c, path, info)
}

// handleBackupList shows the most recent artifacts with download
// buttons, bounded to the first entries.
func (h *Handler) handleBackupList(c tele.Context) error {
	list, err := h.backups.ListBackups()
	if err != nil {
		h.logger.Error("Failed to list backups", zap.Error(err))
		return h.alert(c, h.text(c, "common.error"))
	}
	if len(list) == 0 {
		return h.editOrSend(c, h.text(c, "backup.list_empty"), nil)
	}

	shown := list[:min(backupListLimit, len(list))]

	var b strings.Builder
	b.WriteString(h.text(c, "backup.list_header", len(shown), len(list)))
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for i, info := range shown {
		fmt.Fprintf(&b, "%d. <code>%s</code> — %s, %s\n",
			i+1, info.Filename, humanSize(info.Size), info.Modified.Format("02.01.2006 15:04"))
		rows = append(rows, markup.Row(
			markup.Data(fmt.Sprintf("⬇️ %d", i+1), "bkp_get_"+info.Filename),
		))
	}
	rows = append(rows, markup.Row(markup.Data("💾 Меню", "admin_backup")))
	markup.Inline(rows...)

	return h.editOrSend(c, b.String(), markup)
}

// handleBackupGet re-resolves a listed artifact by filename and
// streams it; the file may have been removed since listing.
func (h *Handler) handleBackupGet(c tele.Context, filename string) error {
	path, info, err := h.backups.Resolve(filename)
	if err != nil {
		return h.alert(c, h.text(c, "backup.missing", filename))
	}
	if c.Callback() != nil {
		_ = c.Respond()
	}
	return h.streamArtifact(c, path, info)
}

// streamArtifact sends the artifact as a document unless it exceeds
// the transport ceiling, in which case only its local path is
// reported. The size is re-checked at send time.
func (h *Handler) streamArtifact(c tele.Context, path string, info backup.Info) error {
	if info.Size > h.maxArtifactBytes {
		return h.send(c, h.text(c, "backup.too_large", humanSize(h.maxArtifactBytes), path), nil)
	}

	doc := &tele.Document{
		File:     tele.FromDisk(path),
		FileName: info.Filename,
		Caption: h.text(c, "backup.caption",
			info.Filename, info.Type, humanSize(info.Size),
			info.Modified.Format("02.01.2006 15:04:05")),
	}
	return c.Send(doc)
}

// humanSize renders a byte count for captions.
func humanSize(size int64) string {
	const unit = 1024
	switch {
	case size >= unit*unit:
		return fmt.Sprintf("%.1f MB", float64(size)/(unit*unit))
	case size >= unit:
		return fmt.Sprintf("%.1f KB", float64(size)/unit)
	default:
		return fmt.Sprintf("%d B", size)
	}
}
