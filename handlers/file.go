package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"protectedstorage/auth"
	"protectedstorage/constants"
	"protectedstorage/logger"
	"protectedstorage/metrics"
	"protectedstorage/middleware"
	"protectedstorage/notify"
	"protectedstorage/settings"
)

// FileHandler serves the single managed file: PUT replaces it, GET streams
// it back. Both operations pass through the password gate first.
type FileHandler struct {
	settings settings.Provider
	gate     *auth.Gate
	notifier *notify.Notifier
}

func NewFileHandler(provider settings.Provider, gate *auth.Gate, notifier *notify.Notifier) *FileHandler {
	return &FileHandler{
		settings: provider,
		gate:     gate,
		notifier: notifier,
	}
}

// RegisterRoutes registers the file transfer routes.
func (h *FileHandler) RegisterRoutes(router *httprouter.Router) {
	router.PUT("/file", h.PutFile)
	router.GET("/file", h.GetFile)
}

// PutFile replaces the managed file with the request body.
func (h *FileHandler) PutFile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !h.authenticate(w, r, auth.Upload) {
		return
	}

	filePath, ok := h.settings.Get(constants.SettingFilePath)
	if !ok {
		h.settingNotFound(w, constants.SettingFilePath)
		return
	}

	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			h.internalError(w, err, "Could not create storage directory")
			metrics.ObserveTransfer("upload", "error")
			return
		}
	}

	// Full overwrite: the old file is removed before the new content is
	// written, so a crash mid-upload leaves no file.
	if _, err := os.Stat(filePath); err == nil {
		if err := os.Remove(filePath); err != nil {
			h.internalError(w, err, "Could not remove existing file")
			metrics.ObserveTransfer("upload", "error")
			return
		}
	}

	f, err := os.Create(filePath)
	if err != nil {
		h.internalError(w, err, "Could not create file")
		metrics.ObserveTransfer("upload", "error")
		return
	}

	written, err := io.Copy(f, r.Body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		h.internalError(w, err, "Could not write file")
		metrics.ObserveTransfer("upload", "error")
		return
	}

	logger.Get().Info().
		Str("path", filePath).
		Int64("bytes", written).
		Str("ip", middleware.ClientIP(r)).
		Msg("File updated")
	metrics.ObserveTransfer("upload", "ok")

	h.notifier.Notify(constants.NotifFileUpdated, originOf(r))

	w.WriteHeader(http.StatusNoContent)
}

// GetFile streams the managed file to the client.
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !h.authenticate(w, r, auth.Download) {
		return
	}

	filePath, ok := h.settings.Get(constants.SettingFilePath)
	if !ok {
		h.settingNotFound(w, constants.SettingFilePath)
		return
	}

	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// 400 rather than 404: the deployed client surfaces the body
			// verbatim, and this status is part of the wire contract.
			http.Error(w, constants.MsgFileNotFound, http.StatusBadRequest)
			return
		}
		h.internalError(w, err, "Could not stat file")
		metrics.ObserveTransfer("download", "error")
		return
	}

	// Fires on access attempt, before streaming begins.
	h.notifier.Notify(constants.NotifServingFile, originOf(r))

	f, err := os.Open(filePath)
	if err != nil {
		h.internalError(w, err, "Could not open file")
		metrics.ObserveTransfer("download", "error")
		return
	}
	defer func() { _ = f.Close() }()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))

	if _, err := io.Copy(w, f); err != nil {
		// Headers are already out; nothing left to do but log.
		logger.Get().Error().Err(err).Str("path", filePath).Msg("Streaming file failed")
		metrics.ObserveTransfer("download", "error")
		return
	}

	logger.Get().Info().
		Str("path", filePath).
		Int64("bytes", info.Size()).
		Str("ip", middleware.ClientIP(r)).
		Msg("File served")
	metrics.ObserveTransfer("download", "ok")
}

// authenticate runs the password gate for the given direction. It writes the
// rejection response itself and reports whether the request may proceed.
// Missing-header and missing-setting checks stay outside the gate's critical
// section and never touch the lockout state.
func (h *FileHandler) authenticate(w http.ResponseWriter, r *http.Request, direction auth.Direction) bool {
	credentials := r.Header.Values("Authorization")
	if len(credentials) == 0 {
		http.Error(w, constants.MsgNoAuthHeader, http.StatusUnauthorized)
		return false
	}

	expected, ok := h.settings.Get(direction.PasswordKey())
	if !ok {
		h.settingNotFound(w, direction.PasswordKey())
		return false
	}

	denial := h.gate.Check(direction, credentials[0], expected)
	if denial == nil {
		return true
	}

	if denial.BadPassword {
		logger.Get().Warn().
			Str("direction", direction.String()).
			Str("ip", middleware.ClientIP(r)).
			Msg("Invalid password submitted")
		metrics.ObserveAuthFailure(direction.String())
		h.notifier.NotifyAsync(fmt.Sprintf(constants.NotifInvalidPassword, direction), originOf(r))
	}

	http.Error(w, denial.Message, denial.Status)
	return false
}

func (h *FileHandler) settingNotFound(w http.ResponseWriter, key string) {
	logger.Get().Error().Str("setting", key).Msg("Required setting not found")
	http.Error(w, fmt.Sprintf(constants.MsgSettingNotFound, key), http.StatusInternalServerError)
}

func (h *FileHandler) internalError(w http.ResponseWriter, err error, context string) {
	logger.Get().Error().Err(err).Msg(context)
	http.Error(w, constants.MsgInternalError, http.StatusInternalServerError)
}

// originOf builds the notification origin from the inbound request.
func originOf(r *http.Request) notify.Origin {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return notify.Origin{
		IP:  middleware.ClientIP(r),
		URL: scheme + "://" + r.Host + r.URL.RequestURI(),
	}
}
