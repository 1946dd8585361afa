package http

import (
	"context"
	"net/http"

	"github.com/Amansahu83/clothstore-web/internal/notify"
)

// Notifier is the slice of the poller the notification routes need.
type Notifier interface {
	Feed() []notify.Notification
	Unread() int
	Clear()
	CheckNow(ctx context.Context) error
}

type NotificationsHandler struct {
	notifier Notifier
}

func NewNotificationsHandler(notifier Notifier) *NotificationsHandler {
	return &NotificationsHandler{notifier: notifier}
}

// FeedView pairs the bounded feed with its unread count.
type FeedView struct {
	Notifications []notify.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

func (h *NotificationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	feed := h.notifier.Feed()
	if feed == nil {
		feed = []notify.Notification{}
	}
	respondJSON(w, http.StatusOK, FeedView{Notifications: feed, UnreadCount: h.notifier.Unread()})
}

// Check runs a poll immediately instead of waiting for the next tick. It
// shares the poller's single flight, so racing the timer is harmless.
func (h *NotificationsHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.notifier.CheckNow(r.Context()); err != nil {
		handleBackendError(w, err)
		return
	}
	h.Get(w, r)
}

func (h *NotificationsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.notifier.Clear()
	respondJSON(w, http.StatusNoContent, nil)
}
