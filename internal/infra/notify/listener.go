package notify

import (
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/svojko1/nechty-sub001/internal/service/waitqueue"
)

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute

	// буфер сглаживает всплески, пока трекер занят пересчетом
	notificationBuffer = 64
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// PQListener обертка над pq.Listener, транслирующая уведомления
// PostgreSQL NOTIFY в канал трекера
type PQListener struct {
	listener *pq.Listener
	out      chan waitqueue.Notification
	logger   Logger
	done     chan struct{}
}

// NewPQListener открывает выделенное соединение LISTEN/NOTIFY
func NewPQListener(dsn string, logger Logger) *PQListener {
	l := &PQListener{
		out:    make(chan waitqueue.Notification, notificationBuffer),
		logger: logger,
		done:   make(chan struct{}),
	}

	l.listener = pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval, func(event pq.ListenerEventType, err error) {
		if err != nil {
			logger.Error("pq listener event %d: %v", event, err)
		}
	})

	go l.forward()

	return l
}

// Listen подписывается на канал PostgreSQL
func (l *PQListener) Listen(channel string) error {
	if err := l.listener.Listen(channel); err != nil {
		return fmt.Errorf("notify: Listen %s: %w", channel, err)
	}
	return nil
}

// Notifications возвращает канал уведомлений для трекера
func (l *PQListener) Notifications() <-chan waitqueue.Notification {
	return l.out
}

// Close закрывает соединение и канал уведомлений
func (l *PQListener) Close() error {
	close(l.done)
	return l.listener.Close()
}

// forward перекладывает уведомления pq в канал трекера.
// nil означает переподключение - такие события пропускаются,
// следующий реальный NOTIFY все равно вызовет пересчет
func (l *PQListener) forward() {
	defer close(l.out)

	for {
		select {
		case <-l.done:
			return
		case n, ok := <-l.listener.Notify:
			if !ok {
				return
			}
			if n == nil {
				l.logger.Warn("pq listener reconnected, notifications may have been missed")
				continue
			}

			select {
			case l.out <- waitqueue.Notification{Channel: n.Channel, Payload: n.Extra}:
			case <-l.done:
				return
			}
		}
	}
}
