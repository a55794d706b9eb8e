package network

import (
	"sync"

	"autobattler-client/pkg/api"
	"autobattler-client/pkg/logger"
)

// Broadcaster раздает входящие сообщения комнаты подписчикам (запись сессии, отладка).
// Доставка не блокирует транспорт: если канал подписчика полон, сообщение теряется.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: имя подписчика -> личный канал
	subscribers map[string]chan api.ServerMessage
	closed      bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerMessage),
	}
}

// Register создает личный канал подписчика. Старый канал с тем же именем закрывается.
func (b *Broadcaster) Register(name string) <-chan api.ServerMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan api.ServerMessage, 256)
	if b.closed {
		close(ch)
		return ch
	}
	if old, ok := b.subscribers[name]; ok {
		close(old)
	}
	b.subscribers[name] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[name]; ok {
		close(ch)
		delete(b.subscribers, name)
	}
}

// Broadcast отправляет сообщение всем подписчикам
func (b *Broadcaster) Broadcast(msg api.ServerMessage) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for name, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			logger.Log.WithField("subscriber", name).Warn("subscriber channel full, message dropped")
		}
	}
}

// Close закрывает все каналы. Дальнейшие Register сразу получают закрытый канал.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for name, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, name)
	}
	b.closed = true
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
