package domain

import "time"

// RecordedFrame - одно входящее сообщение сервера в записи сессии.
type RecordedFrame struct {
	Offset time.Duration // от начала записи
	Data   []byte        // сообщение в кодеке записи
}

// Recording - запись входящего потока одной комнаты для воспроизведения без сервера.
type Recording struct {
	ID        string
	RoomID    string
	SessionID string
	Codec     string
	Timestamp int64 // unix, начало записи
	Frames    []RecordedFrame
}
