package storage

import (
	"fmt"
	"sync"
	"time"

	"autobattler-client/internal/domain"
	"autobattler-client/pkg/api"
	"autobattler-client/pkg/logger"
	"autobattler-client/pkg/utils"
)

// Recorder накапливает входящие сообщения комнаты в запись сессии.
type Recorder struct {
	mu    sync.Mutex
	codec api.Codec
	start time.Time
	now   func() time.Time
	rec   domain.Recording
}

func NewRecorder(roomID, sessionID string, codec api.Codec) *Recorder {
	start := time.Now()
	return &Recorder{
		codec: codec,
		start: start,
		now:   time.Now,
		rec: domain.Recording{
			ID:        utils.GenerateID(),
			RoomID:    roomID,
			SessionID: sessionID,
			Codec:     codec.Name(),
			Timestamp: start.Unix(),
		},
	}
}

// Record добавляет сообщение с отметкой времени от начала записи.
func (r *Recorder) Record(msg api.ServerMessage) error {
	data, err := r.codec.Encode(msg)
	if err != nil {
		return fmt.Errorf("encode %s: %w", msg.Type, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rec.Frames = append(r.rec.Frames, domain.RecordedFrame{
		Offset: r.now().Sub(r.start),
		Data:   data,
	})
	return nil
}

// Consume записывает сообщения из канала, пока он не закроется.
func (r *Recorder) Consume(messages <-chan api.ServerMessage) {
	for msg := range messages {
		if err := r.Record(msg); err != nil {
			logger.Log.WithError(err).Warn("recorder: message skipped")
		}
	}
}

// Recording возвращает копию накопленной записи.
func (r *Recorder) Recording() *domain.Recording {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.rec
	out.Frames = append([]domain.RecordedFrame(nil), r.rec.Frames...)
	return &out
}
