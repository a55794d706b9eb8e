package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"autobattler-client/internal/domain"
	"autobattler-client/pkg/api"
	"autobattler-client/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Playback воспроизводит запись как комнату: сообщения приходят с исходными
// интервалами (умноженными на speed), команды клиента только логируются.
type Playback struct {
	rec      *domain.Recording
	codec    api.Codec
	speed    float64
	messages chan api.ServerMessage

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	errMu sync.Mutex
	err   error

	log *logrus.Entry
}

// NewPlayback готовит воспроизведение. speed <= 0 - без пауз между кадрами.
func NewPlayback(rec *domain.Recording, speed float64) (*Playback, error) {
	codec, err := api.NewCodec(rec.Codec)
	if err != nil {
		return nil, fmt.Errorf("recording %s: %w", rec.ID, err)
	}
	return &Playback{
		rec:      rec,
		codec:    codec,
		speed:    speed,
		messages: make(chan api.ServerMessage),
		done:     make(chan struct{}),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "playback",
			"recording": rec.ID,
		}),
	}, nil
}

func (p *Playback) ID() string                         { return p.rec.RoomID }
func (p *Playback) SessionID() string                  { return p.rec.SessionID }
func (p *Playback) Messages() <-chan api.ServerMessage { return p.messages }

func (p *Playback) Err() error {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	return p.err
}

// Start запускает выдачу кадров в отдельной горутине.
func (p *Playback) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go func() {
		defer close(p.done)
		defer close(p.messages)
		if err := p.run(ctx); err != nil {
			p.errMu.Lock()
			p.err = err
			p.errMu.Unlock()
		}
	}()
}

func (p *Playback) run(ctx context.Context) error {
	var prev time.Duration
	for i, fr := range p.rec.Frames {
		if p.speed > 0 && fr.Offset > prev {
			wait := time.Duration(float64(fr.Offset-prev) * p.speed)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil
			}
		}
		prev = fr.Offset

		var msg api.ServerMessage
		if err := p.codec.Decode(fr.Data, &msg); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		select {
		case p.messages <- msg:
		case <-ctx.Done():
			return nil
		}
	}
	p.log.WithField("frames", len(p.rec.Frames)).Info("playback finished")
	return nil
}

// Send: в записи нет сервера, команды никуда не уходят.
func (p *Playback) Send(command string, payload any) error {
	p.log.WithFields(logrus.Fields{"command": command, "payload": payload}).Info("command ignored during playback")
	return nil
}

func (p *Playback) Leave() error {
	p.once.Do(func() {
		if p.cancel != nil {
			p.cancel()
		}
	})
	if p.cancel != nil {
		<-p.done
	}
	return nil
}
