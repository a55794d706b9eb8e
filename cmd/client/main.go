package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"autobattler-client/internal/client"
	"autobattler-client/internal/config"
	"autobattler-client/internal/domain"
	"autobattler-client/internal/infrastructure/storage"
	"autobattler-client/internal/network"
	"autobattler-client/internal/scene"
	"autobattler-client/internal/server"
	"autobattler-client/internal/version"
	"autobattler-client/pkg/api"
	"autobattler-client/pkg/logger"

	"golang.org/x/sync/errgroup"
)

func main() {
	// 1. Конфигурация: .env и окружение, флаги поверх
	var (
		envFile    string
		endpoint   string
		room       string
		codecName  string
		recordDir  string
		debugAddr  string
		replayPath string
		speed      float64
	)
	flag.StringVar(&envFile, "env", ".env", "Path to env file")
	flag.StringVar(&endpoint, "endpoint", "", "Room server endpoint (ws:// or wss://)")
	flag.StringVar(&room, "room", "", "Room to join or create")
	flag.StringVar(&codecName, "codec", "", "Frame codec: json or msgpack")
	flag.StringVar(&recordDir, "record", "", "Directory to save the session recording to")
	flag.StringVar(&debugAddr, "debug", "", "Debug HTTP address, e.g. :6060")
	flag.StringVar(&replayPath, "replay", "", "Path to .abrp recording to play back instead of connecting")
	flag.Float64Var(&speed, "speed", 1, "Playback delay multiplier (0 = no delays)")
	flag.Parse()

	cfg, err := config.Load(envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	override(&cfg.Endpoint, endpoint)
	override(&cfg.Room, room)
	override(&cfg.Codec, codecName)
	override(&cfg.RecordDir, recordDir)
	override(&cfg.DebugAddr, debugAddr)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid config:", err)
		os.Exit(2)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logger.Log.Info("Starting autobattler client...")
	logger.Log.Info(version.String())

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if replayPath != "" {
		logger.Log.Info("💿 Mode: Replay")
		err = runReplay(ctx, cfg, replayPath, speed)
	} else {
		err = runLive(ctx, cfg)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.WithError(err).Fatal("client stopped")
	}
	logger.Log.Info("Done.")
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// runLive подключается к комнате и крутит контейнер до выхода из игры.
func runLive(ctx context.Context, cfg config.Config) error {
	codec, err := api.NewCodec(cfg.Codec)
	if err != nil {
		return err
	}
	cli := network.NewClient(cfg.Endpoint, codec)

	// Запись: подписка ставится до запуска насосов первой комнаты
	var (
		recorder *storage.Recorder
		recDone  = make(chan struct{})
		once     sync.Once
	)
	if cfg.RecordDir != "" {
		cli.OnJoin = func(r *network.Room) {
			once.Do(func() {
				recorder = storage.NewRecorder(r.ID(), r.SessionID(), codec)
				tap := r.Tap("recorder")
				go func() {
					defer close(recDone)
					recorder.Consume(tap)
				}()
			})
		}
	}

	joinCtx, cancel := context.WithTimeout(ctx, cfg.JoinTimeout)
	defer cancel()
	room, err := cli.JoinOrCreate(joinCtx, cfg.Room)
	if err != nil {
		return err
	}

	joiner := client.JoinerFunc(func(ctx context.Context, name string) (client.Room, error) {
		r, err := cli.JoinOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		return r, nil
	})

	runErr := play(ctx, cfg, room, joiner)
	_ = room.Leave()

	if recorder != nil {
		<-recDone
		if err := saveRecording(cfg.RecordDir, recorder.Recording()); err != nil {
			logger.Log.WithError(err).Error("failed to save recording")
		}
	}
	return runErr
}

func saveRecording(dir string, rec *domain.Recording) error {
	svc, err := storage.NewRecordingService(dir)
	if err != nil {
		return err
	}
	path, err := svc.Save(rec)
	if err != nil {
		return err
	}
	logger.Log.WithField("frames", len(rec.Frames)).Infof("recording saved to %s", path)
	return nil
}

// runReplay проигрывает запись через тот же контейнер и сцену.
func runReplay(ctx context.Context, cfg config.Config, path string, speed float64) error {
	svc, err := storage.NewRecordingService(filepath.Dir(path))
	if err != nil {
		return err
	}
	rec, err := svc.Load(path)
	if err != nil {
		return fmt.Errorf("load recording: %w", err)
	}
	pb, err := storage.NewPlayback(rec, speed)
	if err != nil {
		return err
	}
	pb.Start()
	defer pb.Leave()

	noLobby := client.JoinerFunc(func(context.Context, string) (client.Room, error) {
		return nil, errors.New("lobby is unavailable during playback")
	})
	return play(ctx, cfg, pb, noLobby)
}

// play собирает сцену и контейнер, читает намерения из stdin и поднимает отладочный HTTP.
func play(ctx context.Context, cfg config.Config, room client.Room, joiner client.Joiner) error {
	sc := scene.New()
	sc.Build()

	container := client.NewGameContainer(room, joiner, sc, client.Options{
		JoinTimeout: cfg.JoinTimeout,
		OnLobby: func(lobby client.Room) {
			logger.Log.WithField("room", lobby.ID()).Info("back in lobby")
			_ = lobby.Leave()
		},
	})

	g, gctx := errgroup.WithContext(ctx)
	runCtx, stopAux := context.WithCancel(gctx)

	g.Go(func() error {
		defer stopAux()
		return container.Run(gctx)
	})

	// Консоль: stdin не прерывается контекстом, поэтому горутина не входит в группу
	go func() {
		if err := client.ReadIntents(runCtx, os.Stdin, container); err != nil && !errors.Is(err, client.ErrStopped) && !errors.Is(err, context.Canceled) {
			logger.Log.WithError(err).Warn("console stopped")
		}
	}()

	if cfg.DebugAddr != "" {
		srv := server.New(cfg.DebugAddr, server.NewDebugHandler(container, sc))
		g.Go(func() error { return srv.Run(runCtx) })
	}

	return g.Wait()
}
