package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"autobattler-client/internal/domain"
	"autobattler-client/internal/infrastructure/storage"
	"autobattler-client/pkg/api"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "info":
		if len(os.Args) < 3 {
			fmt.Println("Usage: recinfo info <file.abrp>")
			return
		}
		rec, err := load(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid recording: %v\n", err)
			os.Exit(1)
		}
		var duration time.Duration
		if n := len(rec.Frames); n > 0 {
			duration = rec.Frames[n-1].Offset
		}
		fmt.Printf("id:       %s\n", rec.ID)
		fmt.Printf("room:     %s\n", rec.RoomID)
		fmt.Printf("session:  %s\n", rec.SessionID)
		fmt.Printf("codec:    %s\n", rec.Codec)
		fmt.Printf("started:  %s\n", time.Unix(rec.Timestamp, 0).Format(time.RFC3339))
		fmt.Printf("frames:   %d\n", len(rec.Frames))
		fmt.Printf("duration: %s\n", duration)
	case "frames":
		if len(os.Args) < 3 {
			fmt.Println("Usage: recinfo frames <file.abrp>")
			return
		}
		rec, err := load(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid recording: %v\n", err)
			os.Exit(1)
		}
		if err := printFrames(rec); err != nil {
			fmt.Printf("Invalid frame: %v\n", err)
			os.Exit(1)
		}
	case "format":
		if len(os.Args) < 3 {
			fmt.Println("Usage: recinfo format <unix_timestamp>")
			return
		}
		ts, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Invalid timestamp: %v\n", err)
			return
		}
		fmt.Println(time.Unix(ts, 0).Format(time.RFC3339))
	default:
		printHelp()
	}
}

func load(path string) (*domain.Recording, error) {
	svc, err := storage.NewRecordingService(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	return svc.Load(path)
}

func printFrames(rec *domain.Recording) error {
	codec, err := api.NewCodec(rec.Codec)
	if err != nil {
		return err
	}
	for i, fr := range rec.Frames {
		var msg api.ServerMessage
		if err := codec.Decode(fr.Data, &msg); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		switch msg.Type {
		case api.TypeMessage:
			fmt.Printf("%4d %10s %-8s %s\n", i, fr.Offset, msg.Type, msg.Name)
		default:
			fmt.Printf("%4d %10s %-8s seq=%d patches=%d\n", i, fr.Offset, msg.Type, msg.Seq, len(msg.Patches))
		}
	}
	return nil
}

func printHelp() {
	fmt.Println(`Recording Utility - просмотр записей сессий (.abrp)
Commands:
  info <file>            - заголовок записи: комната, сессия, кодек, длительность
  frames <file>          - список кадров: смещение, тип, seq
  format <timestamp>     - преобразовать Unix время в читаемый формат`)
}
