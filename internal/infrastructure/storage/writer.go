package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"autobattler-client/internal/domain"
)

const (
	MagicHeader string = `ABRP` // 4 байта
	Version1    uint32 = 1
	// FileExt - расширение файлов записи
	FileExt = ".abrp"
)

// RecordingFileHeader - точное представление заголовка файла.
// binary.Write пишет его целиком: тут только массивы и числа.
type RecordingFileHeader struct {
	Magic      [4]byte // 4 байта
	Version    uint32  // 4 байта
	Timestamp  int64   // 8 байт
	FrameCount int32   // 4 байта
	// Длины строк, которые идут сразу за заголовком в этом же порядке
	IDLen      uint8
	RoomIDLen  uint8
	SessionLen uint8
	CodecLen   uint8
}

// FrameHeader - заголовок каждого кадра.
type FrameHeader struct {
	OffsetMs uint32 // 4
	DataLen  uint32 // 4
}

type RecordingService struct {
	SaveDir string
}

func NewRecordingService(dir string) (*RecordingService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create recording dir: %w", err)
	}
	return &RecordingService{SaveDir: dir}, nil
}

// Save пишет запись в SaveDir и возвращает путь к файлу.
func (s *RecordingService) Save(rec *domain.Recording) (string, error) {
	stamp := time.Unix(rec.Timestamp, 0).UTC().Format("20060102-150405")
	id := rec.ID
	if len(id) > 8 {
		id = id[:8]
	}
	filename := fmt.Sprintf("session_%s_%s_%s%s", rec.RoomID, stamp, id, FileExt)
	path := filepath.Join(s.SaveDir, filepath.Base(filename))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := saveTo(f, rec); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

// saveTo пишет запись и закрывает файл. Ошибка Close возвращается как ошибка записи.
func saveTo(f io.WriteCloser, rec *domain.Recording) (err error) {
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := writeBinary(w, rec); err != nil {
		return err
	}
	return w.Flush()
}

func writeBinary(w io.Writer, rec *domain.Recording) error {
	strs := []string{rec.ID, rec.RoomID, rec.SessionID, rec.Codec}
	for _, s := range strs {
		if len(s) > 255 {
			return fmt.Errorf("header string too long: %d", len(s))
		}
	}

	// 1. Глобальный заголовок
	header := RecordingFileHeader{
		Version:    Version1,
		Timestamp:  rec.Timestamp,
		FrameCount: int32(len(rec.Frames)),
		IDLen:      uint8(len(rec.ID)),
		RoomIDLen:  uint8(len(rec.RoomID)),
		SessionLen: uint8(len(rec.SessionID)),
		CodecLen:   uint8(len(rec.Codec)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, s := range strs {
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}

	// 2. Кадры
	for i, fr := range rec.Frames {
		if fr.Offset < 0 {
			return fmt.Errorf("frame %d: negative offset", i)
		}
		frameHeader := FrameHeader{
			OffsetMs: uint32(fr.Offset / time.Millisecond),
			DataLen:  uint32(len(fr.Data)),
		}
		if err := binary.Write(w, binary.LittleEndian, &frameHeader); err != nil {
			return fmt.Errorf("frame %d header: %w", i, err)
		}
		if _, err := w.Write(fr.Data); err != nil {
			return fmt.Errorf("frame %d body: %w", i, err)
		}
	}

	return nil
}
