package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"autobattler-client/internal/domain"
)

var ErrInvalidMagic = errors.New("invalid magic")

// maxFrameSize ограничивает кадр при чтении поврежденного файла.
const maxFrameSize = 16 << 20

func (s *RecordingService) Load(path string) (*domain.Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

func readBinary(r io.Reader) (*domain.Recording, error) {
	// 1. Заголовок целиком
	var header RecordingFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, ErrInvalidMagic
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.FrameCount < 0 {
		return nil, fmt.Errorf("negative frame count: %d", header.FrameCount)
	}

	lens := []uint8{header.IDLen, header.RoomIDLen, header.SessionLen, header.CodecLen}
	strs := make([]string, len(lens))
	for i, n := range lens {
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("failed to read header strings: %w", err)
		}
		strs[i] = string(buf)
	}

	rec := &domain.Recording{
		ID:        strs[0],
		RoomID:    strs[1],
		SessionID: strs[2],
		Codec:     strs[3],
		Timestamp: header.Timestamp,
		Frames:    make([]domain.RecordedFrame, 0, header.FrameCount),
	}

	// 2. Кадры
	for i := 0; i < int(header.FrameCount); i++ {
		var fh FrameHeader
		if err := binary.Read(r, binary.LittleEndian, &fh); err != nil {
			return nil, fmt.Errorf("frame %d header: %w", i, err)
		}
		if fh.DataLen > maxFrameSize {
			return nil, fmt.Errorf("frame %d too large: %d", i, fh.DataLen)
		}
		data := make([]byte, fh.DataLen)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, fmt.Errorf("frame %d body: %w", i, err)
		}
		rec.Frames = append(rec.Frames, domain.RecordedFrame{
			Offset: time.Duration(fh.OffsetMs) * time.Millisecond,
			Data:   data,
		})
	}

	return rec, nil
}
