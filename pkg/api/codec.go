package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec кодирует сообщения для транспорта.
// Binary() сообщает, какой тип websocket-кадра использовать.
type Codec interface {
	Name() string
	Binary() bool
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// NewCodec возвращает кодек по имени из конфига.
func NewCodec(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", CodecJSON:
		return JSONCodec{}, nil
	case CodecMsgpack:
		return MsgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

// JSONCodec - текстовые кадры, формат по умолчанию.
type JSONCodec struct{}

func (JSONCodec) Name() string { return CodecJSON }
func (JSONCodec) Binary() bool { return false }

func (JSONCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// MsgpackCodec - бинарные кадры. Используются json-теги структур,
// чтобы оба кодека описывались одними и теми же DTO.
type MsgpackCodec struct{}

func (MsgpackCodec) Name() string { return CodecMsgpack }
func (MsgpackCodec) Binary() bool { return true }

func (MsgpackCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (MsgpackCodec) Decode(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

// NewCommand собирает команду клиента. Payload всегда сериализуется в JSON,
// независимо от кодека транспорта.
func NewCommand(id, command string, payload any) (ClientCommand, error) {
	if v, ok := payload.(Validator); ok {
		if err := v.Validate(); err != nil {
			return ClientCommand{}, fmt.Errorf("validation failed: %w", err)
		}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return ClientCommand{}, fmt.Errorf("invalid payload format: %w", err)
	}
	return ClientCommand{ID: id, Command: command, Payload: raw}, nil
}
