package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"wardrobe-tryon/internal/scene"
)

// Format selects a snapshot encoding.
type Format string

const (
	JSON    Format = "json"
	MsgPack Format = "msgpack"
)

var ErrUnknownFormat = errors.New("export: unknown format")

// ParseFormat accepts a format name or a file name whose extension names one.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(filepath.Ext(s), "."))
	if name == "" {
		name = strings.ToLower(s)
	}
	switch name {
	case "json":
		return JSON, nil
	case "msgpack", "mpk", "mp":
		return MsgPack, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Marshal encodes s in format f.
func Marshal(s Snapshot, f Format) ([]byte, error) {
	switch f {
	case JSON:
		return json.MarshalIndent(s, "", "  ")
	case MsgPack:
		return msgpack.Marshal(&s)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Unmarshal decodes a snapshot encoded in format f.
func Unmarshal(data []byte, f Format) (Snapshot, error) {
	var s Snapshot
	var err error
	switch f {
	case JSON:
		err = json.Unmarshal(data, &s)
	case MsgPack:
		err = msgpack.Unmarshal(data, &s)
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return s, fmt.Errorf("export: decode %s: %w", f, err)
	}
	return s, nil
}

// Write encodes sc to w.
func Write(w io.Writer, sc *scene.Scene, f Format) error {
	data, err := Marshal(FromScene(sc), f)
	if err != nil {
		return fmt.Errorf("export: encode %s: %w", f, err)
	}
	_, err = w.Write(data)
	return err
}
