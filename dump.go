package main

import (
	"bufio"
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/klauspost/compress/zstd"
	"github.com/segmentio/encoding/json"
)

// dumpHeader is the first line of a dump file.
type dumpHeader struct {
	Width int       `json:"width"`
	Stats StatsData `json:"stats"`
	Bytes int       `json:"bytes"`
}

// writeDump writes the packed plane buffer as a zstd stream holding a JSON
// header line followed by the raw texel bytes.
func writeDump(path string, r Report) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.New("creating dump file failed").WithTag("path", path).Wrap(err)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return errors.New("creating zstd encoder failed").Wrap(err)
	}

	bw := bufio.NewWriter(enc)
	hb, err := json.Marshal(dumpHeader{
		Width: r.Texture.Width,
		Stats: r.Stats,
		Bytes: len(r.Packed),
	})
	if err != nil {
		enc.Close()
		return errors.New("encoding dump header failed").Wrap(err)
	}
	hb = append(hb, '\n')

	if _, err := bw.Write(hb); err != nil {
		enc.Close()
		return errors.New("writing dump header failed").Wrap(err)
	}
	if _, err := bw.Write(r.Packed); err != nil {
		enc.Close()
		return errors.New("writing packed planes failed").Wrap(err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return errors.New("flushing dump failed").Wrap(err)
	}
	if err := enc.Close(); err != nil {
		return errors.New("closing zstd encoder failed").Wrap(err)
	}
	return nil
}
