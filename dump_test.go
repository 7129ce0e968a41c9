package main

import (
	"bufio"
	"io"
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/klauspost/compress/zstd"
	"github.com/segmentio/encoding/json"
)

// readDump reads a file written by writeDump.
func readDump(path string) (dumpHeader, []byte, error) {
	var h dumpHeader

	f, err := os.Open(path)
	if err != nil {
		return h, nil, errors.New("opening dump file failed").WithTag("path", path).Wrap(err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, nil, errors.New("creating zstd decoder failed").Wrap(err)
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return h, nil, errors.New("reading dump header failed").Wrap(err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, nil, errors.New("decoding dump header failed").Wrap(err)
	}

	packed := make([]byte, h.Bytes)
	if _, err := io.ReadFull(br, packed); err != nil {
		return h, nil, errors.New("reading packed planes failed").Wrap(err)
	}
	return h, packed, nil
}
