// Package media extracts metadata from uploaded files without shelling out
// to external tooling.
package media

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var ErrNoDuration = errors.New("no mvhd duration found")

// MP4Duration walks the top-level box structure of an mp4/mov stream and
// reads the duration from the movie header. Returns seconds.
func MP4Duration(r io.ReadSeeker) (float64, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	for {
		size, boxType, headerLen, err := readBoxHeader(r)
		if err == io.EOF {
			return 0, ErrNoDuration
		}
		if err != nil {
			return 0, err
		}

		if boxType == "moov" {
			return findMvhd(r, size-headerLen)
		}

		if size < headerLen {
			return 0, fmt.Errorf("invalid box size %d for %q", size, boxType)
		}
		if _, err := r.Seek(size-headerLen, io.SeekCurrent); err != nil {
			return 0, err
		}
	}
}

func findMvhd(r io.ReadSeeker, remaining int64) (float64, error) {
	for remaining > 0 {
		size, boxType, headerLen, err := readBoxHeader(r)
		if err != nil {
			return 0, err
		}

		if boxType == "mvhd" {
			return parseMvhd(r)
		}

		if size < headerLen {
			return 0, fmt.Errorf("invalid box size %d for %q", size, boxType)
		}
		if _, err := r.Seek(size-headerLen, io.SeekCurrent); err != nil {
			return 0, err
		}
		remaining -= size
	}
	return 0, ErrNoDuration
}

func parseMvhd(r io.Reader) (float64, error) {
	var versionFlags [4]byte
	if _, err := io.ReadFull(r, versionFlags[:]); err != nil {
		return 0, err
	}

	var timescale uint32
	var duration uint64

	switch versionFlags[0] {
	case 0:
		var body struct {
			CreationTime     uint32
			ModificationTime uint32
			Timescale        uint32
			Duration         uint32
		}
		if err := binary.Read(r, binary.BigEndian, &body); err != nil {
			return 0, err
		}
		timescale = body.Timescale
		duration = uint64(body.Duration)
	case 1:
		var body struct {
			CreationTime     uint64
			ModificationTime uint64
			Timescale        uint32
			Duration         uint64
		}
		if err := binary.Read(r, binary.BigEndian, &body); err != nil {
			return 0, err
		}
		timescale = body.Timescale
		duration = body.Duration
	default:
		return 0, fmt.Errorf("unsupported mvhd version %d", versionFlags[0])
	}

	if timescale == 0 {
		return 0, ErrNoDuration
	}
	return float64(duration) / float64(timescale), nil
}

func readBoxHeader(r io.Reader) (size int64, boxType string, headerLen int64, err error) {
	var header [8]byte
	if _, err = io.ReadFull(r, header[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return
	}

	size = int64(binary.BigEndian.Uint32(header[:4]))
	boxType = string(header[4:8])
	headerLen = 8

	if size == 1 {
		var large [8]byte
		if _, err = io.ReadFull(r, large[:]); err != nil {
			return
		}
		size = int64(binary.BigEndian.Uint64(large[:]))
		headerLen = 16
	}
	if size == 0 {
		// Box extends to end of file; callers only skip boxes, so report a
		// size that consumes everything.
		size = 1<<62 - 1
	}
	return
}
