package media

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(boxType string, payload []byte) []byte {
	buf := make([]byte, 8, 8+len(payload))
	binary.BigEndian.PutUint32(buf[:4], uint32(8+len(payload)))
	copy(buf[4:8], boxType)
	return append(buf, payload...)
}

func mvhdV0(timescale, duration uint32) []byte {
	payload := make([]byte, 4+16)
	// version 0, zero flags, zero creation/modification times
	binary.BigEndian.PutUint32(payload[12:16], timescale)
	binary.BigEndian.PutUint32(payload[16:20], duration)
	return box("mvhd", payload)
}

func mvhdV1(timescale uint32, duration uint64) []byte {
	payload := make([]byte, 4+28)
	payload[0] = 1
	binary.BigEndian.PutUint32(payload[20:24], timescale)
	binary.BigEndian.PutUint64(payload[24:32], duration)
	return box("mvhd", payload)
}

func TestMP4DurationVersion0(t *testing.T) {
	file := append(
		box("ftyp", []byte("isom0000")),
		box("moov", mvhdV0(1000, 7400))...,
	)

	secs, err := MP4Duration(bytes.NewReader(file))
	require.NoError(t, err)
	assert.InDelta(t, 7.4, secs, 0.001)
}

func TestMP4DurationVersion1(t *testing.T) {
	file := append(
		box("ftyp", []byte("isom0000")),
		box("moov", mvhdV1(600, 4800))...,
	)

	secs, err := MP4Duration(bytes.NewReader(file))
	require.NoError(t, err)
	assert.InDelta(t, 8.0, secs, 0.001)
}

func TestMP4DurationSkipsSiblingBoxes(t *testing.T) {
	moovPayload := append(
		box("iods", make([]byte, 12)),
		mvhdV0(90000, 450000)...,
	)
	file := append(
		box("ftyp", []byte("isom0000")),
		append(box("free", make([]byte, 32)), box("moov", moovPayload)...)...,
	)

	secs, err := MP4Duration(bytes.NewReader(file))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, secs, 0.001)
}

func TestMP4DurationNoMoov(t *testing.T) {
	file := append(
		box("ftyp", []byte("isom0000")),
		box("mdat", []byte("not a real stream"))...,
	)

	_, err := MP4Duration(bytes.NewReader(file))
	assert.ErrorIs(t, err, ErrNoDuration)
}

func TestMP4DurationZeroTimescale(t *testing.T) {
	file := box("moov", mvhdV0(0, 1000))

	_, err := MP4Duration(bytes.NewReader(file))
	assert.ErrorIs(t, err, ErrNoDuration)
}

func TestMP4DurationGarbage(t *testing.T) {
	_, err := MP4Duration(bytes.NewReader([]byte("definitely not an mp4")))
	assert.Error(t, err)
}
