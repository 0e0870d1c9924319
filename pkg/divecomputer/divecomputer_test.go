package divecomputer

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/d21d3q/godivecomputer/internal/family"
	"github.com/d21d3q/godivecomputer/internal/testutil"
)

func TestDecodeHex(t *testing.T) {
	raw := " |4E44_B409 86868686| "
	data, err := DecodeHex(raw)
	require.NoError(t, err)
	require.Len(t, data, 8)

	data, err = DecodeHex("0x0102")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, data)
}

func TestDecodeHexOddLength(t *testing.T) {
	_, err := DecodeHex("ABC")
	require.Error(t, err)
}

func TestParseUnknownFamily(t *testing.T) {
	_, err := Parse(context.Background(), family.SuuntoD9, make([]byte, 512))
	require.ErrorIs(t, err, ErrInvalidArgs)
	require.Equal(t, "Invalid arguments", Message(err))

	_, err = ParseHex(context.Background(), "nautilus", "00", ParseOptions{})
	require.ErrorIs(t, err, ErrInvalidArgs)
}

func TestParseShortBuffer(t *testing.T) {
	f, ok := LookupFamily("excursion")
	require.True(t, ok)
	_, err := Parse(context.Background(), f, make([]byte, 255))
	require.ErrorIs(t, err, ErrIO)
	require.Equal(t, "Input/output error", Message(err))
}

func TestParseHexScuba(t *testing.T) {
	hexStr := testutil.LoadHex(t, "deepsix/scuba.hex")
	dive, err := ParseHex(context.Background(), "excursion", hexStr, ParseOptions{})
	require.NoError(t, err)
	require.Equal(t, "excursion", dive.Family)
	require.Equal(t, 256+3*4+2, dive.ByteCount)
	require.Equal(t, "2021-03-14 09:26:00", dive.Datetime)

	require.Len(t, dive.Samples, 3)
	require.Equal(t, uint(20), dive.Samples[0].Time)
	require.Equal(t, 0.0, *dive.Samples[0].Depth)
	require.Equal(t, 21.5, *dive.Samples[0].Temperature)
	require.Nil(t, dive.Samples[0].Pressure)
	require.Equal(t, uint(60), dive.Samples[2].Time)

	fs := dive.FieldSet()
	divetime, err := fs.Int("divetime_s")
	require.NoError(t, err)
	require.Equal(t, int64(600), divetime)
	o2, err := fs.Float("gasmix_0_o2")
	require.NoError(t, err)
	require.Equal(t, 0.32, o2)
	mode, err := fs.String("divemode")
	require.NoError(t, err)
	require.Equal(t, "opencircuit", mode)
	require.False(t, fs.Has("avgdepth_m"))
	_, err = fs.Float("avgdepth_m")
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestParseUnknownActivityLogs(t *testing.T) {
	log, hook := test.NewNullLogger()
	hexStr := testutil.LoadHex(t, "deepsix/unknown_activity.hex")
	dive, err := ParseHex(context.Background(), "excursion", hexStr, ParseOptions{Logger: log})
	require.NoError(t, err)
	require.False(t, dive.FieldSet().Has("divemode"))
	require.Len(t, hook.AllEntries(), 1)
	require.Contains(t, hook.LastEntry().Message, "unknown activity type")
}

func TestDiveRendering(t *testing.T) {
	hexStr := testutil.LoadHex(t, "deepsix/freedive.hex")
	dive, err := ParseHex(context.Background(), "excursion", hexStr, ParseOptions{})
	require.NoError(t, err)

	js := dive.String()
	require.Contains(t, js, `"family": "excursion"`)
	require.Contains(t, js, `"divemode": "freedive"`)

	y, err := dive.YAML()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(y, "family: excursion\n"))
	require.Contains(t, y, "divemode: freedive")
}
