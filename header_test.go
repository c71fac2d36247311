package oledgen

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteHeader(t *testing.T) {
	animations := []*Animation{
		{
			Name:      "idle",
			Symbol:    "idle",
			Width:     8,
			Height:    2,
			BitPacked: true,
			Frames: []*Frame{
				{Symbol: "idle_frame_0", Bitmap: []byte{0xaa, 0x55}, Duration: 90 * time.Millisecond, Source: "idle/0.pbm"},
			},
		},
		{
			Name:      "empty",
			Symbol:    "empty",
			Width:     128,
			Height:    64,
			BitPacked: true,
		},
	}

	b := new(bytes.Buffer)
	require.NoError(t, WriteHeader(b, "manifest.yaml", animations))

	want := `// AUTO-GENERATED FILE. DO NOT EDIT.
// Source: manifest.yaml

#pragma once

#include "oled.h"

// Animation: idle
//   idle/0.pbm
static const uint8_t g_oled_anim_idle_frame_0[] = {
    0xAA, 0x55,
};

static const oled_animation_frame_t g_oled_anim_idle_frames[] = {
    { .bitmap = g_oled_anim_idle_frame_0, .duration_ms = 90 },
};
static const oled_animation_t g_oled_animation_idle = {
    .width = 8,
    .height = 2,
    .bit_packed = true,
    .frame_count = 1,
    .frames = g_oled_anim_idle_frames,
};

// Animation: empty
static const oled_animation_frame_t *const g_oled_anim_empty_frames = NULL;
static const oled_animation_t g_oled_animation_empty = {
    .width = 128,
    .height = 64,
    .bit_packed = true,
    .frame_count = 0,
    .frames = NULL,
};

static const oled_animation_t g_oled_boot_animation = {
    .width = 0, .height = 0, .bit_packed = true, .frame_count = 0, .frames = NULL,
};

`
	assert.Equal(t, want, b.String())
}

func TestWriteHeaderBootFallback(t *testing.T) {
	for _, animations := range [][]*Animation{
		nil,
		{{Name: "idle", Symbol: "idle", Width: 1, Height: 1, BitPacked: true}},
	} {
		b := new(bytes.Buffer)
		require.NoError(t, WriteHeader(b, "manifest.yaml", animations))
		assert.Equal(t, 1, strings.Count(b.String(), "oled_animation_t g_oled_boot_animation"))
		assert.Contains(t, b.String(), ".frame_count = 0, .frames = NULL")
	}
}

func TestWriteHeaderBoot(t *testing.T) {
	animations := []*Animation{
		{Name: "Boot!", Symbol: "boot", Width: 8, Height: 1, BitPacked: true, Frames: []*Frame{
			{Symbol: "boot_frame_0", Bitmap: []byte{0xff}, Duration: time.Second, Source: "boot.pbm"},
		}},
	}

	b := new(bytes.Buffer)
	require.NoError(t, WriteHeader(b, "manifest.yaml", animations))
	assert.Equal(t, 1, strings.Count(b.String(), "oled_animation_t g_oled_boot_animation"))
	assert.Contains(t, b.String(), ".duration_ms = 1000 }")
	assert.NotContains(t, b.String(), "g_oled_animation_boot")
}

func TestWriteHeaderRows(t *testing.T) {
	bitmap := make([]byte, 25)
	for i := range bitmap {
		bitmap[i] = byte(i)
	}
	animations := []*Animation{
		{Name: "wide", Symbol: "wide", Width: 200, Height: 1, BitPacked: true, Frames: []*Frame{
			{Symbol: "wide_frame_0", Bitmap: bitmap, Duration: time.Millisecond, Source: "wide.pbm"},
		}},
	}

	b := new(bytes.Buffer)
	require.NoError(t, WriteHeader(b, "manifest.yaml", animations))
	assert.Contains(t, b.String(), "{\n"+
		"    0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B,\n"+
		"    0x0C, 0x0D, 0x0E, 0x0F, 0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,\n"+
		"    0x18,\n"+
		"};\n")
}

func TestWriteHeaderComments(t *testing.T) {
	animations := []*Animation{
		{Name: "two\nlines", Symbol: "two_lines", Width: 1, Height: 1, BitPacked: true},
	}

	b := new(bytes.Buffer)
	require.NoError(t, WriteHeader(b, "manifest\r\n.yaml", animations))
	assert.Contains(t, b.String(), "// Animation: two lines\n")
	assert.Contains(t, b.String(), "// Source: manifest .yaml\n")
}

func TestWriteHeaderTrailingBackslash(t *testing.T) {
	animations := []*Animation{
		{Name: "foo\\", Symbol: "foo", Width: 1, Height: 1, BitPacked: true},
		{Name: "bar\\ \\\t", Symbol: "bar", Width: 1, Height: 1, BitPacked: true},
	}

	b := new(bytes.Buffer)
	require.NoError(t, WriteHeader(b, "dir\\", animations))
	assert.Contains(t, b.String(), "// Source: dir\n")
	assert.Contains(t, b.String(), "// Animation: foo\nstatic const oled_animation_frame_t *const g_oled_anim_foo_frames = NULL;\n")
	assert.Contains(t, b.String(), "// Animation: bar\n")

	for _, line := range strings.Split(b.String(), "\n") {
		assert.False(t, strings.HasSuffix(line, "\\"), "line continuation in %q", line)
	}
}
