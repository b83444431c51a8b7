package meet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleAudioTwiceRestoresState(t *testing.T) {
	stream := NewMediaStream(true, true)
	controls := NewControls(&fakeDevices{}, stream)

	assert.False(t, controls.ToggleAudio())
	for _, track := range stream.TracksOfKind(TrackAudio) {
		assert.False(t, track.Enabled)
	}

	assert.True(t, controls.ToggleAudio())
	for _, track := range stream.TracksOfKind(TrackAudio) {
		assert.True(t, track.Enabled)
	}

	// Audio toggling leaves video alone.
	for _, track := range stream.TracksOfKind(TrackVideo) {
		assert.True(t, track.Enabled)
	}
}

func TestToggleVideo(t *testing.T) {
	stream := NewMediaStream(true, true)
	controls := NewControls(&fakeDevices{}, stream)

	assert.False(t, controls.ToggleVideo())
	assert.True(t, controls.ToggleVideo())
}

func TestToggleWithoutTracks(t *testing.T) {
	controls := NewControls(&fakeDevices{}, NewMediaStream(false, false))
	assert.False(t, controls.ToggleAudio())
	assert.False(t, controls.ToggleVideo())
}

func TestScreenShareSwapsLocalPreviewOnly(t *testing.T) {
	camera := NewMediaStream(true, true)
	controls := NewControls(&fakeDevices{}, camera)

	require.Same(t, camera, controls.DisplayedStream())

	display, err := controls.StartScreenShare()
	require.NoError(t, err)
	assert.True(t, display.ScreenShare)
	assert.Same(t, display, controls.DisplayedStream())

	controls.StopScreenShare()
	assert.Same(t, camera, controls.DisplayedStream())
	for _, track := range display.Tracks {
		assert.False(t, track.Enabled)
	}
}

func TestScreenShareCaptureError(t *testing.T) {
	camera := NewMediaStream(true, true)
	controls := NewControls(&fakeDevices{displayErr: ErrPermissionDenied}, camera)

	_, err := controls.StartScreenShare()
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Same(t, camera, controls.DisplayedStream())
}

func TestStopAllDisablesEveryTrack(t *testing.T) {
	stream := NewMediaStream(true, true)
	stream.StopAll()
	for _, track := range stream.Tracks {
		assert.False(t, track.Enabled)
	}
}
