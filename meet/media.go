package meet

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Media acquisition failure categories. Each maps to a distinct user-facing
// message; callers must not collapse them into a generic failure.
var (
	ErrPermissionDenied = errors.New("camera and microphone access is required; please allow access in your browser settings")
	ErrNoDevice         = errors.New("no camera or microphone found; please connect a device")
	ErrDeviceBusy       = errors.New("could not access your camera or microphone; ensure no other application is using them")
)

type TrackKind string

const (
	TrackAudio TrackKind = "audio"
	TrackVideo TrackKind = "video"
)

type MediaTrack struct {
	Kind    TrackKind
	Enabled bool
}

// MediaStream models a bundle of local or remote media tracks. ScreenShare
// marks display-capture streams.
type MediaStream struct {
	ID          string
	Tracks      []*MediaTrack
	ScreenShare bool
}

func NewMediaStream(audio, video bool) *MediaStream {
	stream := &MediaStream{ID: uuid.NewString()}
	if audio {
		stream.Tracks = append(stream.Tracks, &MediaTrack{Kind: TrackAudio, Enabled: true})
	}
	if video {
		stream.Tracks = append(stream.Tracks, &MediaTrack{Kind: TrackVideo, Enabled: true})
	}
	return stream
}

func (s *MediaStream) TracksOfKind(kind TrackKind) []*MediaTrack {
	var tracks []*MediaTrack
	for _, track := range s.Tracks {
		if track.Kind == kind {
			tracks = append(tracks, track)
		}
	}
	return tracks
}

func (s *MediaStream) StopAll() {
	for _, track := range s.Tracks {
		track.Enabled = false
	}
}

// Devices is the gateway to camera, microphone and display capture.
type Devices interface {
	GetUserMedia(audio, video bool) (*MediaStream, error)
	GetDisplayMedia() (*MediaStream, error)
}

// Controls toggles local tracks and manages the screen-share substitution.
// Toggling never renegotiates the connection; a disabled track is relayed as
// silence or black frames by the transport.
type Controls struct {
	mu      sync.Mutex
	devices Devices
	local   *MediaStream
	display *MediaStream
}

func NewControls(devices Devices, local *MediaStream) *Controls {
	return &Controls{devices: devices, local: local}
}

// ToggleAudio flips every local audio track and reports the new state.
func (c *Controls) ToggleAudio() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return toggleTracks(c.local, TrackAudio)
}

// ToggleVideo flips every local video track and reports the new state.
func (c *Controls) ToggleVideo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return toggleTracks(c.local, TrackVideo)
}

func toggleTracks(stream *MediaStream, kind TrackKind) bool {
	if stream == nil {
		return false
	}
	tracks := stream.TracksOfKind(kind)
	if len(tracks) == 0 {
		return false
	}
	newState := !tracks[0].Enabled
	for _, track := range tracks {
		track.Enabled = newState
	}
	return newState
}

// StartScreenShare acquires a display-capture stream and swaps it into the
// local preview. Already-connected peers keep receiving the camera stream;
// the substitution is local-only.
func (c *Controls) StartScreenShare() (*MediaStream, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stream, err := c.devices.GetDisplayMedia()
	if err != nil {
		return nil, err
	}
	stream.ScreenShare = true
	c.display = stream
	return stream, nil
}

func (c *Controls) StopScreenShare() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.display != nil {
		c.display.StopAll()
		c.display = nil
	}
}

// DisplayedStream is what the local video element renders: the screen share
// while one is active, the camera stream otherwise.
func (c *Controls) DisplayedStream() *MediaStream {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.display != nil {
		return c.display
	}
	return c.local
}
