// Package hostaudio drives an SDL2 audio device from an apu.Controller,
// pulling fixed-size sample buffers and queueing them for playback.
package hostaudio

import (
	"fmt"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	audioFormat   = sdl.AUDIO_S16LSB
	audioChannels = 2
	bufferSamples = 1024 // frames, not interleaved samples
)

// Source is the sample producer a Sink pulls from; internal/apu.Controller
// satisfies it.
type Source interface {
	Read(out []int16) (int, error)
}

// Sink owns an open SDL2 audio device and periodically pulls interleaved
// stereo samples from a Source to queue for playback.
type Sink struct {
	deviceID sdl.AudioDeviceID
	source   Source
	buf      []int16
}

// Open initializes SDL2's audio subsystem and opens a device at sampleRate,
// wiring source as the sample producer.
func Open(sampleRate int, source Source) (*Sink, error) {
	if err := sdl.Init(sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("hostaudio: sdl init: %w", err)
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   audioFormat,
		Channels: audioChannels,
		Samples:  bufferSamples,
	}
	id, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("hostaudio: open device: %w", err)
	}

	s := &Sink{
		deviceID: id,
		source:   source,
		buf:      make([]int16, bufferSamples*audioChannels),
	}
	sdl.PauseAudioDevice(id, false)
	return s, nil
}

// Pump reads one buffer's worth of samples from the source and queues it,
// meant to be called once per frame from the same goroutine that drives
// the scheduler's OnFrame hook.
func (s *Sink) Pump() error {
	n, err := s.source.Read(s.buf)
	if err != nil {
		return fmt.Errorf("hostaudio: read: %w", err)
	}

	bytes := unsafe.Slice((*byte)(unsafe.Pointer(&s.buf[0])), n*2)
	return sdl.QueueAudio(s.deviceID, bytes)
}

// Close stops playback and releases the device.
func (s *Sink) Close() {
	sdl.CloseAudioDevice(s.deviceID)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
}
