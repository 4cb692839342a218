// Package speaker streams an audio.Synth to the default output device
// through PortAudio.
package speaker

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
	"github.com/san-kum/dpend/internal/audio"
)

type Player struct {
	synth  *audio.Synth
	stream *portaudio.Stream
}

// Start opens a stereo output stream. Close must be called to release the
// device.
func Start(s *audio.Synth) (*Player, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("speaker: %w", err)
	}

	p := &Player{synth: s}
	// Output only; duplex streams often fail on Linux when devices differ.
	stream, err := portaudio.OpenDefaultStream(0, 2, s.Rate(), audio.BufferSize, p.process)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("speaker: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("speaker: start stream: %w", err)
	}
	p.stream = stream
	return p, nil
}

func (p *Player) process(out [][]float32) {
	p.synth.Fill(out)
}

func (p *Player) Close() error {
	var err error
	if p.stream != nil {
		if e := p.stream.Stop(); e != nil {
			err = e
		}
		if e := p.stream.Close(); e != nil && err == nil {
			err = e
		}
	}
	if e := portaudio.Terminate(); e != nil && err == nil {
		err = e
	}
	return err
}
