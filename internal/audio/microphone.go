package audio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/nguyentantai21042004/votxt/internal/apperr"
)

const (
	// DefaultFramesPerBuffer is the portaudio read size.
	DefaultFramesPerBuffer = 512

	// DefaultChannels is mono audio
	DefaultChannels = 1
)

// MicrophoneConfig holds configuration for microphone capture
type MicrophoneConfig struct {
	SampleRate      int
	FramesPerBuffer int
	DeviceName      string // empty or "default" selects the default input
}

// Microphone captures blocks from a portaudio input stream. The stream
// only runs while a block is being captured.
type Microphone struct {
	mu         sync.Mutex
	stream     *portaudio.Stream
	buffer     []float32
	sampleRate int
	closed     bool
}

// NewMicrophone initializes portaudio and opens the input stream.
func NewMicrophone(cfg MicrophoneConfig) (*Microphone, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.FramesPerBuffer <= 0 {
		cfg.FramesPerBuffer = DefaultFramesPerBuffer
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, apperr.New(apperr.Device, "initialize portaudio", err)
	}

	buffer := make([]float32, cfg.FramesPerBuffer)
	stream, err := openStream(cfg, buffer)
	if err != nil {
		portaudio.Terminate()
		return nil, apperr.New(apperr.Device, "open input stream", err)
	}

	return &Microphone{
		stream:     stream,
		buffer:     buffer,
		sampleRate: cfg.SampleRate,
	}, nil
}

func openStream(cfg MicrophoneConfig, buffer []float32) (*portaudio.Stream, error) {
	if cfg.DeviceName == "" || cfg.DeviceName == "default" {
		return portaudio.OpenDefaultStream(DefaultChannels, 0, float64(cfg.SampleRate), len(buffer), buffer)
	}

	device, err := findDeviceByName(cfg.DeviceName)
	if err != nil {
		return nil, err
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: DefaultChannels,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      float64(cfg.SampleRate),
		FramesPerBuffer: len(buffer),
	}
	return portaudio.OpenStream(params, buffer)
}

func findDeviceByName(name string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}

	for _, dev := range devices {
		if dev.Name == name && dev.MaxInputChannels > 0 {
			return dev, nil
		}
	}

	return nil, fmt.Errorf("input device not found: %s", name)
}

// CaptureBlock records d worth of samples. It blocks until the device has
// delivered all of them.
func (m *Microphone) CaptureBlock(ctx context.Context, d time.Duration) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, apperr.Newf(apperr.Device, "capture block", "microphone is closed")
	}

	want := int(d.Seconds() * float64(m.sampleRate))
	block := make([]float32, 0, want)

	if err := m.stream.Start(); err != nil {
		return nil, apperr.New(apperr.Device, "start input stream", err)
	}
	defer m.stream.Stop()

	for len(block) < want {
		if err := m.stream.Read(); err != nil {
			return nil, apperr.New(apperr.Device, "read input stream", err)
		}
		n := want - len(block)
		if n > len(m.buffer) {
			n = len(m.buffer)
		}
		block = append(block, m.buffer[:n]...)
	}

	return block, nil
}

// Close closes the stream and terminates portaudio.
func (m *Microphone) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	if err := m.stream.Close(); err != nil {
		portaudio.Terminate()
		return fmt.Errorf("close input stream: %w", err)
	}
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("terminate portaudio: %w", err)
	}
	return nil
}

// DeviceInfo holds information about an audio input device
type DeviceInfo struct {
	Name              string
	MaxInputChannels  int
	DefaultSampleRate float64
	IsDefault         bool
}

// ListInputDevices returns the available input devices.
func ListInputDevices() ([]DeviceInfo, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, apperr.New(apperr.Device, "initialize portaudio", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, apperr.New(apperr.Device, "list devices", err)
	}

	var defaultName string
	if def, err := portaudio.DefaultInputDevice(); err == nil && def != nil {
		defaultName = def.Name
	}

	var inputs []DeviceInfo
	for _, dev := range devices {
		if dev.MaxInputChannels > 0 {
			inputs = append(inputs, DeviceInfo{
				Name:              dev.Name,
				MaxInputChannels:  dev.MaxInputChannels,
				DefaultSampleRate: dev.DefaultSampleRate,
				IsDefault:         dev.Name == defaultName,
			})
		}
	}

	return inputs, nil
}
