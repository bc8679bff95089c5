package garland

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"go.uber.org/zap"
)

// Jukebox loops a single background music track with a play/pause toggle.
// The toggle is deliberately independent of the mode state machine. A
// Jukebox that failed to load or initialize stays usable: every method is a
// no-op.
type Jukebox struct {
	mu       sync.Mutex
	log      *zap.Logger
	file     *os.File
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	ready    bool
}

// NewJukebox creates an empty jukebox. log may be nil.
func NewJukebox(log *zap.Logger) *Jukebox {
	if log == nil {
		log = zap.NewNop()
	}
	return &Jukebox{log: log}
}

// Load opens and decodes the track (wav, mp3, or flac by extension),
// initializes the speaker, and starts the track paused. Errors disable
// audio; they never crash the greeting.
func (j *Jukebox) Load(path string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open track: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		f.Close()
		return fmt.Errorf("unsupported track format %q", filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("decode track: %w", err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		streamer.Close()
		f.Close()
		return fmt.Errorf("init speaker: %w", err)
	}

	j.file = f
	j.streamer = streamer
	j.ctrl = &beep.Ctrl{Streamer: beep.Loop(-1, streamer), Paused: true}
	j.ready = true
	speaker.Play(j.ctrl)

	j.log.Info("track loaded", zap.String("path", path))
	return nil
}

// Toggle flips between playing and paused. No-op when nothing is loaded.
func (j *Jukebox) Toggle() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.ready {
		return
	}
	speaker.Lock()
	j.ctrl.Paused = !j.ctrl.Paused
	speaker.Unlock()
}

// Playing reports whether the track is currently audible.
func (j *Jukebox) Playing() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.ready {
		return false
	}
	speaker.Lock()
	paused := j.ctrl.Paused
	speaker.Unlock()
	return !paused
}

// Close stops playback and releases the decoder and file.
func (j *Jukebox) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.ready {
		return nil
	}
	speaker.Lock()
	j.ctrl.Paused = true
	speaker.Unlock()
	j.ready = false
	err := j.streamer.Close()
	if cerr := j.file.Close(); err == nil {
		err = cerr
	}
	return err
}
