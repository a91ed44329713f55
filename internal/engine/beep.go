package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Supported file extensions.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtWAV  = ".wav"
	ExtOGG  = ".ogg"
)

// DefaultResampleQuality is used when NewBeep gets a quality outside 1..6.
const DefaultResampleQuality = 4

// Beep is an Engine that plays local files through the beep speaker.
//
// Beep is not safe for concurrent use; wrap it in an Adapter.
type Beep struct {
	quality int

	speakerInit bool
	speakerRate beep.SampleRate

	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl

	// gen identifies the loaded item; end-of-media callbacks of an older
	// generation are ignored.
	gen   atomic.Uint64
	onEnd func()
}

// NewBeep creates a beep engine. The speaker is initialized lazily with
// the sample rate of the first loaded file.
func NewBeep(resampleQuality int) *Beep {
	if resampleQuality < 1 || resampleQuality > 6 {
		resampleQuality = DefaultResampleQuality
	}
	return &Beep{quality: resampleQuality}
}

// Supported reports whether path has an extension Beep can decode.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtWAV, ExtOGG:
		return true
	}
	return false
}

func (b *Beep) SetMediaEndHandler(fn func()) {
	b.onEnd = fn
}

// Load stops the current item and opens path, paused.
func (b *Beep) Load(path string) error {
	b.unload()

	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	streamer, format, err := decode(f, ext)
	if err != nil {
		f.Close()
		return err
	}

	if !b.speakerInit {
		b.speakerRate = format.SampleRate
		if err := speaker.Init(b.speakerRate, b.speakerRate.N(time.Second/10)); err != nil {
			streamer.Close()
			f.Close()
			return err
		}
		b.speakerInit = true
	}

	b.file = f
	b.streamer = streamer
	b.format = format

	var out beep.Streamer = streamer
	if format.SampleRate != b.speakerRate {
		out = beep.Resample(b.quality, format.SampleRate, b.speakerRate, streamer)
	}
	b.ctrl = &beep.Ctrl{Streamer: out, Paused: true}

	gen := b.gen.Add(1)
	speaker.Play(beep.Seq(b.ctrl, beep.Callback(func() {
		if b.gen.Load() != gen {
			return
		}
		if b.onEnd != nil {
			b.onEnd()
		}
	})))

	return nil
}

func decode(f *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext {
	case ExtMP3:
		return decodeMP3(f)
	case ExtFLAC:
		// Some taggers prepend an ID3v2 tag, which the FLAC decoder rejects.
		if err := skipID3v2(f); err != nil {
			return nil, beep.Format{}, err
		}
		return flac.Decode(f)
	case ExtWAV:
		return wav.Decode(f)
	case ExtOGG:
		return vorbis.Decode(f)
	}
	return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

func (b *Beep) Play() error {
	return b.setPaused(false)
}

func (b *Beep) Pause() error {
	return b.setPaused(true)
}

func (b *Beep) setPaused(paused bool) error {
	if b.ctrl == nil {
		return ErrNoMedia
	}
	speaker.Lock()
	b.ctrl.Paused = paused
	speaker.Unlock()
	return nil
}

// Clear stops output and releases the loaded item.
func (b *Beep) Clear() error {
	b.unload()
	return nil
}

func (b *Beep) unload() {
	b.gen.Add(1)
	if b.speakerInit {
		speaker.Clear()
	}
	if b.streamer != nil {
		b.streamer.Close()
		b.streamer = nil
	}
	if b.file != nil {
		b.file.Close()
		b.file = nil
	}
	b.ctrl = nil
}

// Seek jumps to seconds from the start, clamped to the item's length.
// Seeking to the end lets the item finish naturally.
func (b *Beep) Seek(seconds float64) error {
	if b.streamer == nil {
		return ErrNoMedia
	}
	pos := b.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	pos = max(pos, 0)

	speaker.Lock()
	defer speaker.Unlock()
	pos = min(pos, b.streamer.Len())
	return b.streamer.Seek(pos)
}

// Progress returns the position in seconds.
func (b *Beep) Progress() (float64, error) {
	if b.streamer == nil {
		return 0, ErrNoMedia
	}
	speaker.Lock()
	pos := b.format.SampleRate.D(b.streamer.Position())
	speaker.Unlock()
	return pos.Seconds(), nil
}

// Duration decodes the header of path and returns its playing time.
func Duration(path string) (time.Duration, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	streamer, format, err := decode(f, ext)
	if err != nil {
		f.Close()
		return 0, err
	}
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()), nil
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && n == 0 {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Syncsafe integer: 7 bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])

	_, err = r.Seek(10+size, io.SeekStart)
	return err
}

// Verify Beep implements Engine at compile time.
var _ Engine = (*Beep)(nil)
