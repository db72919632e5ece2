package sound

import (
	"encoding/binary"
	"io"
	"math"
	"sync/atomic"
)

const bytesPerFrame = 4 // 16-bit little-endian stereo

type frame [2]int16

// RateReader resamples 16-bit stereo PCM so that it plays rate times faster
// (and higher). The rate may be changed from any goroutine while the audio
// goroutine reads.
type RateReader struct {
	src  io.Reader
	rate atomic.Uint64

	prev, next frame
	pos        float64 // fraction between prev and next
	primed     bool
	err        error
	buf        [bytesPerFrame]byte
}

// NewRateReader wraps src at rate 1.
func NewRateReader(src io.Reader) *RateReader {
	r := &RateReader{src: src}
	r.SetRate(1)
	return r
}

// SetRate sets the playback rate. Non-positive rates are ignored.
func (r *RateReader) SetRate(rate float64) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return
	}
	r.rate.Store(math.Float64bits(rate))
}

// Rate returns the current playback rate.
func (r *RateReader) Rate() float64 {
	return math.Float64frombits(r.rate.Load())
}

func (r *RateReader) readFrame() (frame, error) {
	if _, err := io.ReadFull(r.src, r.buf[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return frame{}, err
	}
	return frame{
		int16(binary.LittleEndian.Uint16(r.buf[0:2])),
		int16(binary.LittleEndian.Uint16(r.buf[2:4])),
	}, nil
}

// Read fills p with whole frames.
func (r *RateReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if !r.primed {
		var err error
		if r.prev, err = r.readFrame(); err != nil {
			r.err = err
			return 0, err
		}
		if r.next, err = r.readFrame(); err != nil {
			r.next = r.prev
		}
		r.primed = true
	}

	rate := r.Rate()
	n := 0
	for n+bytesPerFrame <= len(p) {
		for ch := 0; ch < 2; ch++ {
			a, b := float64(r.prev[ch]), float64(r.next[ch])
			s := int16(math.Round(a + (b-a)*r.pos))
			binary.LittleEndian.PutUint16(p[n+2*ch:], uint16(s))
		}
		n += bytesPerFrame

		r.pos += rate
		for r.pos >= 1 {
			f, err := r.readFrame()
			if err != nil {
				r.err = err
				return n, err
			}
			r.prev, r.next = r.next, f
			r.pos--
		}
	}
	return n, nil
}
