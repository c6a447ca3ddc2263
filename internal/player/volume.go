package player

import (
	"math"

	"github.com/gopxl/beep/v2/speaker"
)

// SetVolume sets the output level, clamped to [0, 1].
func (p *Player) SetVolume(level float64) {
	level = clampLevel(level)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volumeLevel = level
	if p.volume != nil {
		speaker.Lock()
		p.volume.Volume = gainFor(level)
		p.volume.Silent = level <= 0
		speaker.Unlock()
	}
}

func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volumeLevel
}

func clampLevel(level float64) float64 {
	return math.Min(math.Max(level, 0), 1)
}

// gainFor maps a linear level to beep's base-2 gain:
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10.
func gainFor(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
