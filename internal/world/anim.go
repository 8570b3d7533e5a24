package world

// Animator steps through a frame sequence. The frames themselves live with
// the renderer; the animator only tracks which one is current.
type Animator struct {
	Counter int
	Frame   int
}

// Advance counts one tick and moves to the next of frames every interval
// ticks, wrapping at the end of the sequence.
func (a *Animator) Advance(frames, interval int) {
	if frames <= 0 || interval <= 0 {
		return
	}
	a.Counter++
	if a.Counter >= interval {
		a.Counter = 0
		a.Frame = (a.Frame + 1) % frames
	}
}

// Reset rewinds to the first frame.
func (a *Animator) Reset() {
	a.Counter = 0
	a.Frame = 0
}
