package client

import (
	"math"
	"math/rand"
	"time"

	"github.com/lunarops/roverlink/pkg/controller"
)

// Synthetic generates controller states without hardware: smooth sine
// waves by default, uniform noise when Random is set. Used to bench the
// bridge and the firmware without an operator.
type Synthetic struct {
	random bool
	start  time.Time
	rng    *rand.Rand
}

func NewSynthetic(random bool) *Synthetic {
	return &Synthetic{
		random: random,
		start:  time.Now(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Synthetic) Close() {}

func (s *Synthetic) Read(st *controller.State) error {
	elapsed := time.Since(s.start).Seconds()

	if s.random {
		st.LeftX = uint8(s.rng.Intn(256))
		st.LeftY = uint8(s.rng.Intn(256))
		st.RightY = uint8(s.rng.Intn(256))
		st.RightTrigger = uint8(s.rng.Intn(256))
	} else {
		st.LeftX = wave(elapsed, 0.00)
		st.LeftY = wave(elapsed, 0.25)
		st.RightY = wave(elapsed, 0.50)
		st.RightTrigger = wave(elapsed, 0.125)
	}

	// Flip buttons at different periods so bit changes are visible.
	st.North = uint8((int(elapsed) / 2) % 2)
	st.East = uint8((int(elapsed) / 3) % 2)
	st.South = uint8((int(elapsed) / 5) % 2)
	st.West = uint8((int(elapsed) / 7) % 2)
	st.LeftBumper = uint8((int(elapsed) / 4) % 2)
	st.RightBumper = uint8((int(elapsed) / 6) % 2)

	return nil
}

// wave maps t (seconds) to a 0-255 sine centered on 127.
func wave(t, phase float64) uint8 {
	s := 0.5 + 0.5*math.Sin(2*math.Pi*(t+phase))
	return uint8(s * 255.0)
}
