package walk

import (
	"go.uber.org/multierr"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultJumpPercent is the log-size of a sized jump as a fraction of S0.
const DefaultJumpPercent = 0.04

type scheduledJump struct {
	random bool
	size   float64
}

// JumpBuilder collects caller-scheduled jumps for a jump-diffusion path. The
// jump times are always random; sizes are either fixed up front or drawn from
// Normal(muJ, sigmaJ) at generation time.
type JumpBuilder struct {
	params Params
	jump   JumpParams
	events []scheduledJump
}

func NewJumpBuilder(params Params, muJ, sigmaJ float64) *JumpBuilder {
	return &JumpBuilder{
		params: params,
		jump:   JumpParams{MuJ: muJ, SigmaJ: sigmaJ},
	}
}

func (b *JumpBuilder) AddRandomJump() *JumpBuilder {
	b.events = append(b.events, scheduledJump{random: true})
	return b
}

// AddSizedJump schedules a jump of pct*S0 in log-space.
func (b *JumpBuilder) AddSizedJump(pct float64) *JumpBuilder {
	b.events = append(b.events, scheduledJump{size: pct * b.params.S0})
	return b
}

func (b *JumpBuilder) Build() (*ManualJumps, error) {
	err := multierr.Append(b.params.Validate(), b.jump.Validate())
	for _, e := range b.events {
		if !e.random && !finite(e.size) {
			err = multierr.Append(err, invalid("jump size must be finite, got %v", e.size))
		}
	}
	if err != nil {
		return nil, err
	}

	events := make([]scheduledJump, len(b.events))
	copy(events, b.events)
	return &ManualJumps{Params: b.params, Jump: b.jump, events: events}, nil
}

// ManualJumps generates jump-diffusion paths carrying exactly the scheduled
// jumps, in shuffled order at sorted uniform times.
type ManualJumps struct {
	Params
	Jump   JumpParams
	events []scheduledJump
}

func (m *ManualJumps) Len() int {
	return len(m.events)
}

func (m *ManualJumps) Generate(src rand.Source) (*Path, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	src = sourceOrRandom(src)
	rng := rand.New(src)
	times := Grid(m.T, m.Dt)
	x := logDiffusion(m.Params, rng, times)
	if len(m.events) == 0 {
		return &Path{Times: times, Values: exponentiate(m.S0, x)}, nil
	}

	jumpTimes := uniformTimes(src, m.T, len(m.events))

	normal := distuv.Normal{Mu: m.Jump.MuJ, Sigma: m.Jump.SigmaJ, Src: src}
	sizes := make([]float64, len(m.events))
	for i, e := range m.events {
		if e.random {
			sizes[i] = normal.Rand()
		} else {
			sizes[i] = e.size
		}
	}
	rng.Shuffle(len(sizes), func(i, j int) {
		sizes[i], sizes[j] = sizes[j], sizes[i]
	})

	return overlayPath(m.S0, times, x, jumpTimes, sizes), nil
}
