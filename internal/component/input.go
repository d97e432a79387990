package component

const (
	DefaultSpeed     = 0.1
	DefaultJumpSpeed = -5.5
)

// Input holds player intent for one entity. Device polling fills the
// flags, the player system consumes them.
type Input struct {
	Left  bool
	Right bool
	Jump  bool

	Speed     float64 // horizontal impulse per tick
	JumpSpeed float64 // vertical impulse, negative is up
}

// Defaults fills zero speeds with the standard player tuning.
func (in *Input) Defaults() {
	if in.Speed == 0 {
		in.Speed = DefaultSpeed
	}
	if in.JumpSpeed == 0 {
		in.JumpSpeed = DefaultJumpSpeed
	}
}
