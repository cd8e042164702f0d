package component

// Physics holds vitals and the scheduling currency. Energy grows by Speed
// once per scheduler pass and is spent by action cost.
type Physics struct {
	Health    uint16
	MaxHealth uint16
	Speed     float32
	Energy    float32
}

// Dead is true once health has been worn down to zero.
func (p *Physics) Dead() bool { return p.Health == 0 }
