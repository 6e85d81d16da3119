package outfit

import (
	"fmt"

	"github.com/kalil1010/ai-stylist/internal/colour"
)

// Plan maps garment slots to chosen colours. Values are upper-case "#RRGGBB".
// Unset slots are simply absent.
type Plan map[Slot]string

// NewPlan returns an empty plan.
func NewPlan() Plan {
	return make(Plan)
}

// Assign validates hex and stores it for slot.
func (p Plan) Assign(slot Slot, hex string) error {
	if !slot.IsValid() {
		return fmt.Errorf("unknown slot %q", slot)
	}
	norm, err := colour.NormalizeHex(hex)
	if err != nil {
		return fmt.Errorf("assign %s: %w", slot, err)
	}
	p[slot] = norm
	return nil
}

// Reset unsets one slot.
func (p Plan) Reset(slot Slot) {
	delete(p, slot)
}

// Clear unsets every slot.
func (p Plan) Clear() {
	clear(p)
}

// Get returns the colour assigned to slot.
func (p Plan) Get(slot Slot) (string, bool) {
	hex, ok := p[slot]
	return hex, ok
}

// Colours returns the assigned colours in slot order.
func (p Plan) Colours() []string {
	var out []string
	for _, s := range Slots() {
		if hex, ok := p[s]; ok && hex != "" {
			out = append(out, hex)
		}
	}
	return out
}

// Len returns the number of assigned slots.
func (p Plan) Len() int {
	return len(p.Colours())
}

// Hexes returns the plan as a plain string map, the form persisted and sent over the wire.
func (p Plan) Hexes() map[string]string {
	out := make(map[string]string, len(p))
	for s, hex := range p {
		out[string(s)] = hex
	}
	return out
}

// PlanFromHexes builds a plan from a slot-keyed string map, validating every entry.
func PlanFromHexes(m map[string]string) (Plan, error) {
	p := NewPlan()
	for k, hex := range m {
		if hex == "" {
			continue
		}
		slot, err := ParseSlot(k)
		if err != nil {
			return nil, err
		}
		if err := p.Assign(slot, hex); err != nil {
			return nil, err
		}
	}
	return p, nil
}
