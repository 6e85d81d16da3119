// Package outfit scores and searches garment colour plans against a base colour.
package outfit

import (
	"fmt"
	"strings"
)

// Slot is a garment position in an outfit.
type Slot string

const (
	SlotTop       Slot = "top"
	SlotBottom    Slot = "bottom"
	SlotOuterwear Slot = "outerwear"
	SlotFootwear  Slot = "footwear"
	SlotAccessory Slot = "accessory"
)

// Slots returns every slot in display order.
func Slots() []Slot {
	return []Slot{SlotTop, SlotBottom, SlotOuterwear, SlotFootwear, SlotAccessory}
}

// IsValid reports whether s is a known slot.
func (s Slot) IsValid() bool {
	for _, v := range Slots() {
		if s == v {
			return true
		}
	}
	return false
}

// ParseSlot accepts a slot name in any case. "shoes", "accessories" and
// "outer" are accepted as aliases.
func ParseSlot(s string) (Slot, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "shoes", "footwear":
		return SlotFootwear, nil
	case "accessories", "accessory":
		return SlotAccessory, nil
	case "outer", "outerwear":
		return SlotOuterwear, nil
	}
	slot := Slot(name)
	if !slot.IsValid() {
		return "", fmt.Errorf("unknown slot %q (valid slots: %v)", s, Slots())
	}
	return slot, nil
}
