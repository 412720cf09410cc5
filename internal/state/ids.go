package state

import (
	"fmt"
	"strings"
)

// NeurotransmitterID names a registered neurotransmitter, e.g. "DA" or "NE".
type NeurotransmitterID string

// ReceptorID names a receptor subtype. The segment before the first
// underscore identifies the governing neurotransmitter: "DA_D1" is a
// dopamine receptor. Single-segment ids such as "OXTR" govern themselves.
type ReceptorID string

// Validate reports whether the id is usable as a registry key.
func (id NeurotransmitterID) Validate() error {
	if strings.TrimSpace(string(id)) == "" {
		return fmt.Errorf("neurotransmitter id must not be empty")
	}
	return nil
}

// Validate reports whether the id is usable as a registry key.
func (id ReceptorID) Validate() error {
	if strings.TrimSpace(string(id)) == "" {
		return fmt.Errorf("receptor id must not be empty")
	}
	return nil
}

// Neurotransmitter returns the governing neurotransmitter id encoded in the
// receptor id prefix.
func (id ReceptorID) Neurotransmitter() NeurotransmitterID {
	s := string(id)
	if i := strings.Index(s, "_"); i >= 0 {
		return NeurotransmitterID(s[:i])
	}
	return NeurotransmitterID(s)
}
