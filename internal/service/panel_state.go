package service

import "sync"

type panelKey struct {
	viewer string
	cardID uint64
}

// PanelState tracks which attachment panels each viewer has expanded.
// The zero state of every panel is collapsed.
type PanelState struct {
	mu       sync.RWMutex
	expanded map[panelKey]bool
}

// NewPanelState creates an empty PanelState
func NewPanelState() *PanelState {
	return &PanelState{expanded: make(map[panelKey]bool)}
}

// Expanded reports whether viewer has the card's panel open
func (p *PanelState) Expanded(viewer string, cardID uint64) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.expanded[panelKey{viewer, cardID}]
}

// Toggle flips the card's panel for viewer and returns the new state
func (p *PanelState) Toggle(viewer string, cardID uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := panelKey{viewer, cardID}
	if p.expanded[key] {
		delete(p.expanded, key)
		return false
	}
	p.expanded[key] = true
	return true
}

// Collapse closes the card's panel for every viewer
func (p *PanelState) Collapse(cardID uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key := range p.expanded {
		if key.cardID == cardID {
			delete(p.expanded, key)
		}
	}
}
