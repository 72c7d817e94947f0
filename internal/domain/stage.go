package domain

import (
	"fmt"
	"strings"
)

// Stage is a pipeline position of an idea card
type Stage string

const (
	StageIdeas              Stage = "Ideas"
	StageCorrectionOfErrors Stage = "Correction of Errors"
	StageShortNote          Stage = "Short Note"
	StageQA                 Stage = "Q&A"
	StageModel              Stage = "Model"
	StagePreMortem          Stage = "Pre-Mortem"
	StageFullNote           Stage = "Full Note"
	StageBuyList            Stage = "Buy List"
	StageFailList           Stage = "Fail List"
)

// Stages lists every stage in board display order
var Stages = []Stage{
	StageIdeas,
	StageCorrectionOfErrors,
	StageShortNote,
	StageQA,
	StageModel,
	StagePreMortem,
	StageFullNote,
	StageBuyList,
	StageFailList,
}

// zonePrefix prefixes the drop-zone identifiers reported by the board UI.
// Zone N (1-based) is the column of Stages[N-1].
const zonePrefix = "drag_container"

// Valid reports whether s is one of the nine known stages
func (s Stage) Valid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}

// Index returns the display position of s, or -1 for an unknown stage
func (s Stage) Index() int {
	for i, known := range Stages {
		if s == known {
			return i
		}
	}
	return -1
}

// ZoneID returns the drop-zone identifier of the column holding s
func (s Stage) ZoneID() string {
	i := s.Index()
	if i < 0 {
		return ""
	}
	return fmt.Sprintf("%s%d", zonePrefix, i+1)
}

// ParseStage resolves a stage name, ignoring case and surrounding spaces
func ParseStage(name string) (Stage, bool) {
	name = strings.TrimSpace(name)
	for _, known := range Stages {
		if strings.EqualFold(string(known), name) {
			return known, true
		}
	}
	return "", false
}

// StageForZone maps a drop-zone identifier to its stage
func StageForZone(zoneID string) (Stage, bool) {
	for _, known := range Stages {
		if known.ZoneID() == zoneID {
			return known, true
		}
	}
	return "", false
}
