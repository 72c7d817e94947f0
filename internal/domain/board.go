package domain

import "time"

// CardRow is the board's view of one card
type CardRow struct {
	ID                uint64       `json:"id"`
	Type              string       `json:"type"`
	Stage             Stage        `json:"stage"`
	EntryDate         time.Time    `json:"entry_date"`
	DueDate           *time.Time   `json:"due_date,omitempty"`
	StockName         string       `json:"stock_name"`
	AnalystName       string       `json:"analyst_name"`
	SecondAnalystName string       `json:"second_analyst_name"`
	Sedol             int64        `json:"sedol"`
	ISIN              int64        `json:"isin"`
	Attachments       []Attachment `json:"attachments"`
	HasAttachments    bool         `json:"has_attachments"`
	Expanded          bool         `json:"expanded"`
}

// NewCardRow builds the view row of card (collapsed)
func NewCardRow(card *Card) CardRow {
	return CardRow{
		ID:                card.ID,
		Type:              card.Type,
		Stage:             card.Stage,
		EntryDate:         card.EntryDate,
		DueDate:           card.DueDate,
		StockName:         card.StockName,
		AnalystName:       card.AnalystName,
		SecondAnalystName: card.SecondAnalystName,
		Sedol:             card.Sedol,
		ISIN:              card.ISIN,
		Attachments:       card.Attachments(),
		HasAttachments:    card.HasAttachments(),
	}
}

// Column is one stage bucket of the board
type Column struct {
	Stage  Stage     `json:"stage"`
	ZoneID string    `json:"zone_id"`
	Cards  []CardRow `json:"cards"`
}

// Board holds the nine stage columns in display order
type Board struct {
	Columns []Column `json:"columns"`
}

// Bucket returns the rows of stage, or nil for an unknown stage
func (b *Board) Bucket(stage Stage) []CardRow {
	for _, col := range b.Columns {
		if col.Stage == stage {
			return col.Cards
		}
	}
	return nil
}

// CardIDs returns the ids of every card on the board
func (b *Board) CardIDs() []uint64 {
	var ids []uint64
	for _, col := range b.Columns {
		for _, row := range col.Cards {
			ids = append(ids, row.ID)
		}
	}
	return ids
}

// StageInfo describes a stage column for the UI
type StageInfo struct {
	Name   Stage  `json:"name"`
	ZoneID string `json:"zone_id"`
	Order  int    `json:"order"`
}

// TransitionResult is the outcome of a move request
type TransitionResult struct {
	Card  *Card               `json:"card,omitempty"`
	Log   *StageTransitionLog `json:"log,omitempty"`
	Moved bool                `json:"moved"`
}

// Board change actions
const (
	ChangeCreated = "created"
	ChangeMoved   = "moved"
	ChangeEdited  = "edited"
	ChangeDeleted = "deleted"
)

// BoardChange describes a committed mutation of the board
type BoardChange struct {
	Action string `json:"action"`
	CardID uint64 `json:"card_id"`
	Stage  Stage  `json:"stage,omitempty"`
}
