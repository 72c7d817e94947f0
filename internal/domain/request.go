package domain

import "strings"

// CreateCardRequest is the create-card form submission
type CreateCardRequest struct {
	StockName          string  `json:"stock_name" validate:"required,max=200"`
	Type               string  `json:"type" validate:"max=50"`
	DueDate            string  `json:"due_date"` // YYYY-MM-DD
	PrimaryAnalystID   *uint64 `json:"primary_analyst_id"`
	SecondaryAnalystID *uint64 `json:"secondary_analyst_id"`

	Link1     string `json:"link1" validate:"max=1000"`
	Link2     string `json:"link2" validate:"max=1000"`
	Link3     string `json:"link3" validate:"max=1000"`
	Link4     string `json:"link4" validate:"max=1000"`
	Link5     string `json:"link5" validate:"max=1000"`
	Other     string `json:"other" validate:"max=1000"`
	Link1Name string `json:"link1_name" validate:"max=200"`
	Link2Name string `json:"link2_name" validate:"max=200"`
	Link3Name string `json:"link3_name" validate:"max=200"`
	Link4Name string `json:"link4_name" validate:"max=200"`
	Link5Name string `json:"link5_name" validate:"max=200"`
	OtherName string `json:"other_name" validate:"max=200"`
}

// Normalize trims the free-text fields
func (r *CreateCardRequest) Normalize() {
	r.StockName = strings.TrimSpace(r.StockName)
	r.Type = strings.TrimSpace(r.Type)
	r.DueDate = strings.TrimSpace(r.DueDate)
}

// Attachments returns the six submitted slots in display order
func (r *CreateCardRequest) Attachments() []Attachment {
	return []Attachment{
		{Slot: SlotLink1, URL: r.Link1, Name: r.Link1Name},
		{Slot: SlotLink2, URL: r.Link2, Name: r.Link2Name},
		{Slot: SlotLink3, URL: r.Link3, Name: r.Link3Name},
		{Slot: SlotLink4, URL: r.Link4, Name: r.Link4Name},
		{Slot: SlotLink5, URL: r.Link5, Name: r.Link5Name},
		{Slot: SlotOther, URL: r.Other, Name: r.OtherName},
	}
}

// CardEdits is a sparse edit of a card: nil fields are left untouched,
// non-nil fields replace the stored value (an empty string clears it).
type CardEdits struct {
	Link1     *string `json:"link1"`
	Link2     *string `json:"link2"`
	Link3     *string `json:"link3"`
	Link4     *string `json:"link4"`
	Link5     *string `json:"link5"`
	Other     *string `json:"other"`
	Link1Name *string `json:"link1_name"`
	Link2Name *string `json:"link2_name"`
	Link3Name *string `json:"link3_name"`
	Link4Name *string `json:"link4_name"`
	Link5Name *string `json:"link5_name"`
	OtherName *string `json:"other_name"`

	DueDate            *string `json:"due_date"`
	SecondaryAnalystID *uint64 `json:"secondary_analyst_id"`
}

func (e *CardEdits) slotEdits(slot AttachmentSlot) (url, name *string) {
	switch slot {
	case SlotLink1:
		return e.Link1, e.Link1Name
	case SlotLink2:
		return e.Link2, e.Link2Name
	case SlotLink3:
		return e.Link3, e.Link3Name
	case SlotLink4:
		return e.Link4, e.Link4Name
	case SlotLink5:
		return e.Link5, e.Link5Name
	case SlotOther:
		return e.Other, e.OtherName
	}
	return nil, nil
}

// Empty reports whether no field is present
func (e *CardEdits) Empty() bool {
	if e.DueDate != nil || e.SecondaryAnalystID != nil {
		return false
	}
	return !e.TouchesAttachments()
}

// TouchesAttachments reports whether any link or link name is present
func (e *CardEdits) TouchesAttachments() bool {
	for _, slot := range AttachmentSlots {
		url, name := e.slotEdits(slot)
		if url != nil || name != nil {
			return true
		}
	}
	return false
}

// AttachmentPatches returns one patch per slot that has a present field,
// carrying only the fields that are present
func (e *CardEdits) AttachmentPatches() []AttachmentPatch {
	var patches []AttachmentPatch
	for _, slot := range AttachmentSlots {
		url, name := e.slotEdits(slot)
		if url == nil && name == nil {
			continue
		}
		patches = append(patches, AttachmentPatch{Slot: slot, URL: url, Name: name})
	}
	return patches
}

// MoveCardRequest moves a card to a named stage
type MoveCardRequest struct {
	TargetStage string `json:"target_stage" binding:"required"`
}

// SetAttachmentRequest saves a single attachment slot
type SetAttachmentRequest struct {
	URL string `json:"url"`
}

// DropEvent is a drag-and-drop completion reported by the board UI.
// An empty target zone is a drop outside the board.
type DropEvent struct {
	SourceZone    string `json:"source_zone"`
	TargetZone    string `json:"target_zone"`
	DraggedCardID uint64 `json:"dragged_card_id" binding:"required"`
}
