package domain

// AttachmentSlot names one of the six link slots of a card
type AttachmentSlot string

const (
	SlotLink1 AttachmentSlot = "link1"
	SlotLink2 AttachmentSlot = "link2"
	SlotLink3 AttachmentSlot = "link3"
	SlotLink4 AttachmentSlot = "link4"
	SlotLink5 AttachmentSlot = "link5"
	SlotOther AttachmentSlot = "other"
)

// AttachmentSlots lists the slots in display order
var AttachmentSlots = []AttachmentSlot{SlotLink1, SlotLink2, SlotLink3, SlotLink4, SlotLink5, SlotOther}

// Valid reports whether s is a known slot
func (s AttachmentSlot) Valid() bool {
	for _, known := range AttachmentSlots {
		if s == known {
			return true
		}
	}
	return false
}

// URLColumn returns the column holding the slot's URL
func (s AttachmentSlot) URLColumn() string {
	return string(s)
}

// NameColumn returns the column holding the slot's display name
func (s AttachmentSlot) NameColumn() string {
	return string(s) + "_name"
}

// Attachment is one slot's link and display name
type Attachment struct {
	Slot AttachmentSlot `json:"slot"`
	URL  string         `json:"url"`
	Name string         `json:"name"`
}

// Empty reports whether the slot holds no link
func (a Attachment) Empty() bool {
	return a.URL == ""
}

// AttachmentPatch is a sparse write to one slot: nil fields keep the stored column
type AttachmentPatch struct {
	Slot AttachmentSlot
	URL  *string
	Name *string
}

// slotFields returns pointers to the URL and name fields backing slot
func (c *Card) slotFields(slot AttachmentSlot) (url, name *string) {
	switch slot {
	case SlotLink1:
		return &c.Link1, &c.Link1Name
	case SlotLink2:
		return &c.Link2, &c.Link2Name
	case SlotLink3:
		return &c.Link3, &c.Link3Name
	case SlotLink4:
		return &c.Link4, &c.Link4Name
	case SlotLink5:
		return &c.Link5, &c.Link5Name
	case SlotOther:
		return &c.Other, &c.OtherName
	}
	return nil, nil
}

// Attachment returns the link stored in slot
func (c *Card) Attachment(slot AttachmentSlot) Attachment {
	url, name := c.slotFields(slot)
	if url == nil {
		return Attachment{Slot: slot}
	}
	return Attachment{Slot: slot, URL: *url, Name: *name}
}

// SetAttachment overwrites the URL and name of slot; unknown slots are ignored
func (c *Card) SetAttachment(a Attachment) {
	url, name := c.slotFields(a.Slot)
	if url == nil {
		return
	}
	*url = a.URL
	*name = a.Name
}

// Attachments returns all six slots in display order
func (c *Card) Attachments() []Attachment {
	list := make([]Attachment, 0, len(AttachmentSlots))
	for _, slot := range AttachmentSlots {
		list = append(list, c.Attachment(slot))
	}
	return list
}

// HasAttachments reports whether any slot holds a link
func (c *Card) HasAttachments() bool {
	for _, a := range c.Attachments() {
		if !a.Empty() {
			return true
		}
	}
	return false
}
