package domain

import "time"

// DefaultCardType is the type given to cards created without one
const DefaultCardType = "New Ideas"

// Card is one stock idea tracked on the board
type Card struct {
	ID                uint64     `gorm:"primaryKey" json:"id"`
	Type              string     `gorm:"size:50;not null" json:"type"`
	Stage             Stage      `gorm:"size:32;not null;index:idx_cards_stage_active" json:"stage"`
	EntryDate         time.Time  `gorm:"column:entry_date;type:date;not null" json:"entry_date"`
	DueDate           *time.Time `gorm:"column:due_date;type:date" json:"due_date,omitempty"`
	StockName         string     `gorm:"column:stock_name;size:200;not null" json:"stock_name"`
	AnalystName       string     `gorm:"column:analyst_name;size:100" json:"analyst_name"`
	SecondAnalystName string     `gorm:"column:second_analyst_name;size:100" json:"second_analyst_name"`
	Sedol             int64      `gorm:"column:sedol" json:"sedol"`
	ISIN              int64      `gorm:"column:isin" json:"isin"`

	// Attachment slots (URL + display name)
	Link1     string `gorm:"column:link1;size:1000" json:"link1"`
	Link2     string `gorm:"column:link2;size:1000" json:"link2"`
	Link3     string `gorm:"column:link3;size:1000" json:"link3"`
	Link4     string `gorm:"column:link4;size:1000" json:"link4"`
	Link5     string `gorm:"column:link5;size:1000" json:"link5"`
	Other     string `gorm:"column:other;size:1000" json:"other"`
	Link1Name string `gorm:"column:link1_name;size:200" json:"link1_name"`
	Link2Name string `gorm:"column:link2_name;size:200" json:"link2_name"`
	Link3Name string `gorm:"column:link3_name;size:200" json:"link3_name"`
	Link4Name string `gorm:"column:link4_name;size:200" json:"link4_name"`
	Link5Name string `gorm:"column:link5_name;size:200" json:"link5_name"`
	OtherName string `gorm:"column:other_name;size:200" json:"other_name"`

	PrimaryAnalystID   *uint64 `gorm:"column:primary_analyst_id;index" json:"primary_analyst_id,omitempty"`
	SecondaryAnalystID *uint64 `gorm:"column:secondary_analyst_id;index" json:"secondary_analyst_id,omitempty"`
	Active             bool    `gorm:"not null;default:true;index:idx_cards_stage_active" json:"active"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	PrimaryAnalyst   *Analyst `gorm:"foreignKey:PrimaryAnalystID" json:"-"`
	SecondaryAnalyst *Analyst `gorm:"foreignKey:SecondaryAnalystID" json:"-"`
}

// TableName GORM 테이블명
func (Card) TableName() string {
	return "cards"
}

// Analyst is a display name cards can be assigned to
type Analyst struct {
	ID   uint64 `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

// TableName GORM 테이블명
func (Analyst) TableName() string {
	return "analysts"
}

// StageTransitionLog is the append-only audit row of one stage change
type StageTransitionLog struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	CardID    uint64    `gorm:"column:card_id;not null;index:idx_stage_log_card" json:"card_id"`
	Timestamp time.Time `gorm:"not null;index:idx_stage_log_card" json:"timestamp"`
	OldStage  Stage     `gorm:"column:old_stage;size:32;not null" json:"old_stage"`
	NewStage  Stage     `gorm:"column:new_stage;size:32;not null" json:"new_stage"`

	Card *Card `gorm:"foreignKey:CardID" json:"-"`
}

// TableName GORM 테이블명
func (StageTransitionLog) TableName() string {
	return "stage_transition_logs"
}
