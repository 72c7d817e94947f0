package migration

import (
	"time"

	"github.com/Fahad602/Dash-KanBan/internal/domain"
	"gorm.io/gorm"
)

// DefaultAnalysts are seeded into an empty analysts table
var DefaultAnalysts = []string{"Joe Smith", "Jarn Gore"}

// Run executes AutoMigrate for the board tables and seeds the analyst roster if empty.
func Run(db *gorm.DB) error {
	// 1. AutoMigrate - 테이블 없으면 생성, 있으면 skip
	if err := db.AutoMigrate(&domain.Analyst{}, &domain.Card{}, &domain.StageTransitionLog{}); err != nil {
		return err
	}

	// 2. Seed - analysts 테이블이 비어있을 때만 기본 애널리스트 삽입
	var count int64
	if err := db.Model(&domain.Analyst{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return seedAnalysts(db)
	}

	return nil
}

func seedAnalysts(db *gorm.DB) error {
	analysts := make([]domain.Analyst, 0, len(DefaultAnalysts))
	for _, name := range DefaultAnalysts {
		analysts = append(analysts, domain.Analyst{Name: name})
	}
	return db.Create(&analysts).Error
}

// SeedDemo inserts the demo card (APPLE INC in Ideas) when no card exists yet.
// It reports whether a card was inserted.
func SeedDemo(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&domain.Card{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	var primary domain.Analyst
	if err := db.Where("name = ?", DefaultAnalysts[0]).First(&primary).Error; err != nil {
		return false, err
	}

	now := time.Now()
	entry := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	due := entry.AddDate(0, 0, 14)
	card := domain.Card{
		Type:             domain.DefaultCardType,
		Stage:            domain.StageIdeas,
		EntryDate:        entry,
		DueDate:          &due,
		StockName:        "APPLE INC",
		AnalystName:      primary.Name,
		PrimaryAnalystID: &primary.ID,
		Sedol:            2046251,
		ISIN:             378331005,
		Link1:            "https://attachment_link",
		Link1Name:        "Attachment",
		Active:           true,
	}
	if err := db.Omit("PrimaryAnalyst", "SecondaryAnalyst").Create(&card).Error; err != nil {
		return false, err
	}
	return true, nil
}
