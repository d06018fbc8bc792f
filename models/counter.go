package models

// TableCounter adalah cursor nomor meja harian per branch. Nilainya selalu
// di rentang [800, 1100] dan kembali ke 800 begitu melewati 1100.
type TableCounter struct {
	ID         uint   `gorm:"primaryKey"`
	BranchCode string `gorm:"type:varchar(50);not null;uniqueIndex:idx_branch_date"`
	Date       string `gorm:"type:varchar(10);not null;uniqueIndex:idx_branch_date"`
	Value      int    `gorm:"not null"`
}

const (
	TableCounterFloor   = 800
	TableCounterCeiling = 1100
)
