package services

import (
	"errors"

	"github.com/yeremiapane/reservation-app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CounterService membagikan nomor meja harian per (branchCode, date).
// Nomor berjalan naik dari 800 sampai 1100 lalu kembali ke 800.
type CounterService struct {
	db *gorm.DB
}

func NewCounterService(db *gorm.DB) *CounterService {
	return &CounterService{db: db}
}

// ErrCounterContention dikembalikan bila increment kalah terus dari penulis
// lain; caller boleh retry.
var ErrCounterContention = errors.New("table counter contention, allocation failed")

const allocateMaxRetries = 25

// Allocate mengembalikan nomor meja berikutnya untuk pasangan branch+date.
// Pemanggilan pertama membuat counter di 800 dan mengembalikan 800. Setelah
// itu nilai di-increment; begitu hasilnya melewati 1100, counter di-reset
// dan caller menerima 800.
//
// Kedua jalur atomic terhadap penulis lain: create memakai satu INSERT
// ON CONFLICT DO NOTHING, increment memakai satu UPDATE yang dijaga nilai
// sebelumnya (compare-and-set), jadi dua reservasi di branch/hari yang sama
// tidak pernah menerima nomor yang sama.
func (s *CounterService) Allocate(branchCode, date string) (int, error) {
	counter := models.TableCounter{
		BranchCode: branchCode,
		Date:       date,
		Value:      models.TableCounterFloor,
	}

	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "branch_code"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&counter)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 1 {
		return models.TableCounterFloor, nil
	}

	// Counter sudah ada: increment dengan CAS.
	for i := 0; i < allocateMaxRetries; i++ {
		var current models.TableCounter
		if err := s.db.Where("branch_code = ? AND date = ?", branchCode, date).
			First(&current).Error; err != nil {
			return 0, err
		}

		next := current.Value + 1
		if next > models.TableCounterCeiling {
			next = models.TableCounterFloor
		}

		update := s.db.Model(&models.TableCounter{}).
			Where("branch_code = ? AND date = ? AND value = ?", branchCode, date, current.Value).
			Update("value", next)
		if update.Error != nil {
			return 0, update.Error
		}
		if update.RowsAffected == 1 {
			return next, nil
		}
		// Kalah race dengan penulis lain, baca ulang.
	}

	return 0, ErrCounterContention
}
