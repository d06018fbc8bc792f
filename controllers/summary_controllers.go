package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
)

type SummaryController struct {
	DB *gorm.DB
}

func NewSummaryController(db *gorm.DB) *SummaryController {
	return &SummaryController{DB: db}
}

// CreateSummary -> simpan agregat harian per branch dari tim accounting.
// Kombinasi date + branchCode yang sudah ada tidak dibuat ulang.
func (sc *SummaryController) CreateSummary(c *gin.Context) {
	type ReqBody struct {
		ExternalID           string   `json:"external_id"`
		UserID               *uint    `json:"userId"`
		Date                 string   `json:"date" binding:"required"`
		BranchCode           string   `json:"branchCode" binding:"required"`
		BranchName           string   `json:"branchName"`
		TotalReservations    int      `json:"totalReservations" binding:"required"`
		TotalAmountBeforeMdr float64  `json:"totalAmountBeforeMdr" binding:"required"`
		TotalAmountAfterMdr  float64  `json:"totalAmountAfterMdr" binding:"required"`
		Status               string   `json:"status"`
		ReservationCodes     []string `json:"reservationCodes" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("missing required fields"))
		return
	}

	var existing models.ReservationSummary
	err := sc.DB.Where("date = ? AND branch_code = ?", body.Date, body.BranchCode).First(&existing).Error
	if err == nil {
		utils.InfoLogger.Printf("duplicate summary found for date %s and branch %s", body.Date, body.BranchCode)
		utils.RespondJSON(c, http.StatusOK, "Reservation summary already exists", nil)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	codes, err := json.Marshal(body.ReservationCodes)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	status := body.Status
	if status == "" {
		status = "PENDING"
	}

	summary := models.ReservationSummary{
		ExternalID:           body.ExternalID,
		UserID:               body.UserID,
		Date:                 body.Date,
		BranchCode:           body.BranchCode,
		BranchName:           body.BranchName,
		TotalReservations:    body.TotalReservations,
		TotalAmountBeforeMdr: body.TotalAmountBeforeMdr,
		TotalAmountAfterMdr:  body.TotalAmountAfterMdr,
		Status:               status,
		ReservationCodes:     string(codes),
	}

	if err := sc.DB.Create(&summary).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Reservation summary created successfully", summary)
}

// GetSummariesByBranch -> list summary per branch
func (sc *SummaryController) GetSummariesByBranch(c *gin.Context) {
	branchCode := c.Param("branchCode")

	var summaries []models.ReservationSummary
	if err := sc.DB.Where("branch_code = ?", branchCode).Find(&summaries).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if len(summaries) == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no reservation summary found for this branch"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Success get reservation summary", summaries)
}

// UpdateReservationPosted -> tandai reservasi sudah diposting ke pembukuan
func (sc *SummaryController) UpdateReservationPosted(c *gin.Context) {
	type ReqBody struct {
		ReservationCodes []string `json:"reservationCodes" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil || len(body.ReservationCodes) == 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("missing reservation codes"))
		return
	}

	if err := sc.DB.Model(&models.Reservation{}).
		Where("reservation_code IN ?", body.ReservationCodes).
		Update("is_posted", true).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservations updated successfully", nil)
}
