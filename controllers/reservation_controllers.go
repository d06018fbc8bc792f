package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
)

type ReservationController struct {
	DB *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

// formatInputDate menerima "2 Jan 2006" dari frontend dan menyimpan "2006-01-02".
func formatInputDate(s string) (string, error) {
	d, err := time.Parse("2 Jan 2006", s)
	if err != nil {
		return "", fmt.Errorf("invalid date format")
	}
	return d.Format("2006-01-02"), nil
}

func formatInputTime(s string) (string, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", fmt.Errorf("invalid time format")
	}
	return t.Format("15:04"), nil
}

// CreateReservation -> buat reservasi (status='PENDING')
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	type ReqBody struct {
		Customer        models.ReservationCustomer `json:"customer" binding:"required"`
		BranchCode      string                     `json:"branchCode" binding:"required"`
		BranchName      string                     `json:"branchName" binding:"required"`
		ReservationCode string                     `json:"reservationCode"`
		Date            string                     `json:"date" binding:"required"`
		Time            string                     `json:"time" binding:"required"`
		Guest           int                        `json:"guest" binding:"required"`
		Amount          float64                    `json:"amount"`
		Tax             float64                    `json:"tax"`
		CookingCharge   float64                    `json:"cookingCharge"`
		TotalAmount     float64                    `json:"totalAmount"`
		IsDisbursed     bool                       `json:"isDisbursed"`
		Note            *string                    `json:"note"`
		Items           json.RawMessage            `json:"items"`
		TableAreaName   *string                    `json:"tableAreaName"`
		TableName       *string                    `json:"tableName"`
		ArrivalStatus   *string                    `json:"arrivalStatus"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	date, err := formatInputDate(body.Date)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	timeStr, err := formatInputTime(body.Time)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation := models.Reservation{
		Customer:        body.Customer,
		BranchCode:      body.BranchCode,
		BranchName:      body.BranchName,
		ReservationCode: body.ReservationCode,
		Date:            date,
		Time:            timeStr,
		Guest:           body.Guest,
		Status:          models.ReservationPending,
		Amount:          body.Amount,
		Tax:             body.Tax,
		CookingCharge:   body.CookingCharge,
		TotalAmount:     body.TotalAmount,
		Mdr:             models.MDRRate,
		IsDisbursed:     body.IsDisbursed,
		Note:            body.Note,
		Items:           string(body.Items),
		TableAreaName:   body.TableAreaName,
		TableName:       body.TableName,
		ArrivalStatus:   body.ArrivalStatus,
	}

	if err := rc.DB.Create(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

// GetAllReservations -> list seluruh reservasi
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	var reservations []models.Reservation
	if err := rc.DB.Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Success get reservations", reservations)
}

// GetReservationByID -> detail 1 reservasi
func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid reservation id"))
		return
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("reservation not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Success get reservation", reservation)
}

// GetReservationsByBranch -> list per branch dengan filter opsional
// branchName / date / status dari query string.
func (rc *ReservationController) GetReservationsByBranch(c *gin.Context) {
	branchCode := c.Param("branchCode")

	query := rc.DB.Where("branch_code = ?", branchCode)
	if branchName := c.Query("branchName"); branchName != "" {
		query = query.Where("branch_name = ?", branchName)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if len(reservations) == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no reservations found for this branch"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Success get reservations", reservations)
}

// GetReservationDashboard -> seluruh reservasi satu branch untuk dashboard
func (rc *ReservationController) GetReservationDashboard(c *gin.Context) {
	branchCode := c.Param("branchCode")

	var reservations []models.Reservation
	if err := rc.DB.Where("branch_code = ?", branchCode).Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if len(reservations) == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no reservations found for this branch"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Success get reservations", reservations)
}

// UpdateReservation -> update parsial; field nil tidak disentuh
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid reservation id"))
		return
	}

	type ReqBody struct {
		Customer        *models.ReservationCustomer `json:"customer"`
		BranchCode      *string                     `json:"branchCode"`
		BranchName      *string                     `json:"branchName"`
		ReservationCode *string                     `json:"reservationCode"`
		Date            *string                     `json:"date"`
		Time            *string                     `json:"time"`
		Guest           *int                        `json:"guest"`
		Status          *string                     `json:"status"`
		Amount          *float64                    `json:"amount"`
		Tax             *float64                    `json:"tax"`
		CookingCharge   *float64                    `json:"cookingCharge"`
		TotalAmount     *float64                    `json:"totalAmount"`
		IsDisbursed     *bool                       `json:"isDisbursed"`
		Note            *string                     `json:"note"`
		Items           json.RawMessage             `json:"items"`
		TableAreaName   *string                     `json:"tableAreaName"`
		TableName       *string                     `json:"tableName"`
		ArrivalStatus   *string                     `json:"arrivalStatus"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]any{}
	if body.Customer != nil {
		updates["customer_name"] = body.Customer.Name
		updates["customer_phone"] = body.Customer.Phone
		updates["customer_email"] = body.Customer.Email
	}
	if body.BranchCode != nil {
		updates["branch_code"] = *body.BranchCode
	}
	if body.BranchName != nil {
		updates["branch_name"] = *body.BranchName
	}
	if body.ReservationCode != nil {
		updates["reservation_code"] = *body.ReservationCode
	}
	if body.Date != nil {
		date, err := formatInputDate(*body.Date)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		updates["date"] = date
	}
	if body.Time != nil {
		timeStr, err := formatInputTime(*body.Time)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		updates["time"] = timeStr
	}
	if body.Guest != nil {
		updates["guest"] = *body.Guest
	}
	if body.Status != nil {
		updates["status"] = *body.Status
	}
	if body.Amount != nil {
		updates["amount"] = *body.Amount
	}
	if body.Tax != nil {
		updates["tax"] = *body.Tax
	}
	if body.CookingCharge != nil {
		updates["cooking_charge"] = *body.CookingCharge
	}
	if body.TotalAmount != nil {
		updates["total_amount"] = *body.TotalAmount
	}
	if body.IsDisbursed != nil {
		updates["is_disbursed"] = *body.IsDisbursed
	}
	if body.Note != nil {
		updates["note"] = *body.Note
	}
	if len(body.Items) > 0 {
		updates["items"] = string(body.Items)
	}
	if body.TableAreaName != nil {
		updates["table_area_name"] = *body.TableAreaName
	}
	if body.TableName != nil {
		updates["table_name"] = *body.TableName
	}
	if body.ArrivalStatus != nil {
		updates["arrival_status"] = *body.ArrivalStatus
	}

	res := rc.DB.Model(&models.Reservation{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("reservation not found"))
		return
	}

	var updated models.Reservation
	if err := rc.DB.First(&updated, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation updated successfully", updated)
}

// DeleteReservation -> hapus reservasi
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid reservation id"))
		return
	}

	res := rc.DB.Delete(&models.Reservation{}, id)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("reservation not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation deleted successfully", nil)
}
