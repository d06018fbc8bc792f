package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
}

func setupControllerDB(name string) *gorm.DB {
	dsn := fmt.Sprintf("file:ctrl_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.Reservation{},
		&models.Invoice{},
		&models.Refund{},
		&models.Disbursement{},
		&models.ReservationSummary{},
		&models.TableCounter{},
		&models.Customer{},
		&models.User{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

// noopEnqueuer memenuhi services.Enqueuer untuk test tanpa Redis.
type noopEnqueuer struct {
	tasks []*asynq.Task
}

func (n *noopEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	n.tasks = append(n.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func doJSON(router *gin.Engine, method, url string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			panic(err)
		}
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(w *httptest.ResponseRecorder) map[string]any {
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		panic(err)
	}
	return resp
}
