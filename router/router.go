package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/controllers"
	"github.com/yeremiapane/reservation-app/middlewares"
	"github.com/yeremiapane/reservation-app/services"
)

// Daftar role per area, mengikuti pembagian akses tim accounting dan GRO.
var (
	accountingRoles = []string{
		"IT", "Business Development", "Manager Accounting",
		"Assistant Manager Accounting", "Head Accounting", "Accounting",
	}
	refundAdminRoles = []string{
		"IT", "Business Development", "Manager Accounting",
		"Assistant Manager Accounting", "Head Accounting",
	}
	dashboardRoles = []string{
		"IT", "Business Development", "Manager Accounting",
		"Assistant Manager Accounting", "Head Accounting", "GRO",
	}
	adminRoles = []string{"IT"}
)

// Deps memegang seluruh dependency yang dibutuhkan controller.
type Deps struct {
	DB       *gorm.DB
	Invoices *services.InvoiceService
	Webhooks *services.WebhookService
	Otp      *services.OtpService
	Xendit   services.XenditClient
	Grist    *services.GristService
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi controller
	invoiceCtrl := controllers.NewInvoiceController(deps.DB, deps.Invoices, deps.Webhooks)
	reservationCtrl := controllers.NewReservationController(deps.DB)
	refundCtrl := controllers.NewRefundController(deps.DB)
	disbursementCtrl := controllers.NewDisbursementController(deps.DB, deps.Xendit, deps.Webhooks)
	summaryCtrl := controllers.NewSummaryController(deps.DB)
	customerCtrl := controllers.NewCustomerController(deps.DB, deps.Otp)
	userCtrl := controllers.NewUserController(deps.DB, deps.Otp)
	catalogCtrl := controllers.NewCatalogController(deps.Grist)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Payment flow + webhook provider
	r.POST("/create_invoice", invoiceCtrl.CreateInvoice)
	r.POST("/xendit_webhook", invoiceCtrl.XenditWebhook)
	r.POST("/webhook_disbursement", disbursementCtrl.DisbursementWebhook)

	// Reservasi dibuat dari sisi customer, tanpa auth
	r.POST("/reservation", reservationCtrl.CreateReservation)
	r.GET("/reservation", reservationCtrl.GetAllReservations)
	r.GET("/reservation/:id", reservationCtrl.GetReservationByID)
	r.PUT("/reservation/:id", reservationCtrl.UpdateReservation)
	r.DELETE("/reservation/:id", reservationCtrl.DeleteReservation)
	r.GET("/reservation_branch/:branchCode", reservationCtrl.GetReservationsByBranch)

	// Registrasi + OTP customer
	r.POST("/customer", customerCtrl.CreateCustomer)
	r.POST("/customer_gro", customerCtrl.CreateCustomerGro)
	r.POST("/resend-otp", customerCtrl.ResendOtp)
	r.POST("/verify-otp", customerCtrl.VerifyOtp)
	r.GET("/customer/:id", customerCtrl.GetCustomerByID)
	r.PUT("/customer/:id", customerCtrl.UpdateCustomer)

	// Login staff, dibatasi rate limiter
	login := r.Group("/")
	login.Use(middlewares.NewLoginRateLimiter())
	{
		login.POST("/user/login", userCtrl.Login)
	}

	// Katalog referensi dari Grist
	r.GET("/branch", catalogCtrl.GetBranches)
	r.GET("/branch/:code", catalogCtrl.GetBranchByCode)
	r.GET("/branch_category", catalogCtrl.GetBranchCategories)
	r.GET("/branch_quota/:code", catalogCtrl.GetBranchQuota)
	r.GET("/table_area/:code", catalogCtrl.GetTableAreas)
	r.GET("/table_section/:code", catalogCtrl.GetTableSections)
	r.GET("/table/:section", catalogCtrl.GetTablesBySection)
	r.GET("/item_menu", catalogCtrl.GetItemMenu)
	r.GET("/item_menu/:code", catalogCtrl.GetItemMenuByBranch)
	r.GET("/category_item_menu", catalogCtrl.GetCategoryItemMenu)
	r.GET("/category_item_menu/:code", catalogCtrl.GetCategoryItemMenuByBranch)
	r.GET("/option", catalogCtrl.GetOptions)
	r.GET("/option/:code", catalogCtrl.GetOptionsByBranch)
	r.GET("/item_option", catalogCtrl.GetItemOptions)
	r.GET("/option_category/:categoryItemId", catalogCtrl.GetItemOptionsByCategory)
	r.GET("/option_menu/:menusId", catalogCtrl.GetItemOptionsByMenu)
	r.GET("/item_package", catalogCtrl.GetItemPackages)
	r.GET("/item_package/:code", catalogCtrl.GetItemPackagesByBranch)

	// ----------------------------------------------------------------
	//                      PROTECTED ROUTES
	// ----------------------------------------------------------------
	accounting := r.Group("/")
	accounting.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles(accountingRoles...))
	{
		accounting.GET("/invoice/:branchCode", invoiceCtrl.GetInvoicesByBranch)
		accounting.PATCH("/invoices/:external_id", invoiceCtrl.UpdateRefundStatus)
		accounting.POST("/refund", refundCtrl.CreateRefund)
		accounting.POST("/create_disbursement", disbursementCtrl.CreateDisbursement)
		accounting.GET("/get_disbursements", disbursementCtrl.GetDisbursements)
	}

	refundAdmin := r.Group("/")
	refundAdmin.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles(refundAdminRoles...))
	{
		refundAdmin.GET("/refunds/:branchCode", refundCtrl.GetRefundsByBranch)
		refundAdmin.PATCH("/refund/:external_id", refundCtrl.UpdateRefundStatus)
	}

	dashboard := r.Group("/")
	dashboard.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles(dashboardRoles...))
	{
		dashboard.POST("/reservation_summary", summaryCtrl.CreateSummary)
		dashboard.GET("/reservation_summary/:branchCode", summaryCtrl.GetSummariesByBranch)
		dashboard.POST("/update_reservation_posted", summaryCtrl.UpdateReservationPosted)
		dashboard.GET("/reservation_dashboard/:branchCode", reservationCtrl.GetReservationDashboard)
		dashboard.GET("/customer", customerCtrl.GetAllCustomers)
	}

	admin := r.Group("/")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles(adminRoles...))
	{
		admin.POST("/user", userCtrl.CreateUser)
		admin.GET("/user", userCtrl.GetAllUsers)
		admin.PUT("/user/:id", userCtrl.UpdateUser)
		admin.PATCH("/user_status/:id", userCtrl.UpdateUserStatus)
	}

	return r
}
