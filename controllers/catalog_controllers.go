package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

// Daftar field per tabel adalah kontrak dengan skema dokumen Grist.
// Kalau skema dokumen berubah, daftar di sini ikut di-update.
var (
	branchFields = []string{
		"BranchName", "BranchPhone", "BranchID", "BranchNotes", "CreatedAt",
		"UpdatedAt", "Status", "IDCategory", "BranchCode", "BranchWeekDayOpen",
		"BranchWeekEndOpen", "BranchWeekDayClosed", "BranchImage",
		"BranchMinimumPurchase", "BranchWeekEndClosed", "BranchAddress",
		"BranchCategoryName", "BranchCategoryID",
	}
	branchCategoryFields = []string{
		"BranchCategoryCode", "BranchCategoryName", "BranchCategoryID",
	}
	branchQuotaFields = []string{
		"IDBranch", "BranchQuotaTime", "BranchQuotaPax", "BranchQuotaID",
		"BranchName", "BranchCode",
	}
	tableAreaFields = []string{
		"AreaName", "Status", "TableAreaID", "IDBranch", "AreaCode",
		"CreatedAt", "UpdatedAt", "Order", "BranchID", "BranchCode",
		"AreaImage", "BranchName",
	}
	tableSectionFields = []string{
		"TableSectionID", "IDBranch", "TableSectionImage", "TableSectionName",
		"Status", "CreatedAt", "UpdatedAt", "BranchID", "Order", "BranchName",
		"BranchCode",
	}
	tableFields = []string{
		"TableNumber", "IDTableSection", "TableID", "Status", "CreatedAt",
		"UpdatedAt", "IDBranch", "BranchCode", "TableSectionID",
		"TableSectionName", "BranchName",
	}
	itemMenuFields = []string{
		"MenuName", "Description", "MenuPrice", "MenusID", "CreatedAt",
		"UpdatedAt", "Status", "Order", "MenusCode", "MenusKind",
		"MenuSoldOut", "MenusSellLimit", "IDCategory", "IDBranch",
		"CookingCharge", "MenuPackageDetail", "MenuPackage", "TaxFree",
		"CategoryItemID", "BranchCode", "CategoryName", "BranchName",
		"MenusImage",
	}
	categoryItemMenuFields = []string{
		"CategoryName", "CreatedAt", "UpdatedAt", "Order", "Status",
		"IDBranch", "CategoryItemID", "BranchCode", "BranchID", "BranchName",
		"CategoryImage",
	}
	optionFields = []string{
		"IDOptionsCategory", "OptionsCode", "OptionsHide", "OptionsPriceMod",
		"UpdatedAt", "Status", "OptionsName", "OptionsID", "IDBranch",
		"CreatedAt", "op_id", "BranchName", "BranchCode",
		"OptionsCategoryName", "OptionsCategoryID", "OptionsCategoryText",
	}
	itemOptionFields = []string{
		"IDBranch", "IDOption", "IDCategory", "ItemOptionID", "IDMenu",
		"CreatedAt", "UpdatedAt", "BranchName", "BranchID", "OptionName",
		"OptionsID", "CategoryMenuName", "CategoryItemID", "MenuName",
		"MenusID", "OptionText", "op_id",
	}
	itemPackageFields = []string{
		"ItemPackageDetailID", "IDMenus", "IDPaket", "IDBranch",
		"IDOptionPackage", "AltMenuName", "IDItemOptionPackage",
		"ItemPackageDetailPrice", "PackageID", "PackageName",
		"ItemPackageDetail", "BranchName", "ItemChild_i_id", "OptionPackage",
		"MaxChoosen", "BranchCode", "ItemOptionPackage", "Package_op_id",
		"MinChoosen", "AutoInsert", "ItemPackage_i_id",
	}
)

// CatalogController membaca data referensi (branch, meja, menu) dari Grist.
type CatalogController struct {
	Grist *services.GristService
}

func NewCatalogController(grist *services.GristService) *CatalogController {
	return &CatalogController{Grist: grist}
}

func (cc *CatalogController) fetch(c *gin.Context, table string, fields []string) ([]map[string]any, bool) {
	records, err := cc.Grist.FetchRecords(c.Request.Context(), table, fields)
	if err != nil {
		utils.RespondAppError(c, err)
		return nil, false
	}
	return records, true
}

func respondFiltered(c *gin.Context, message string, records []map[string]any, field, want string) {
	filtered := services.FilterRecords(records, field, want)
	if len(filtered) == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("items not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, filtered)
}

// GetBranches -> GET /branch
func (cc *CatalogController) GetBranches(c *gin.Context) {
	records, ok := cc.fetch(c, "Branch", branchFields)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Success get branch", records)
}

// GetBranchByCode -> GET /branch/:code
func (cc *CatalogController) GetBranchByCode(c *gin.Context) {
	records, ok := cc.fetch(c, "Branch", branchFields)
	if !ok {
		return
	}
	respondFiltered(c, "Success get branch by code", records, "BranchCode", c.Param("code"))
}

// GetBranchCategories -> GET /branch_category
func (cc *CatalogController) GetBranchCategories(c *gin.Context) {
	records, ok := cc.fetch(c, "BranchCategory", branchCategoryFields)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Success get branch category", records)
}

// GetBranchQuota -> GET /branch_quota/:code
func (cc *CatalogController) GetBranchQuota(c *gin.Context) {
	records, ok := cc.fetch(c, "BranchQuota", branchQuotaFields)
	if !ok {
		return
	}
	respondFiltered(c, "Success get branch quota by branch", records, "BranchCode", c.Param("code"))
}

// GetTableAreas -> GET /table_area/:code
func (cc *CatalogController) GetTableAreas(c *gin.Context) {
	records, ok := cc.fetch(c, "Tables_Area", tableAreaFields)
	if !ok {
		return
	}
	respondFiltered(c, "Success get table area by branch", records, "BranchCode", c.Param("code"))
}

// GetTableSections -> GET /table_section/:code
func (cc *CatalogController) GetTableSections(c *gin.Context) {
	records, ok := cc.fetch(c, "TablesSection", tableSectionFields)
	if !ok {
		return
	}
	respondFiltered(c, "Success get table section by branch", records, "BranchCode", c.Param("code"))
}

// GetTablesBySection -> GET /table/:section
func (cc *CatalogController) GetTablesBySection(c *gin.Context) {
	records, ok := cc.fetch(c, "Tables", tableFields)
	if !ok {
		return
	}
	respondFiltered(c, "Success get table by section", records, "TableSectionName", c.Param("section"))
}

// GetItemMenu -> GET /item_menu
func (cc *CatalogController) GetItemMenu(c *gin.Context) {
	records, ok := cc.fetch(c, "ItemMenu", itemMenuFields)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Success get item menu", records)
}

// GetItemMenuByBranch -> GET /item_menu/:code
func (cc *CatalogController) GetItemMenuByBranch(c *gin.Context) {
	records, ok := cc.fetch(c, "ItemMenu", itemMenuFields)
	if !ok {
		return
	}
	respondFiltered(c, "Success get item menu by branch", records, "BranchCode", c.Param("code"))
}

// GetCategoryItemMenu -> GET /category_item_menu
func (cc *CatalogController) GetCategoryItemMenu(c *gin.Context) {
	records, ok := cc.fetch(c, "CategoryItemMenu", categoryItemMenuFields)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Success get category item menu", records)
}

// GetCategoryItemMenuByBranch -> GET /category_item_menu/:code
func (cc *CatalogController) GetCategoryItemMenuByBranch(c *gin.Context) {
	records, ok := cc.fetch(c, "CategoryItemMenu", categoryItemMenuFields)
	if !ok {
		return
	}
	respondFiltered(c, "Success get category item menu by branch", records, "BranchCode", c.Param("code"))
}

// GetOptions -> GET /option
func (cc *CatalogController) GetOptions(c *gin.Context) {
	records, ok := cc.fetch(c, "Options", optionFields)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Success get option", records)
}

// GetOptionsByBranch -> GET /option/:code
func (cc *CatalogController) GetOptionsByBranch(c *gin.Context) {
	records, ok := cc.fetch(c, "Options", optionFields)
	if !ok {
		return
	}
	respondFiltered(c, "Success get option by branch", records, "BranchCode", c.Param("code"))
}

// GetItemOptions -> GET /item_option
func (cc *CatalogController) GetItemOptions(c *gin.Context) {
	records, ok := cc.fetch(c, "ItemOption", itemOptionFields)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Success get item option", records)
}

// GetItemOptionsByCategory -> GET /option_category/:categoryItemId
func (cc *CatalogController) GetItemOptionsByCategory(c *gin.Context) {
	records, ok := cc.fetch(c, "ItemOption", itemOptionFields)
	if !ok {
		return
	}
	respondFiltered(c, "Success get item option by category", records, "CategoryItemID", c.Param("categoryItemId"))
}

// GetItemOptionsByMenu -> GET /option_menu/:menusId
func (cc *CatalogController) GetItemOptionsByMenu(c *gin.Context) {
	records, ok := cc.fetch(c, "ItemOption", itemOptionFields)
	if !ok {
		return
	}
	respondFiltered(c, "Success get item option by menu", records, "MenusID", c.Param("menusId"))
}

// GetItemPackages -> GET /item_package
func (cc *CatalogController) GetItemPackages(c *gin.Context) {
	records, ok := cc.fetch(c, "ItemMenuPackage", itemPackageFields)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Success get item package", records)
}

// GetItemPackagesByBranch -> GET /item_package/:code
func (cc *CatalogController) GetItemPackagesByBranch(c *gin.Context) {
	records, ok := cc.fetch(c, "ItemMenuPackage", itemPackageFields)
	if !ok {
		return
	}
	respondFiltered(c, "Success get item package by branch", records, "BranchCode", c.Param("code"))
}
