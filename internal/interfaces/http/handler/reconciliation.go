package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	appreconciliation "github.com/iletigo/mutabakat/internal/application/reconciliation"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/interfaces/http/dto"
	"github.com/iletigo/mutabakat/internal/interfaces/http/middleware"
)

// HeaderPDFFilename carries the suggested report file name
const HeaderPDFFilename = "X-PDF-Filename"

// ReconciliationHandler serves the reconciliation record store
type ReconciliationHandler struct {
	BaseHandler
	service *appreconciliation.Service
}

// NewReconciliationHandler creates a new reconciliation handler
func NewReconciliationHandler(service *appreconciliation.Service) *ReconciliationHandler {
	return &ReconciliationHandler{service: service}
}

// Create godoc
// @Summary      Create reconciliation
// @Description  Open a reconciliation with a company, creating or updating the company by code
// @Tags         reconciliations
// @Accept       json
// @Produce      json
// @Param        request body CreateReconciliationRequest true "Reconciliation"
// @Success      201 {object} CreateReconciliationResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reconciliations [post]
func (h *ReconciliationHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req CreateReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	reconDate, err := parseOptionalDate("reconciliation_date", req.ReconciliationDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	dueDate, err := parseOptionalDate("due_date", req.DueDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), actor, appreconciliation.CreateInput{
		CompanyCode:        req.CompanyCode,
		CompanyName:        req.CompanyName,
		ContactPerson:      req.ContactPerson,
		Email:              req.Email,
		Phone:              req.Phone,
		MobilePhone:        req.MobilePhone,
		Type:               req.Type,
		DebtCredit:         req.DebtCredit,
		Amount:             req.Amount,
		ReconciliationDate: reconDate,
		DueDate:            dueDate,
		Description:        req.Description,
		Year:               req.Year,
		Month:              req.Month,
		Priority:           req.Priority,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, CreateReconciliationResponse{
		Data:    toReconciliationResponse(result.Reconciliation),
		Company: toCompanyResponse(result.Company),
		Message: "reconciliation created",
	})
}

// List godoc
// @Summary      List reconciliations
// @Description  Paginated list with status, priority and free text filters
// @Tags         reconciliations
// @Produce      json
// @Param        page        query int    false "Page number" default(1)
// @Param        limit       query int    false "Page size (max 100)" default(10)
// @Param        status      query string false "Status or all"
// @Param        priority    query string false "Priority or all"
// @Param        search      query string false "Matches title, company name and reference number"
// @Param        sort_by     query string false "Sort field" default(created_at)
// @Param        sort_order  query string false "asc or desc" default(desc)
// @Success      200 {object} ReconciliationListResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reconciliations [get]
func (h *ReconciliationHandler) List(c *gin.Context) {
	filter, query, ok := h.bindFilter(c)
	if !ok {
		return
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]ReconciliationViewResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toViewResponse(&page.Items[i]))
	}

	h.Success(c, ReconciliationListResponse{
		Data:       items,
		Pagination: dto.NewPagination(page.Page, page.PageSize, page.Total),
		Filters:    echoFilters(query),
	})
}

// Export godoc
// @Summary      Export reconciliations
// @Description  Download every reconciliation matching the list filters as an XLSX workbook
// @Tags         reconciliations
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status      query string false "Status or all"
// @Param        priority    query string false "Priority or all"
// @Param        search      query string false "Free text"
// @Param        sort_by     query string false "Sort field"
// @Param        sort_order  query string false "asc or desc"
// @Success      200 {file} binary
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reconciliations/export [get]
func (h *ReconciliationHandler) Export(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	filter, _, ok := h.bindFilter(c)
	if !ok {
		return
	}

	doc, err := h.service.Export(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.sendDocument(c, doc)
}

// Get godoc
// @Summary      Get reconciliation
// @Description  Reconciliation with company, period, names, details, attachments and comments
// @Tags         reconciliations
// @Produce      json
// @Param        id path string true "Reconciliation ID" format(uuid)
// @Success      200 {object} ReconciliationDetailResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reconciliations/{id} [get]
func (h *ReconciliationHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	view, err := h.service.Get(c.Request.Context(), id, true)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toDetailResponse(view))
}

// Update godoc
// @Summary      Update reconciliation
// @Description  Change status and/or assignee; assigned_to null unassigns
// @Tags         reconciliations
// @Accept       json
// @Produce      json
// @Param        id      path string true "Reconciliation ID" format(uuid)
// @Param        request body object true "status and/or assigned_to"
// @Success      200 {object} ReconciliationViewResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reconciliations/{id} [patch]
func (h *ReconciliationHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	patch, err := appreconciliation.ParsePatch(body)
	if err != nil {
		h.BadRequest(c, middleware.ErrInvalidBody)
		return
	}

	view, err := h.service.UpdatePartial(c.Request.Context(), actor, id, patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toViewResponse(view))
}

// GenerateReport godoc
// @Summary      Generate report
// @Description  Printable reconciliation statement, PDF when a browser is configured and HTML otherwise
// @Tags         reconciliations
// @Produce      application/pdf
// @Produce      text/html
// @Param        id path string true "Reconciliation ID" format(uuid)
// @Success      200 {file} binary
// @Header       200 {string} X-PDF-Filename "Suggested file name"
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reconciliations/{id}/pdf [post]
func (h *ReconciliationHandler) GenerateReport(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.service.GenerateReport(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header(HeaderPDFFilename, doc.FileName)
	h.sendDocument(c, doc)
}

func (h *ReconciliationHandler) bindFilter(c *gin.Context) (reconciliation.ListFilter, ListReconciliationsQuery, bool) {
	var query ListReconciliationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return reconciliation.ListFilter{}, query, false
	}

	filter, err := reconciliation.NewListFilter(query.Page, query.Limit, query.Status, query.Priority,
		query.Search, query.SortBy, query.SortOrder)
	if err != nil {
		h.HandleError(c, err)
		return reconciliation.ListFilter{}, query, false
	}
	return filter, query, true
}

func echoFilters(q ListReconciliationsQuery) ListFilters {
	f := ListFilters{Status: q.Status, Priority: q.Priority, Search: q.Search}
	if f.Status == "" {
		f.Status = reconciliation.FilterAll
	}
	if f.Priority == "" {
		f.Priority = reconciliation.FilterAll
	}
	return f
}

func (h *ReconciliationHandler) sendDocument(c *gin.Context, doc *appreconciliation.Document) {
	c.Header("Content-Disposition", contentDisposition(doc.FileName))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

