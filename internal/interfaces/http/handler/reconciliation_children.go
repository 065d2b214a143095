package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	appreconciliation "github.com/iletigo/mutabakat/internal/application/reconciliation"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// AddDetail godoc
// @Summary      Add line item
// @Description  Append a detail line; line_number defaults to the next free number
// @Tags         reconciliations
// @Accept       json
// @Produce      json
// @Param        id      path string true "Reconciliation ID" format(uuid)
// @Param        request body CreateDetailRequest true "Line item"
// @Success      201 {object} DetailCreatedResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reconciliations/{id}/details [post]
func (h *ReconciliationHandler) AddDetail(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req CreateDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	detail, err := h.service.AddDetail(c.Request.Context(), actor, id, reconciliation.DetailInput{
		LineNumber:  req.LineNumber,
		Description: req.Description,
		OurAmount:   req.OurAmount,
		TheirAmount: req.TheirAmount,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, DetailCreatedResponse{
		Message: "detail added",
		Detail:  toLineItemResponse(detail),
	})
}

// ListDetails godoc
// @Summary      List line items
// @Tags         reconciliations
// @Produce      json
// @Param        id path string true "Reconciliation ID" format(uuid)
// @Success      200 {array} DetailResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reconciliations/{id}/details [get]
func (h *ReconciliationHandler) ListDetails(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	details, err := h.service.ListDetails(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]DetailResponse, 0, len(details))
	for i := range details {
		resp = append(resp, toLineItemResponse(&details[i]))
	}
	h.Success(c, resp)
}

// UploadAttachment godoc
// @Summary      Upload attachment
// @Description  Multipart upload; type is extract (pdf, xls, xlsx, csv) or signed_pdf (pdf), at most 10 MiB
// @Tags         reconciliations
// @Accept       multipart/form-data
// @Produce      json
// @Param        id   path     string true "Reconciliation ID" format(uuid)
// @Param        file formData file   true "Document"
// @Param        type formData string true "extract or signed_pdf"
// @Success      200 {object} AttachmentCreatedResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reconciliations/{id}/attachments [post]
func (h *ReconciliationHandler) UploadAttachment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	upload := appreconciliation.Upload{Kind: c.PostForm("type")}
	if upload.Kind == "" {
		upload.Kind = c.PostForm("kind")
	}

	header, err := c.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// the service reports the missing file after checking the parent
	case err != nil:
		if middleware.IsBodyTooLarge(err) {
			h.HandleError(c, reconciliation.ErrAttachmentTooLarge)
			return
		}
		h.BadRequest(c, middleware.ErrInvalidBody)
		return
	default:
		file, err := header.Open()
		if err != nil {
			h.HandleError(c, err)
			return
		}
		defer file.Close()
		upload.FileName = header.Filename
		upload.MimeType = header.Header.Get("Content-Type")
		upload.Size = header.Size
		upload.Content = file
	}

	att, err := h.service.AddAttachment(c.Request.Context(), actor, id, upload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, AttachmentCreatedResponse{
		Message:    "file uploaded",
		Attachment: toAttachmentResponse(att),
	})
}

// ListAttachments godoc
// @Summary      List attachments
// @Tags         reconciliations
// @Produce      json
// @Param        id path string true "Reconciliation ID" format(uuid)
// @Success      200 {array} AttachmentResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reconciliations/{id}/attachments [get]
func (h *ReconciliationHandler) ListAttachments(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	atts, err := h.service.ListAttachments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]AttachmentResponse, 0, len(atts))
	for i := range atts {
		resp = append(resp, toAttachmentViewResponse(&atts[i]))
	}
	h.Success(c, resp)
}

// DownloadAttachment godoc
// @Summary      Download attachment
// @Tags         reconciliations
// @Produce      octet-stream
// @Param        id           path string true "Reconciliation ID" format(uuid)
// @Param        attachmentId path string true "Attachment ID" format(uuid)
// @Success      200 {file} binary
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reconciliations/{id}/attachments/{attachmentId}/download [get]
func (h *ReconciliationHandler) DownloadAttachment(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	attachmentID, ok := h.uuidParam(c, "attachmentId")
	if !ok {
		return
	}

	download, err := h.service.OpenAttachment(c.Request.Context(), id, attachmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer download.Body.Close()

	att := download.Attachment
	c.Header("Content-Disposition", contentDisposition(att.FileName))
	c.Header("Content-Length", strconv.FormatInt(att.FileSize, 10))
	c.Header("Content-Type", att.MimeType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, download.Body); err != nil {
		// headers are already sent
		h.requestLogger(c).Warn("Attachment download interrupted",
			zap.String("attachment_id", att.ID.String()),
			zap.Error(err),
		)
	}
}

// AddComment godoc
// @Summary      Add comment
// @Description  Post to the reconciliation thread; is_internal defaults to true
// @Tags         reconciliations
// @Accept       json
// @Produce      json
// @Param        id      path string true "Reconciliation ID" format(uuid)
// @Param        request body CreateCommentRequest true "Comment"
// @Success      200 {object} CommentCreatedResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reconciliations/{id}/comments [post]
func (h *ReconciliationHandler) AddComment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), actor, id, appreconciliation.CommentInput{
		Content:    req.Content,
		IsInternal: req.IsInternal,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CommentCreatedResponse{
		Message: "comment added",
		Comment: toCommentResponse(comment),
	})
}

// ListComments godoc
// @Summary      List comments
// @Tags         reconciliations
// @Produce      json
// @Param        id path string true "Reconciliation ID" format(uuid)
// @Success      200 {array} CommentResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reconciliations/{id}/comments [get]
func (h *ReconciliationHandler) ListComments(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, toCommentResponse(&comments[i]))
	}
	h.Success(c, resp)
}
