package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "aura/internal/errors"
	"aura/internal/model"
	"aura/internal/service"
)

// PDFHandler handles document upload, listing, deletion and study-material
// generation from stored documents.
type PDFHandler struct {
	docService service.DocumentService
	aiService  service.AIService
}

// NewPDFHandler creates a new PDF handler.
func NewPDFHandler(docService service.DocumentService, aiService service.AIService) *PDFHandler {
	return &PDFHandler{docService: docService, aiService: aiService}
}

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	PDF     *service.UploadResult `json:"pdf"`
	Preview string                `json:"preview"`
}

// Upload godoc
// @Summary Upload a PDF for later use as chat context
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param pdf formData file true "PDF file"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /files/upload-pdf [post]
func (h *PDFHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		return apperrors.NewValidationError("No file uploaded")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("No file uploaded")
	}
	defer src.Close()

	result, preview, err := h.docService.Upload(
		c.Request().Context(),
		CurrentUser(c).ID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		src,
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, UploadResponse{
		Success: true,
		Message: "PDF uploaded successfully",
		PDF:     result,
		Preview: preview,
	})
}

// ListResponse wraps the caller's document metadata.
type ListResponse struct {
	Success bool                 `json:"success"`
	PDFs    []model.DocumentInfo `json:"pdfs"`
}

// List godoc
// @Summary List the caller's uploaded PDFs
// @Tags files
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ListResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /files/pdfs [get]
func (h *PDFHandler) List(c echo.Context) error {
	pdfs, err := h.docService.List(c.Request().Context(), CurrentUser(c).ID)
	if err != nil {
		return err
	}
	if pdfs == nil {
		pdfs = []model.DocumentInfo{}
	}
	return c.JSON(http.StatusOK, ListResponse{Success: true, PDFs: pdfs})
}

// GenerateRequest names a stored PDF and the material type to produce.
type GenerateRequest struct {
	PDFID string `json:"pdfId" validate:"required"`
	Type  string `json:"type" validate:"required"`
}

// GenerateResponse carries generated study material.
type GenerateResponse struct {
	Success  bool   `json:"success"`
	Type     string `json:"type"`
	Material string `json:"material"`
}

// Generate godoc
// @Summary Generate study material from a stored PDF
// @Tags files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateRequest true "PDF id and material type"
// @Success 200 {object} GenerateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /files/generate [post]
func (h *PDFHandler) Generate(c echo.Context) error {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("PDF ID and type are required")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.NewValidationError("PDF ID and type are required")
	}

	text, err := h.docService.Text(c.Request().Context(), CurrentUser(c).ID, req.PDFID)
	if err != nil {
		return err
	}

	prompt, system := service.StudyMaterialPrompt(text, req.Type)
	material, err := h.aiService.Complete(c.Request().Context(), prompt, "", system)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, GenerateResponse{
		Success:  true,
		Type:     req.Type,
		Material: material,
	})
}

// Delete godoc
// @Summary Delete a stored PDF and its binary
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param pdfId path string true "PDF id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /files/pdf/{pdfId} [delete]
func (h *PDFHandler) Delete(c echo.Context) error {
	if err := h.docService.Delete(c.Request().Context(), CurrentUser(c).ID, c.Param("pdfId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "PDF deleted successfully",
	})
}
