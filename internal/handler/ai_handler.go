package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "aura/internal/errors"
	"aura/internal/service"
)

// AIHandler handles the AI generation endpoints. Each endpoint assembles a
// prompt for its use case and delegates to the completion service.
type AIHandler struct {
	aiService  service.AIService
	docService service.DocumentService
}

// NewAIHandler creates a new AI handler.
func NewAIHandler(aiService service.AIService, docService service.DocumentService) *AIHandler {
	return &AIHandler{aiService: aiService, docService: docService}
}

// CompletionResponse is the shared success shape of the AI endpoints.
type CompletionResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

// ChatRequest is a free-chat request.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
	Mode    string `json:"mode"`
}

// Chat godoc
// @Summary Free chat with the assistant
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChatRequest true "Chat message"
// @Success 200 {object} CompletionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /ai/chat [post]
func (h *AIHandler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("Message is required")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.NewValidationError("Message is required")
	}

	response, err := h.aiService.Complete(c.Request().Context(), req.Message, "", service.ChatSystemPrompt(req.Mode))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CompletionResponse{Success: true, Response: response})
}

// PDFChatRequest is a document-grounded chat request. PDFID optionally names
// one document; when absent, all of the caller's documents supply context.
type PDFChatRequest struct {
	Message string `json:"message" validate:"required"`
	PDFID   string `json:"pdfId"`
}

// PDFChat godoc
// @Summary Chat grounded in uploaded PDF content
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PDFChatRequest true "Chat message with optional pdfId"
// @Success 200 {object} CompletionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /ai/pdf-chat [post]
func (h *AIHandler) PDFChat(c echo.Context) error {
	var req PDFChatRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("Message is required")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.NewValidationError("Message is required")
	}

	contextText, err := h.docService.Context(c.Request().Context(), CurrentUser(c).ID, req.PDFID)
	if err != nil {
		return err
	}

	response, err := h.aiService.Complete(c.Request().Context(), req.Message, contextText, service.PDFChatSystemPrompt())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CompletionResponse{Success: true, Response: response})
}

// QuestionsRequest configures question generation. Count is a pointer so an
// explicit zero is honored; only an absent field falls back to the default.
type QuestionsRequest struct {
	Topics string `json:"topics"`
	Type   string `json:"type"`
	Count  *int   `json:"count"`
}

// GenerateQuestions godoc
// @Summary Generate practice questions
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body QuestionsRequest true "Question parameters"
// @Success 200 {object} CompletionResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /ai/generate-questions [post]
func (h *AIHandler) GenerateQuestions(c echo.Context) error {
	req := QuestionsRequest{Type: "mixed"}
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body")
	}
	if req.Type == "" {
		req.Type = "mixed"
	}
	count := 10
	if req.Count != nil {
		count = *req.Count
	}

	prompt, system := service.QuestionsPrompt(req.Topics, req.Type, count)
	response, err := h.aiService.Complete(c.Request().Context(), prompt, "", system)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CompletionResponse{Success: true, Response: response})
}

// SummarizeRequest configures summarization.
type SummarizeRequest struct {
	Text   string `json:"text" validate:"required"`
	Length string `json:"length"`
}

// Summarize godoc
// @Summary Summarize a block of text
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SummarizeRequest true "Text and summary length"
// @Success 200 {object} CompletionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /ai/summarize [post]
func (h *AIHandler) Summarize(c echo.Context) error {
	req := SummarizeRequest{Length: "medium"}
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("Text is required")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.NewValidationError("Text is required")
	}

	prompt, system := service.SummaryPrompt(req.Text, req.Length)
	response, err := h.aiService.Complete(c.Request().Context(), prompt, "", system)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CompletionResponse{Success: true, Response: response})
}

// NotesRequest configures note generation.
type NotesRequest struct {
	Text   string `json:"text" validate:"required"`
	Format string `json:"format"`
}

// GenerateNotes godoc
// @Summary Generate study notes from text
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NotesRequest true "Text and note format"
// @Success 200 {object} CompletionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /ai/notes [post]
func (h *AIHandler) GenerateNotes(c echo.Context) error {
	req := NotesRequest{Format: "structured"}
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("Text is required")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.NewValidationError("Text is required")
	}

	prompt, system := service.NotesPrompt(req.Text, req.Format)
	response, err := h.aiService.Complete(c.Request().Context(), prompt, "", system)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CompletionResponse{Success: true, Response: response})
}

// QuestionPaperRequest configures exam-paper generation. All fields required.
type QuestionPaperRequest struct {
	Topics     string `json:"topics" validate:"required"`
	Difficulty string `json:"difficulty" validate:"required"`
	Marks      string `json:"marks" validate:"required"`
	Duration   string `json:"duration" validate:"required"`
}

// QuestionPaper godoc
// @Summary Generate a complete exam paper
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body QuestionPaperRequest true "Paper parameters"
// @Success 200 {object} CompletionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /ai/question-paper [post]
func (h *AIHandler) QuestionPaper(c echo.Context) error {
	var req QuestionPaperRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("All fields are required: topics, difficulty, marks, duration")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.NewValidationError("All fields are required: topics, difficulty, marks, duration")
	}

	prompt, system := service.QuestionPaperPrompt(req.Topics, req.Difficulty, req.Marks, req.Duration)
	response, err := h.aiService.Complete(c.Request().Context(), prompt, "", system)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CompletionResponse{Success: true, Response: response})
}

// ExplainRequest configures a concept explanation.
type ExplainRequest struct {
	Concept string `json:"concept" validate:"required"`
	Level   string `json:"level"`
}

// Explain godoc
// @Summary Explain a concept at a chosen level
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExplainRequest true "Concept and audience level"
// @Success 200 {object} CompletionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /ai/explain [post]
func (h *AIHandler) Explain(c echo.Context) error {
	req := ExplainRequest{Level: "intermediate"}
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("Concept is required")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.NewValidationError("Concept is required")
	}

	prompt, system := service.ExplainPrompt(req.Concept, req.Level)
	response, err := h.aiService.Complete(c.Request().Context(), prompt, "", system)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CompletionResponse{Success: true, Response: response})
}
