package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jspector2018/podifyai/application/ports/inbound"
	"github.com/jspector2018/podifyai/application/ports/outbound"
	"github.com/jspector2018/podifyai/domain"
	"github.com/jspector2018/podifyai/infrastructure/gin_interface/dto"
	"github.com/jspector2018/podifyai/middleware"
)

type ConversionsController interface {
	Convert(c *gin.Context)
	List(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type conversionsController struct {
	logger   outbound.LoggerPort
	pipeline inbound.ConversionPipelinePort
}

func NewConversionsController(logger outbound.LoggerPort, pipeline inbound.ConversionPipelinePort) ConversionsController {
	return &conversionsController{
		logger:   logger,
		pipeline: pipeline,
	}
}

func (ctrl *conversionsController) Convert(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	if userID == "" {
		ctrl.respondError(c, domain.NewAuthError("Unauthorized"))
		return
	}

	var req dto.ConvertRequest
	if err := c.ShouldBind(&req); err != nil {
		ctrl.respondError(c, domain.NewValidationError("Missing required fields"))
		return
	}

	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		ctrl.respondError(c, domain.NewValidationError("Missing required fields"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctrl.respondError(c, domain.NewValidationError("Failed to read uploaded file"))
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			ctrl.logger.Error(err, "Failed to close uploaded file")
		}
	}()

	pdfContent, err := io.ReadAll(file)
	if err != nil {
		ctrl.respondError(c, domain.NewValidationError("Failed to read uploaded file"))
		return
	}

	result, err := ctrl.pipeline.Convert(c.Request.Context(), inbound.ConvertRequest{
		UserID:   userID,
		FileName: fileHeader.Filename,
		PDF:      pdfContent,
		Style:    domain.Style(req.Style),
		Voice:    domain.Voice(req.Voice),
	})
	if err != nil {
		ctrl.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{
		Success:      true,
		AudioURL:     result.AudioURL,
		Script:       result.Script,
		ConversionID: result.ConversionID,
	})
}

func (ctrl *conversionsController) List(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	if userID == "" {
		ctrl.respondError(c, domain.NewAuthError("Unauthorized"))
		return
	}

	conversions, err := ctrl.pipeline.ListConversions(c.Request.Context(), userID)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}

	responses := make([]dto.ConversionResponse, 0, len(conversions))
	for _, conv := range conversions {
		responses = append(responses, dto.FromConversion(conv))
	}

	c.JSON(http.StatusOK, dto.ListConversionsResponse{Conversions: responses})
}

// respondError normalizes every pipeline failure to a JSON error body;
// errors outside the domain taxonomy map to a plain 500.
func (ctrl *conversionsController) respondError(c *gin.Context, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		if domainErr.Kind == domain.ErrGeneration || domainErr.Kind == domain.ErrSynthesis || domainErr.Kind == domain.ErrPersistence {
			ctrl.logger.Error(err, "Conversion pipeline failed")
		}
		c.JSON(domainErr.HTTPStatus(), gin.H{"error": domainErr.Message})
		return
	}

	ctrl.logger.Error(err, "Unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func (ctrl *conversionsController) RegisterRoutes(g *gin.Engine) {
	api := g.Group("/api")
	api.POST("/convert", ctrl.Convert)
	api.GET("/conversions", ctrl.List)
}
