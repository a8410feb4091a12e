package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/anime-shed/doc-insight-go/internal/config"
	apperrors "github.com/anime-shed/doc-insight-go/internal/errors"
	"github.com/anime-shed/doc-insight-go/internal/logger"
	"github.com/anime-shed/doc-insight-go/internal/observer"
	"github.com/anime-shed/doc-insight-go/internal/service"
	"github.com/anime-shed/doc-insight-go/pkg/models"
)

// RequestIDHeader carries the correlation id in both directions
const RequestIDHeader = "X-Request-ID"

const uploadField = "file"

// MetricsSource exposes the in-process extraction counters
type MetricsSource interface {
	Snapshot() observer.Metrics
}

func NewHandler(svc service.DocumentService, metrics MetricsSource, cfg *config.Config) http.Handler {
	r := gin.New()

	// Add middleware
	r.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(),
	)
	if mw := corsMiddleware(cfg.CORSAllowedOrigins); mw != nil {
		r.Use(mw)
	}
	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		requestTimeout(cfg.RequestTimeout),
		errorHandler(),
	)

	// Configure routes
	r.GET("/health", healthCheck)
	r.GET("/metrics", metricsSnapshot(metrics))
	r.POST("/process-document", processDocument(svc))
	r.POST("/analyze-content", analyzeContent(svc))
	r.POST("/process-url", processURL(svc))

	return r
}

func processDocument(svc service.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, contentType, ok := readUpload(c)
		if !ok {
			return
		}

		result, err := svc.ProcessDocument(c.Request.Context(), data, contentType)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.NewProcessingResponse(result))
	}
}

func analyzeContent(svc service.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, contentType, ok := readUpload(c)
		if !ok {
			return
		}

		result, err := svc.AnalyzeContent(c.Request.Context(), data, contentType)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.NewAnalysisResponse(result))
	}
}

func processURL(svc service.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.URLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if tooLarge, ok := bodyTooLarge(err); ok {
				respondError(c, tooLarge)
				return
			}
			respondError(c, apperrors.NewValidationError("Invalid request format", err))
			return
		}

		logger.FromContext(c.Request.Context()).WithFields(logrus.Fields{
			"url":     req.URL,
			"analyze": req.Analyze,
		}).Debug("Fetching remote document")

		result, err := svc.ProcessURL(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}

		if result.Analysis != nil {
			resp := models.NewAnalysisResponse(result.Analysis)
			resp.Accuracy = result.Accuracy
			c.JSON(http.StatusOK, resp)
			return
		}
		resp := models.NewProcessingResponse(result.Extraction)
		resp.Accuracy = result.Accuracy
		c.JSON(http.StatusOK, resp)
	}
}

// readUpload reads the multipart file and its declared content type. It
// writes the error response itself and reports false on failure.
func readUpload(c *gin.Context) ([]byte, string, bool) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			respondError(c, apperrors.NewValidationError("No file uploaded", err))
		} else if tooLarge, ok := bodyTooLarge(err); ok {
			respondError(c, tooLarge)
		} else {
			respondError(c, apperrors.NewValidationError("Invalid multipart form", err))
		}
		return nil, "", false
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, apperrors.NewValidationError("Failed to read uploaded file", err))
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, apperrors.NewValidationError("Failed to read uploaded file", err))
		return nil, "", false
	}

	contentType := header.Header.Get("Content-Type")
	logger.FromContext(c.Request.Context()).WithFields(logrus.Fields{
		"filename":     header.Filename,
		"content_type": contentType,
		"size":         len(data),
	}).Info("Document received")

	return data, contentType, true
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func metricsSnapshot(metrics MetricsSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.JSON(http.StatusOK, observer.Metrics{})
			return
		}
		c.JSON(http.StatusOK, metrics.Snapshot())
	}
}

// Middleware and helper functions
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		entry := logger.FromContext(c.Request.Context()).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		})
		entry.WithField("user_agent", c.Request.UserAgent()).Debug("Request started")

		c.Next()

		entry.WithFields(logrus.Fields{
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("Request completed")
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}

	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if lo.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// bodyTooLarge converts a request size limiter failure into a 413
func bodyTooLarge(err error) (*apperrors.AppError, bool) {
	var maxErr *http.MaxBytesError
	if !errors.As(err, &maxErr) {
		return nil, false
	}
	return apperrors.NewPayloadTooLargeError(fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit), err), true
}

func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			respondError(c, c.Errors.Last().Err)
		}
	}
}

func respondError(c *gin.Context, err error) {
	appErr := apperrors.As(err)
	if errors.Is(err, context.DeadlineExceeded) && appErr.Type == apperrors.ErrorTypeInternal {
		appErr = apperrors.NewTimeoutError("Request timed out", err)
	}

	// Log the error with context
	entry := logger.FromContext(c.Request.Context()).WithError(err).WithFields(logrus.Fields{
		"status_code": appErr.StatusCode,
		"error_type":  appErr.Type,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
	})
	if appErr.StatusCode >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}

	c.AbortWithStatusJSON(appErr.StatusCode, models.ErrorResponse{
		Error:   http.StatusText(appErr.StatusCode),
		Message: appErr.Public(),
	})
}
