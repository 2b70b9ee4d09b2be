package httptransport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"artisan-directory/internal/artisan"
	"artisan-directory/internal/contact"
	"artisan-directory/internal/service"
)

const profilePictureField = "profilePicture"

// Options configures NewRouter.
type Options struct {
	ServiceName    string
	AllowedOrigins []string
	// Ping, when set, is consulted by /healthz.
	Ping func(ctx context.Context) error
}

func NewRouter(artisans *service.ArtisanService, contacts *service.ContactService, logger *zap.Logger, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(
		requestID(),
		requestLogger(logger),
		gin.Recovery(),
		corsMiddleware(opts.AllowedOrigins),
		otelgin.Middleware(opts.ServiceName),
	)

	h := &handler{artisans: artisans, contacts: contacts, logger: logger, ping: opts.Ping}

	router.GET("/healthz", h.health)

	api := router.Group("/api")

	artisanRoutes := api.Group("/artisans")
	artisanRoutes.POST("/register", h.registerArtisan)
	artisanRoutes.GET("", h.listArtisans)
	artisanRoutes.GET("/", h.listArtisans)
	artisanRoutes.GET("/search", h.searchArtisans)

	contactRoutes := api.Group("/contact")
	contactRoutes.POST("", h.submitContact)
	contactRoutes.POST("/", h.submitContact)

	return router
}

type handler struct {
	artisans *service.ArtisanService
	contacts *service.ContactService
	logger   *zap.Logger
	ping     func(ctx context.Context) error
}

func (h *handler) health(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			h.logger.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) registerArtisan(c *gin.Context) {
	var reg service.Registration
	if err := c.ShouldBind(&reg); err != nil {
		h.fail(c, fmt.Errorf("%w: bind %s: %w", service.ErrRegistrationFailed, c.ContentType(), err))
		return
	}

	image, err := readProfilePicture(c)
	if err != nil {
		h.fail(c, fmt.Errorf("%w: read %s: %w", service.ErrRegistrationFailed, profilePictureField, err))
		return
	}
	reg.Image = image

	created, err := h.artisans.Register(c.Request.Context(), reg)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Artisan registered successfully",
		"artisan": created,
	})
}

func (h *handler) listArtisans(c *gin.Context) {
	artisans, err := h.artisans.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, artisans)
}

func (h *handler) searchArtisans(c *gin.Context) {
	filter := artisan.Filter{
		State: c.Query("state"),
		City:  c.Query("city"),
	}
	artisans, err := h.artisans.Search(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, artisans)
}

func (h *handler) submitContact(c *gin.Context) {
	var fields contact.Fields
	if err := c.ShouldBind(&fields); err != nil {
		h.fail(c, fmt.Errorf("%w: %w", service.ErrInvalidContact, err))
		return
	}
	msg, err := h.contacts.Submit(c.Request.Context(), fields)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully",
		"contact": msg,
	})
}

// readProfilePicture buffers the optional profile picture in memory. It
// returns nil when the request carries no file.
func readProfilePicture(c *gin.Context) ([]byte, error) {
	header, err := c.FormFile(profilePictureField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return readFileHeader(header)
}

func readFileHeader(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

var failures = []struct {
	err     error
	status  int
	message string
}{
	{service.ErrUploadFailed, http.StatusInternalServerError, "Image upload failed"},
	{service.ErrRegistrationFailed, http.StatusInternalServerError, "Registration failed"},
	{service.ErrFetchFailed, http.StatusInternalServerError, "Failed to fetch artisans"},
	{service.ErrSearchFailed, http.StatusInternalServerError, "Search failed"},
	{service.ErrInvalidContact, http.StatusBadRequest, "Invalid contact message"},
	{service.ErrContactFailed, http.StatusInternalServerError, "Failed to send message"},
}

// fail writes the fixed client message for err. Underlying causes are only
// logged.
func (h *handler) fail(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "Internal server error"
	for _, f := range failures {
		if errors.Is(err, f.err) {
			status, message = f.status, f.message
			break
		}
	}

	body := gin.H{"error": message}
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		body["details"] = verr.Fields
	}

	h.logger.Warn("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.String(requestIDKey, c.GetString(requestIDKey)),
		zap.Error(err))
	c.JSON(status, body)
}
