package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"pdfpress/internal/config"
	"pdfpress/internal/engine"
	"pdfpress/internal/imaging"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var pdfMagic = []byte("%PDF-")

// HTTPServer exposes the compression pipelines over a small REST API.
// Documents and images share one endpoint; the payload is sniffed.
type HTTPServer struct {
	echo *echo.Echo
	cfg  *config.Config
}

// NewHTTPServer builds the API server. An empty API key disables
// authentication, which is only sensible for local use.
func NewHTTPServer(cfg *config.Config) *HTTPServer {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	s := &HTTPServer{echo: e, cfg: cfg}

	e.GET("/health", s.handleHealth)

	api := e.Group("/api")
	if cfg.APIKey != "" {
		api.Use(s.requireAPIKey)
	}
	api.POST("/compress", s.handleCompress)

	return s
}

// Start blocks serving on the configured address.
func (s *HTTPServer) Start() error {
	s.cfg.Logger.Info("Starting API server", "addr", s.cfg.APIAddr)
	return s.echo.Start(s.cfg.APIAddr)
}

// Handler exposes the underlying handler for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.echo
}

func (s *HTTPServer) requireAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Header.Get("X-API-Key")
		if key == "" {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			key = strings.TrimPrefix(auth, "Bearer ")
		}
		if key != s.cfg.APIKey {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing API key")
		}
		return next(c)
	}
}

func (s *HTTPServer) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "pdfpress",
	})
}

func (s *HTTPServer) handleCompress(c echo.Context) error {
	data, filename, err := readUpload(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(data) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "empty payload")
	}

	level := s.cfg.DefaultLevel
	if v := c.QueryParam("level"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid level")
		}
		level = parsed
	}

	if bytes.HasPrefix(data, pdfMagic) {
		return s.compressDocument(c, data, filename, level)
	}
	return s.compressImage(c, data, level)
}

func (s *HTTPServer) compressDocument(c echo.Context, data []byte, filename string, level int) error {
	out, summary, err := engine.CompressDocument(data, s.cfg.EngineOptions(level))
	if err != nil {
		if errors.Is(err, engine.ErrParseFailed) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "document could not be parsed")
		}
		s.cfg.Logger.Error("Document compression failed", "file", filename, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "compression failed")
	}

	h := c.Response().Header()
	h.Set("X-Original-Size", strconv.FormatInt(summary.OriginalSize, 10))
	h.Set("X-Compressed-Size", strconv.FormatInt(summary.CompressedSize, 10))
	h.Set("X-Streams-Replaced", strconv.Itoa(summary.StreamsReplaced))
	if filename != "" {
		h.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	}
	return c.Blob(http.StatusOK, "application/pdf", out)
}

func (s *HTTPServer) compressImage(c echo.Context, data []byte, level int) error {
	out, format, err := imaging.CompressWithLogger(data, level, c.QueryParam("format"), s.cfg.Logger)
	if err != nil {
		switch {
		case errors.Is(err, imaging.ErrUnsupportedFormat):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, imaging.ErrDecodeFailed):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "payload is neither a PDF nor a decodable image")
		}
		s.cfg.Logger.Error("Image compression failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "compression failed")
	}

	h := c.Response().Header()
	h.Set("X-Original-Size", strconv.Itoa(len(data)))
	h.Set("X-Compressed-Size", strconv.Itoa(len(out)))
	h.Set("X-Output-Format", format)
	return c.Blob(http.StatusOK, contentTypeForFormat(format), out)
}

// readUpload accepts either a multipart form with a "file" field or the
// raw request body.
func readUpload(c echo.Context) ([]byte, string, error) {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, "", err
		}
		return data, fh.Filename, nil
	}

	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, "", err
	}
	return data, "", nil
}

func contentTypeForFormat(format string) string {
	switch format {
	case imaging.FormatPNG:
		return "image/png"
	case imaging.FormatWebP:
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
