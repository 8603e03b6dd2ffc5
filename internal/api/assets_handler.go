package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brandkit/internal/audit"
	"github.com/brandkit/internal/document"
	"github.com/brandkit/internal/generate"
	"github.com/brandkit/internal/textanalyzer"
)

type analyzeRequest struct {
	Texts []textanalyzer.TextInput `json:"texts" validate:"required,min=1,dive"`
}

type auditRequest struct {
	Document *document.Node `json:"document" validate:"required"`
}

type auditBatchRequest struct {
	Documents []*document.Node `json:"documents" validate:"required,min=1,dive,required"`
}

type generateResponse struct {
	Asset *generate.Asset `json:"asset"`
	Audit audit.Result    `json:"audit"`
}

func (s *Server) analyze(c echo.Context) error {
	var req analyzeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"texts": textanalyzer.New().Analyze(req.Texts),
	})
}

func (s *Server) generate(c echo.Context) error {
	var req generate.Request
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	asset, err := generate.NewBuilder(s.brand.Current()).Build(req)
	if errors.Is(err, generate.ErrUnknownAssetType) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, generateResponse{
		Asset: asset,
		Audit: s.auditEngine().Audit(asset.Root),
	})
}

func (s *Server) audit(c echo.Context) error {
	var req auditRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.auditEngine().Audit(req.Document))
}

func (s *Server) auditBatch(c echo.Context) error {
	var req auditBatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	results, err := s.auditEngine().AuditBatch(c.Request().Context(), req.Documents)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"results": results})
}

func (s *Server) getBrand(c echo.Context) error {
	cfg := s.brand.Current()
	if cfg == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no brand configuration loaded")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"brand":      cfg,
		"palette":    cfg.Palette(),
		"fonts":      cfg.Fonts(),
		"validation": cfg.Validate(),
	})
}
