package handlers

import (
	"errors"
	"net/http"

	"github.com/quickwinfinance/duesflow"
	"github.com/quickwinfinance/duesflow/pkg/dues"
	"github.com/quickwinfinance/duesflow/pkg/templates"
)

// TemplatesHandler serves the message templates.
type TemplatesHandler struct {
	templates *templates.Service
	repo      dues.Repository
	now       dues.Clock
}

func NewTemplates(svc *templates.Service, repo dues.Repository, now dues.Clock) *TemplatesHandler {
	return &TemplatesHandler{templates: svc, repo: repo, now: now}
}

func (h *TemplatesHandler) Routes(r duesflow.Router) {
	r.Route("/api/templates", func(r duesflow.Router) {
		r.GET("/", h.list)
		r.GET("/{id}", h.get)
		r.PUT("/{id}", h.update)
		r.POST("/{id}/preview", h.preview)
	})
}

type previewRequest struct {
	ClientID string `json:"clientId" validate:"required"`
}

func (h *TemplatesHandler) list(c duesflow.Context) error {
	list, err := h.templates.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *TemplatesHandler) get(c duesflow.Context) error {
	t, err := h.templates.Get(c.Context(), c.Param("id"))
	if err != nil {
		return templateError(err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TemplatesHandler) update(c duesflow.Context) error {
	var in templates.Update
	if err := c.DecodeJSON(&in); err != nil {
		return duesflow.ErrBadRequest("request body must be valid JSON", duesflow.WithError(err))
	}

	t, err := h.templates.Update(c.Context(), c.Param("id"), in)
	if err != nil {
		return templateError(err)
	}
	c.LogInfo("template saved", "template_id", t.ID)
	return c.JSON(http.StatusOK, t)
}

func (h *TemplatesHandler) preview(c duesflow.Context) error {
	var in previewRequest
	verrs, err := c.BindJSON(&in)
	if err != nil {
		return duesflow.ErrBadRequest("request body must be valid JSON", duesflow.WithError(err))
	}
	if len(verrs) > 0 {
		return verrs
	}

	client, err := h.repo.Get(c.Context(), in.ClientID)
	if errors.Is(err, dues.ErrClientNotFound) {
		return duesflow.ErrNotFound("client not found", duesflow.WithError(err))
	}
	if err != nil {
		return err
	}

	out, err := h.templates.Render(c.Context(), c.Param("id"), client, h.now())
	if err != nil {
		return templateError(err)
	}
	return c.JSON(http.StatusOK, out)
}

// templateError maps template service errors to HTTP errors. Validation
// errors pass through to the error handler unchanged.
func templateError(err error) error {
	if errors.Is(err, templates.ErrTemplateNotFound) {
		return duesflow.ErrNotFound("template not found", duesflow.WithError(err))
	}
	return err
}
