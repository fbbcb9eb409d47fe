package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-registration/internal/application"
	"github.com/oksasatya/go-user-registration/internal/domain/entity"
	"github.com/oksasatya/go-user-registration/internal/metrics"
	"github.com/oksasatya/go-user-registration/pkg/helpers"
	"github.com/oksasatya/go-user-registration/pkg/response"
	"github.com/oksasatya/go-user-registration/pkg/view"
)

type RegistrationHandler struct {
	Svc     *application.RegistrationService
	Views   view.Renderer
	Metrics *metrics.Metrics
	Logger  *logrus.Logger
}

func NewRegistrationHandler(svc *application.RegistrationService, views view.Renderer, m *metrics.Metrics, logger *logrus.Logger) *RegistrationHandler {
	return &RegistrationHandler{Svc: svc, Views: views, Metrics: m, Logger: logger}
}

type registrationRequest struct {
	Name            string `form:"name" json:"name"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword"`
}

func (r registrationRequest) toEntity() entity.RegistrationSubmission {
	return entity.RegistrationSubmission{
		Name:            r.Name,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
}

func (h *RegistrationHandler) ShowForm(c *gin.Context) {
	h.Metrics.IncFormViews()
	h.render(c, h.Svc.GetForm())
}

func (h *RegistrationHandler) Submit(c *gin.Context) {
	var req registrationRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", bindDetails(err))
		return
	}

	sub := req.toEntity()
	v := h.Svc.SubmitForm(sub, h.Svc.Validate(sub))

	if errs := v.Errors(); errs.HasErrors() {
		h.Metrics.IncSubmission(metrics.OutcomeInvalid)
		for _, fe := range errs {
			h.Metrics.IncFieldError(fe.Field, fe.Tag)
		}
		helpers.LogDebug(h.Logger, "registration rejected", logrus.Fields{
			"request_id": c.GetString("request_id"),
			"fields":     errs.ToDetails(),
		})
	} else {
		h.Metrics.IncSubmission(metrics.OutcomeSuccess)
		helpers.LogInfo(h.Logger, "registration accepted", logrus.Fields{"request_id": c.GetString("request_id")})
	}

	h.render(c, v)
}

// render answers with HTML unless the client prefers JSON. Validation
// outcomes are always 200.
func (h *RegistrationHandler) render(c *gin.Context, v application.View) {
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		renderJSON(c, v)
		return
	}

	body, err := h.Views.Render(v.Name, v.Bindings)
	if err != nil {
		h.Metrics.IncRenderFailures()
		helpers.LogError(h.Logger, "render view failed", err, logrus.Fields{
			"view":       v.Name,
			"request_id": c.GetString("request_id"),
		})
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

func renderJSON(c *gin.Context, v application.View) {
	if errs := v.Errors(); errs.HasErrors() {
		response.Error[any](c, http.StatusOK, "validation failed", errs)
		return
	}
	switch v.Name {
	case application.ViewSuccess:
		response.Success(c, http.StatusOK, gin.H{
			"view": v.Name,
			"name": v.Bindings[application.BindingName],
		}, "registration successful", nil)
	default:
		sub, _ := v.Submission()
		response.Success(c, http.StatusOK, gin.H{
			"view": v.Name,
			"user": gin.H{"name": sub.Name},
		}, "registration form", nil)
	}
}

// bindDetails maps binding errors into a map[field]message for error.details.
func bindDetails(err error) map[string]string {
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}
	return map[string]string{"payload": "invalid payload"}
}
