package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-signup/pkg/card"
	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/sink"
)

const (
	toggleParam       = "_toggle"
	showPasswordParam = "_show_password"
	requestIDParam    = "_request_id"
)

// eventBatch is the body of POST /api/form/events.
type eventBatch struct {
	State  form.State        `json:"state"`
	Events []json.RawMessage `json:"events"`
}

func (s *Server) requestLogger(c *gin.Context) logrus.FieldLogger {
	return s.logger.WithField("request_id", c.GetString("request_id"))
}

func (s *Server) newController(c *gin.Context, state form.State) *form.Controller {
	options := []form.ControllerOption{
		form.WithSink(s.sink),
		form.WithLogger(s.requestLogger(c)),
		form.WithControllerValidator(s.validator),
		form.WithInitialState(state),
	}
	options = append(options, s.controllerOptions...)
	return form.NewController(options...)
}

func (s *Server) requestLocale(c *gin.Context) string {
	if lang := c.Query("lang"); lang != "" {
		return lang
	}
	return s.locale
}

func (s *Server) renderPage(c *gin.Context, status int, state form.State, formErrors []string) {
	view := form.Render(state, form.WithValidator(s.validator))
	opts := render.RenderOptions{
		Action:     "/signup",
		Locale:     s.requestLocale(c),
		Translator: s.translator,
		FormErrors: formErrors,
		HiddenFields: render.MergeHiddenFields(nil,
			render.Hidden(requestIDParam, c.GetString("request_id")),
		),
	}

	out, err := s.renderer.RenderSignup(c.Request.Context(), view, opts)
	if err != nil {
		s.requestLogger(c).WithError(err).Error("Failed to render signup page")
		c.String(http.StatusInternalServerError, "Failed to render page")
		return
	}
	c.Data(status, s.renderer.ContentType(), out)
}

// sinkFailure maps a delivery error to a status code and messages. Endpoint
// rejections in the 4xx range become 422 so the user can correct the form.
func sinkFailure(err error) (int, render.ErrorMapping) {
	rejected, ok := sink.AsRejected(err)
	if !ok {
		return http.StatusBadGateway, render.ErrorMapping{
			Form: []string{"Submission could not be delivered, please try again"},
		}
	}

	mapping := render.ErrorMapping{Fields: rejected.Fields, Form: rejected.Form}
	status := http.StatusBadGateway
	if rejected.StatusCode >= 400 && rejected.StatusCode < 500 {
		status = http.StatusUnprocessableEntity
	}
	if mapping.Empty() {
		mapping.Form = []string{"Submission was rejected"}
	}
	return status, mapping
}

func flattenMapping(mapping render.ErrorMapping) []string {
	out := append([]string(nil), mapping.Form...)
	for _, field := range model.Fields() {
		out = append(out, mapping.Fields[field]...)
	}
	return render.MergeFormErrors(out)
}

func firstMessage(messages []string, fallback string) string {
	if len(messages) == 0 {
		return fallback
	}
	return messages[0]
}

func fieldMessages(mapping render.ErrorMapping) map[string][]string {
	if len(mapping.Fields) == 0 {
		return nil
	}
	out := make(map[string][]string, len(mapping.Fields))
	for field, messages := range mapping.Fields {
		out[field.String()] = messages
	}
	return out
}

func (s *Server) handleSignupPage(c *gin.Context) {
	s.renderPage(c, http.StatusOK, form.NewState(), nil)
}

func (s *Server) handleSignupForm(c *gin.Context) {
	initial := form.NewState()
	initial.ShowPassword = c.PostForm(showPasswordParam) == "1"

	ctrl := s.newController(c, initial)
	for _, field := range model.Fields() {
		ctrl.OnChange(field, c.PostForm(field.String()))
	}

	if c.PostForm(toggleParam) != "" {
		s.renderPage(c, http.StatusOK, ctrl.OnToggleVisibility(), nil)
		return
	}

	for _, field := range model.Fields() {
		ctrl.OnBlur(field)
	}

	result, err := ctrl.OnSubmit(c.Request.Context())
	if err != nil {
		s.metrics.IncSubmission(statusSinkError)
		s.requestLogger(c).WithError(err).Warn("Signup delivery failed")
		status, mapping := sinkFailure(err)
		s.renderPage(c, status, result.State, flattenMapping(mapping))
		return
	}

	if result.Submission == nil {
		s.metrics.IncSubmission(statusValidationFailed)
		s.renderPage(c, http.StatusUnprocessableEntity, result.State, nil)
		return
	}

	s.metrics.IncSubmission(statusSuccess)
	s.renderPage(c, http.StatusOK, result.State, nil)
}

func (s *Server) handleSignupAPI(c *gin.Context) {
	var values model.FormValues
	if err := c.ShouldBindJSON(&values); err != nil {
		s.metrics.IncSubmission(statusBadRequest)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request format",
		})
		return
	}

	ctrl := s.newController(c, form.NewState().WithValues(values))
	result, err := ctrl.OnSubmit(c.Request.Context())
	if err != nil {
		s.metrics.IncSubmission(statusSinkError)
		s.requestLogger(c).WithError(err).Warn("Signup delivery failed")

		status, mapping := sinkFailure(err)
		body := gin.H{
			"success": false,
			"error":   firstMessage(mapping.Form, "Submission was rejected"),
		}
		if fields := fieldMessages(mapping); fields != nil {
			body["errors"] = fields
		}
		c.JSON(status, body)
		return
	}

	if result.Submission == nil {
		s.metrics.IncSubmission(statusValidationFailed)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"errors":  s.validator.Validate(values).Messages(),
		})
		return
	}

	s.metrics.IncSubmission(statusSuccess)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      result.Submission.ID,
	})
}

func (s *Server) handleValidateAPI(c *gin.Context) {
	var values model.FormValues
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request format",
		})
		return
	}

	errs := s.validator.Validate(values)
	body := gin.H{"valid": errs.Valid()}
	if !errs.Valid() {
		body["errors"] = errs.Messages()
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) handleEventsAPI(c *gin.Context) {
	var batch eventBatch
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request format",
		})
		return
	}

	events := make([]form.Event, 0, len(batch.Events))
	for _, raw := range batch.Events {
		event, err := form.ParseEvent(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		events = append(events, event)
	}

	ctrl := s.newController(c, batch.State)
	var submissionID string
	for _, event := range events {
		result, err := ctrl.Dispatch(c.Request.Context(), event)
		if err != nil {
			s.metrics.IncSubmission(statusSinkError)
			s.requestLogger(c).WithError(err).Warn("Signup delivery failed")
			status, mapping := sinkFailure(err)
			c.JSON(status, gin.H{
				"success": false,
				"error":   firstMessage(flattenMapping(mapping), "Submission was rejected"),
				"state":   ctrl.State(),
			})
			return
		}
		if result.Submission != nil {
			s.metrics.IncSubmission(statusSuccess)
			submissionID = result.Submission.ID
		} else if _, ok := event.(form.Submit); ok {
			s.metrics.IncSubmission(statusValidationFailed)
		}
	}

	state := ctrl.State()
	body := gin.H{
		"state": state,
		"view":  form.Render(state, form.WithValidator(s.validator)),
	}
	if submissionID != "" {
		body["submissionId"] = submissionID
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) cardFromQuery(c *gin.Context) card.Card {
	return card.Build(model.UserInfo{
		Name:  c.Query("name"),
		Email: c.Query("email"),
	})
}

func (s *Server) handleCardPage(c *gin.Context) {
	out, err := s.renderer.RenderCard(c.Request.Context(), s.cardFromQuery(c))
	if err != nil {
		s.requestLogger(c).WithError(err).Error("Failed to render card")
		c.String(http.StatusInternalServerError, "Failed to render card")
		return
	}
	c.Data(http.StatusOK, s.renderer.ContentType(), out)
}

func (s *Server) handleCardAPI(c *gin.Context) {
	c.JSON(http.StatusOK, s.cardFromQuery(c))
}
