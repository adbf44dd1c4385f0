package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/imrishuroy/go-appointment-flow/internal/country"
	"github.com/imrishuroy/go-appointment-flow/internal/requests"
	"github.com/imrishuroy/go-appointment-flow/internal/validation"
)

// RequestService is what the HTTP layer needs from the request lifecycle.
type RequestService interface {
	CreateRequest(ctx context.Context, in requests.CreateInput) (*requests.AppointmentRequest, error)
	ListRequests(ctx context.Context, filter requests.ListFilter) ([]requests.AppointmentRequest, error)
}

// RegisterAppointmentRequestRoutes registers POST and GET /appointment-request.
func RegisterAppointmentRequestRoutes(r gin.IRouter, svc RequestService, logger logrus.FieldLogger) {
	v := validation.New()

	r.POST("/appointment-request", func(c *gin.Context) {
		var body validation.CreateAppointmentRequest
		if err := validation.BindAndValidate(c, &body, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		req, err := svc.CreateRequest(c.Request.Context(), requests.CreateInput{
			InsureID:   body.InsureID,
			ScheduleID: body.ScheduleID.Int(),
			CountryISO: country.Code(body.CountryISO),
		})
		if err != nil {
			_ = c.Error(err)
			respondError(c, err)
			return
		}

		logger.WithField("request_id", req.ID).Debug("appointment request accepted")
		c.JSON(http.StatusCreated, APIResponse{
			Success: true,
			Data:    req,
			Message: "Appointment request created successfully",
		})
	})

	r.GET("/appointment-request", func(c *gin.Context) {
		var q validation.ListAppointmentRequestsQuery
		if err := validation.BindListQuery(c, &q, v); err != nil {
			return
		}

		list, err := svc.ListRequests(c.Request.Context(), requests.ListFilter{InsureID: q.InsureID})
		if err != nil {
			_ = c.Error(err)
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, APIResponse{
			Success: true,
			Data:    list,
			Message: "Appointment requests fetched successfully",
		})
	})
}
