package validation

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/go-appointment-flow/internal/apperrors"
)

// BindAndValidate binds the JSON body into out and runs validation.
// If either fails, it writes a 400 response and returns the error for the handler to short-circuit.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return reject(c, "Validation failed", apperrors.Validation("BindAndValidate", "invalid request body: "+err.Error()))
	}
	if err := v.Struct(out); err != nil {
		return reject(c, "Validation failed", apperrors.Validation("BindAndValidate", Messages(err)...))
	}
	return nil
}

// BindListQuery binds and validates the query of GET /appointment-request. Unknown
// parameters are rejected.
func BindListQuery(c *gin.Context, out *ListAppointmentRequestsQuery, v *validatorv10.Validate) error {
	var unknown []string
	for key := range c.Request.URL.Query() {
		if _, ok := allowedListParams[key]; !ok {
			unknown = append(unknown, key+" is not allowed")
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return reject(c, "Query validation failed", apperrors.Validation("BindListQuery", unknown...))
	}

	out.InsureID = strings.TrimSpace(c.Query("insureId"))
	if err := v.Struct(out); err != nil {
		return reject(c, "Query validation failed", apperrors.Validation("BindListQuery", Messages(err)...))
	}
	return nil
}

func reject(c *gin.Context, title string, err *apperrors.Error) error {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   title,
		"message": err.Msg,
	})
	return err
}
