package httperr

import (
	"net/http"

	"rental-booking/internal/domain/coupon"
	"rental-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusOf maps the failure kind carried by err to an HTTP status.
func StatusOf(err error) int {
	switch errs.KindOf(err) {
	case errs.ErrInvalidInput:
		return http.StatusBadRequest
	case errs.ErrNotFound:
		return http.StatusNotFound
	case errs.ErrConflict:
		return http.StatusConflict
	case errs.ErrPolicyViolation:
		return http.StatusUnprocessableEntity
	case errs.ErrStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Respond aborts with the status for err's kind. Client-facing kinds expose the
// domain message; everything else answers with fallback only.
func Respond(c *gin.Context, err error, fallback string) {
	status := StatusOf(err)
	msg := fallback
	if status < http.StatusInternalServerError {
		msg = errs.Cause(err).Error()
	}
	AbortWithError(c, status, err, msg, detailOf(err))
}

func detailOf(err error) any {
	var minErr *coupon.MinimumAmountError
	if errs.As(err, &minErr) {
		return gin.H{"minimumAmount": minErr.Minimum}
	}
	return nil
}
