package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Response struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
} // @name Response

type ErrorResponse struct {
	Success    bool              `json:"success"`
	StatusCode int               `json:"status_code"`
	ErrorCode  ErrorCode         `json:"error_code"`
	Message    string            `json:"message"`
	Errors     []ValidationError `json:"errors,omitempty"`
	RetryAfter int               `json:"retry_after,omitempty"`
	Data       any               `json:"data,omitempty"`
} // @name ErrorResponse

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
} // @name ValidationError

func successResponse(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

func errorResponse(c *gin.Context, status int, code ErrorCode, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		StatusCode: status,
		ErrorCode:  code,
		Message:    message,
	})
}

func unauthorizedResponse(c *gin.Context) {
	errorResponse(c, http.StatusUnauthorized, UnauthorizedCode, UnauthorizedMessage)
}

// validationErrorResponse reports binding failures field by field. Errors
// that are not validator errors (malformed JSON, wrong types) are reported
// against the request body.
func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	var out []ValidationError
	if errors.As(err, &verr) {
		out = make([]ValidationError, len(verr))
		for i, ferr := range verr {
			out[i] = ValidationError{fieldPath(ferr), msgForTag(ferr.Tag(), ferr.Param())}
		}
	} else {
		out = []ValidationError{{Field: "body", Message: "request body is malformed"}}
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  ValidationErrorCode,
		Message:    ValidationErrorMessage,
		Errors:     out,
	})
}

// fieldPath drops the top level struct name so nested fields read as
// "address.pincode".
func fieldPath(ferr validator.FieldError) string {
	ns := ferr.Namespace()
	for i := 0; i < len(ns); i++ {
		if ns[i] == '.' {
			return ns[i+1:]
		}
	}
	return ferr.Field()
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "email":
		return "please provide a valid email"
	case "numeric":
		return "this field must contain digits only"
	case "min":
		return fmt.Sprintf("must be at least %v characters", value)
	case "max":
		return fmt.Sprintf("must be at most %v characters", value)
	case "gte":
		return fmt.Sprintf("must be at least %v", value)
	case "lte":
		return fmt.Sprintf("must be at most %v", value)
	case "oneof":
		return fmt.Sprintf("must be one of: %v", value)
	case "strongpassword":
		return "password must be 6 to 72 bytes long and contain one uppercase letter, one lowercase letter and one number"
	case "phonenumber":
		return "please provide a valid phone number"
	case "pincode":
		return "please provide a valid 6 digit pincode"
	case "gstin":
		return "please provide a valid GST number"
	case "ifsc":
		return "please provide a valid IFSC code"
	}
	return tag
}
