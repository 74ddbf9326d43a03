package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/clinickart/backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	authorizationHeader = "Authorization"
	principalCtx        = "principal"
)

var errNoPrincipal = errors.New("principal not found")

// authenticate resolves the bearer token into a principal. Every failure
// gets the same 401 body.
func (h *Handler) authenticate(c *gin.Context) {
	token, ok := bearerToken(c.GetHeader(authorizationHeader))
	if !ok {
		unauthorizedResponse(c)
		return
	}

	principal, err := h.services.Vendors.Authenticate(c.Request.Context(), token)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	c.Set(principalCtx, principal)
	c.Next()
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" || headerParts[1] == "" {
		return "", false
	}

	return headerParts[1], true
}

func (h *Handler) authorize(kinds ...domain.PrincipalKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := getPrincipal(c)
		if err != nil {
			unauthorizedResponse(c)
			return
		}
		if !principal.Is(kinds...) {
			errorResponse(c, http.StatusForbidden, ForbiddenCode, ForbiddenMessage)
			return
		}

		c.Next()
	}
}

type incompleteRegistration struct {
	RegistrationStep domain.RegistrationStep `json:"registration_step"`
	NextStep         domain.RegistrationStep `json:"next_step"`
}

// requireCompleteRegistration only gates vendors. The next step points at
// profile setup once the email is verified.
func (h *Handler) requireCompleteRegistration(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	if principal.Kind != domain.KindVendor {
		c.Next()
		return
	}

	status, err := h.services.Vendors.RegistrationStatus(c.Request.Context(), principal.ID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	if !status.IsRegistrationComplete {
		next := domain.StepEmailVerification
		if status.IsEmailVerified {
			next = domain.StepProfileSetup
		}
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			StatusCode: http.StatusForbidden,
			ErrorCode:  IncompleteCode,
			Message:    IncompleteMessage,
			Data: incompleteRegistration{
				RegistrationStep: status.RegistrationStep,
				NextStep:         next,
			},
		})
		return
	}

	c.Next()
}

func getPrincipal(c *gin.Context) (*domain.Principal, error) {
	value, ok := c.Get(principalCtx)
	if !ok {
		return nil, errNoPrincipal
	}

	principal, ok := value.(*domain.Principal)
	if !ok || principal == nil {
		return nil, errNoPrincipal
	}

	return principal, nil
}

func getVendorID(c *gin.Context) (uuid.UUID, error) {
	principal, err := getPrincipal(c)
	if err != nil {
		return uuid.Nil, err
	}

	return principal.ID, nil
}
