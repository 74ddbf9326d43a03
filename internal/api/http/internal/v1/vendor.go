package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/clinickart/backend/internal/domain"
	"github.com/clinickart/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initVendorsRoutes(api *gin.RouterGroup) {
	vendors := api.Group("/vendors")
	{
		vendors.POST("/register", h.vendorRegister)
		vendors.POST("/verify-email", h.vendorVerifyEmail)
		vendors.POST("/resend-otp", h.vendorResendOTP)
		vendors.POST("/login", h.vendorLogin)

		authenticated := vendors.Group("", h.authenticate)
		{
			authenticated.GET("/test-auth", h.vendorTestAuth)

			vendorOnly := authenticated.Group("", h.authorize(domain.KindVendor))
			{
				vendorOnly.GET("/status", h.vendorStatus)
				vendorOnly.POST("/logout", h.vendorLogout)

				registered := vendorOnly.Group("", h.requireCompleteRegistration)
				{
					registered.POST("/setup-profile", h.vendorSetupProfile)
					registered.GET("/profile", h.vendorGetProfile)
					registered.PUT("/profile", h.vendorUpdateProfile)
				}
			}
		}
	}
}

type vendorRegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,min=2,max=50"`
	LastName  string `json:"last_name" binding:"required,min=2,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,strongpassword"`
} // @name VendorRegisterRequest

type vendorRegisterResponse struct {
	Email        string                  `json:"email"`
	NextStep     domain.RegistrationStep `json:"next_step"`
	OTPExpiresIn int                     `json:"otp_expires_in"`
	OTPExpiresAt time.Time               `json:"otp_expires_at"`
	OTP          string                  `json:"otp,omitempty"`
} // @name VendorRegisterResponse

// @Summary Register vendor
// @Tags Vendors
// @Description Stores the registration as pending and emails an OTP
// @ModuleID vendorRegister
// @Accept  json
// @Produce  json
// @Param input body vendorRegisterRequest true "vendor data"
// @Success 201 {object} Response{data=vendorRegisterResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /vendors/register [post]
func (h *Handler) vendorRegister(c *gin.Context) {
	var req vendorRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	res, err := h.services.Vendors.Register(c.Request.Context(), service.RegisterInput{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusCreated, "registration initiated, please check your email for the otp", vendorRegisterResponse{
		Email:        res.Email,
		NextStep:     res.NextStep,
		OTPExpiresIn: seconds(res.OTPExpiresIn),
		OTPExpiresAt: res.OTPExpiresAt,
		OTP:          res.OTP,
	})
}

type vendorVerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,numeric,min=4,max=8"`
} // @name VendorVerifyEmailRequest

// @Summary Verify vendor email
// @Tags Vendors
// @Description Checks the OTP, creates the vendor account and signs it in
// @ModuleID vendorVerifyEmail
// @Accept  json
// @Produce  json
// @Param input body vendorVerifyEmailRequest true "email and otp"
// @Success 200 {object} Response{data=authResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /vendors/verify-email [post]
func (h *Handler) vendorVerifyEmail(c *gin.Context) {
	var req vendorVerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	res, err := h.services.Vendors.VerifyEmail(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "email verified successfully, please complete your profile", newAuthResponse(res))
}

type vendorResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
} // @name VendorResendOTPRequest

type vendorResendOTPResponse struct {
	Email        string    `json:"email"`
	OTPExpiresIn int       `json:"otp_expires_in"`
	OTPExpiresAt time.Time `json:"otp_expires_at"`
	OTP          string    `json:"otp,omitempty"`
} // @name VendorResendOTPResponse

// @Summary Resend registration OTP
// @Tags Vendors
// @Description Issues a fresh OTP for a pending registration, at most once per cooldown
// @ModuleID vendorResendOTP
// @Accept  json
// @Produce  json
// @Param input body vendorResendOTPRequest true "email"
// @Success 200 {object} Response{data=vendorResendOTPResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /vendors/resend-otp [post]
func (h *Handler) vendorResendOTP(c *gin.Context) {
	var req vendorResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	res, err := h.services.Vendors.ResendOTP(c.Request.Context(), req.Email)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "otp sent successfully", vendorResendOTPResponse{
		Email:        res.Email,
		OTPExpiresIn: seconds(res.OTPExpiresIn),
		OTPExpiresAt: res.OTPExpiresAt,
		OTP:          res.OTP,
	})
}

type vendorLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
} // @name VendorLoginRequest

// @Summary Vendor login
// @Tags Vendors
// @Description Signs in a verified vendor
// @ModuleID vendorLogin
// @Accept  json
// @Produce  json
// @Param input body vendorLoginRequest true "credentials"
// @Success 200 {object} Response{data=authResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /vendors/login [post]
func (h *Handler) vendorLogin(c *gin.Context) {
	var req vendorLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	res, err := h.services.Vendors.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "login successful", newAuthResponse(res))
}

type registrationStatusResponse struct {
	VendorID               string                  `json:"vendor_id"`
	Email                  string                  `json:"email"`
	FullName               string                  `json:"full_name"`
	IsEmailVerified        bool                    `json:"is_email_verified"`
	IsRegistrationComplete bool                    `json:"is_registration_complete"`
	IsProfileComplete      bool                    `json:"is_profile_complete"`
	RegistrationStep       domain.RegistrationStep `json:"registration_step"`
	CanAddProducts         bool                    `json:"can_add_products"`
	NextAction             domain.NextAction       `json:"next_action"`
} // @name RegistrationStatusResponse

// @Summary Registration status
// @Security BearerAuth
// @Tags Vendors
// @Description Returns where the vendor is in the registration flow
// @ModuleID vendorStatus
// @Produce  json
// @Success 200 {object} Response{data=registrationStatusResponse}
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /vendors/status [get]
func (h *Handler) vendorStatus(c *gin.Context) {
	vendorID, err := getVendorID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	status, err := h.services.Vendors.RegistrationStatus(c.Request.Context(), vendorID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "registration status retrieved", registrationStatusResponse{
		VendorID:               status.VendorID.String(),
		Email:                  status.Email,
		FullName:               status.FullName,
		IsEmailVerified:        status.IsEmailVerified,
		IsRegistrationComplete: status.IsRegistrationComplete,
		IsProfileComplete:      status.IsProfileComplete,
		RegistrationStep:       status.RegistrationStep,
		CanAddProducts:         status.CanAddProducts,
		NextAction:             status.NextAction,
	})
}

type principalResponse struct {
	ID     string         `json:"id"`
	Role   string         `json:"role"`
	Claims map[string]any `json:"claims"`
} // @name PrincipalResponse

// @Summary Check authentication
// @Security BearerAuth
// @Tags Vendors
// @Description Echoes the authenticated principal
// @ModuleID vendorTestAuth
// @Produce  json
// @Success 200 {object} Response{data=principalResponse}
// @Failure 401 {object} ErrorResponse
// @Router /vendors/test-auth [get]
func (h *Handler) vendorTestAuth(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	successResponse(c, http.StatusOK, "authentication working", principalResponse{
		ID:     principal.ID.String(),
		Role:   string(principal.Kind),
		Claims: principal.Claims,
	})
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
} // @name RefreshTokenRequest

// @Summary Vendor logout
// @Security BearerAuth
// @Tags Vendors
// @Description Revokes the given refresh token
// @ModuleID vendorLogout
// @Accept  json
// @Produce  json
// @Param input body refreshTokenRequest true "refresh token"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /vendors/logout [post]
func (h *Handler) vendorLogout(c *gin.Context) {
	vendorID, err := getVendorID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req refreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Vendors.Logout(c.Request.Context(), vendorID, req.RefreshToken); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "logged out successfully", nil)
}

type addressRequest struct {
	Street   string `json:"street" binding:"required"`
	Area     string `json:"area" binding:"required"`
	City     string `json:"city" binding:"required"`
	State    string `json:"state" binding:"required"`
	Pincode  string `json:"pincode" binding:"required,pincode"`
	Country  string `json:"country"`
	Landmark string `json:"landmark"`
} // @name AddressRequest

func (r *addressRequest) toDomain() domain.Address {
	return domain.Address{
		Street:   strings.TrimSpace(r.Street),
		Area:     strings.TrimSpace(r.Area),
		City:     strings.TrimSpace(r.City),
		State:    strings.TrimSpace(r.State),
		Pincode:  r.Pincode,
		Country:  strings.TrimSpace(r.Country),
		Landmark: strings.TrimSpace(r.Landmark),
	}
}

type bankDetailsRequest struct {
	BankName          string `json:"bank_name" binding:"required"`
	AccountHolderName string `json:"account_holder_name" binding:"required"`
	AccountNumber     string `json:"account_number" binding:"required"`
	IFSCCode          string `json:"ifsc_code" binding:"required,ifsc"`
	BranchName        string `json:"branch_name" binding:"required"`
} // @name BankDetailsRequest

func (r *bankDetailsRequest) toDomain() domain.BankDetails {
	return domain.BankDetails{
		BankName:          strings.TrimSpace(r.BankName),
		AccountHolderName: strings.TrimSpace(r.AccountHolderName),
		AccountNumber:     strings.TrimSpace(r.AccountNumber),
		IFSCCode:          r.IFSCCode,
		BranchName:        strings.TrimSpace(r.BranchName),
	}
}

type vendorSetupProfileRequest struct {
	Phone                      string             `json:"phone" binding:"required,phonenumber"`
	AlternatePhone             string             `json:"alternate_phone" binding:"omitempty,phonenumber"`
	BusinessName               string             `json:"business_name" binding:"required,min=2,max=100"`
	BusinessType               string             `json:"business_type" binding:"required,oneof=pharmacy clinic hospital laboratory medical_equipment other"`
	BusinessRegistrationNumber string             `json:"business_registration_number" binding:"required"`
	GSTNumber                  string             `json:"gst_number" binding:"omitempty,gstin"`
	LicenseNumber              string             `json:"license_number"`
	Address                    addressRequest     `json:"address"`
	Description                string             `json:"description" binding:"max=1000"`
	EstablishedYear            int                `json:"established_year" binding:"omitempty,gte=1800,lte=2100"`
	BankDetails                bankDetailsRequest `json:"bank_details"`
} // @name VendorSetupProfileRequest

type vendorResponse struct {
	*domain.Vendor
	FullName string `json:"full_name"`
} // @name VendorResponse

func newVendorResponse(vendor *domain.Vendor) *vendorResponse {
	if vendor == nil {
		return nil
	}
	return &vendorResponse{Vendor: vendor, FullName: vendor.FullName()}
}

type vendorProfileResponse struct {
	Vendor      *vendorResponse       `json:"vendor"`
	Profile     *domain.VendorProfile `json:"profile"`
	FullAddress string                `json:"full_address,omitempty"`
} // @name VendorProfileResponse

func newVendorProfileResponse(res *service.ProfileResult) vendorProfileResponse {
	out := vendorProfileResponse{
		Vendor:  newVendorResponse(res.Vendor),
		Profile: res.Profile,
	}
	if res.Profile != nil {
		out.FullAddress = res.Profile.FullAddress()
	}
	return out
}

// @Summary Set up vendor profile
// @Security BearerAuth
// @Tags Vendors
// @Description Stores the business profile and completes registration
// @ModuleID vendorSetupProfile
// @Accept  json
// @Produce  json
// @Param input body vendorSetupProfileRequest true "business profile"
// @Success 200 {object} Response{data=vendorProfileResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /vendors/setup-profile [post]
func (h *Handler) vendorSetupProfile(c *gin.Context) {
	vendorID, err := getVendorID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req vendorSetupProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	res, err := h.services.Vendors.SetupProfile(c.Request.Context(), vendorID, service.ProfileInput{
		Phone:                      req.Phone,
		AlternatePhone:             req.AlternatePhone,
		BusinessName:               req.BusinessName,
		BusinessType:               domain.BusinessType(req.BusinessType),
		BusinessRegistrationNumber: req.BusinessRegistrationNumber,
		GSTNumber:                  req.GSTNumber,
		LicenseNumber:              strings.TrimSpace(req.LicenseNumber),
		Address:                    req.Address.toDomain(),
		Description:                strings.TrimSpace(req.Description),
		EstablishedYear:            req.EstablishedYear,
		BankDetails:                req.BankDetails.toDomain(),
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "profile setup completed successfully", newVendorProfileResponse(res))
}

// @Summary Get vendor profile
// @Security BearerAuth
// @Tags Vendors
// @Description Returns the vendor with its business profile
// @ModuleID vendorGetProfile
// @Produce  json
// @Success 200 {object} Response{data=vendorProfileResponse}
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /vendors/profile [get]
func (h *Handler) vendorGetProfile(c *gin.Context) {
	vendorID, err := getVendorID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	res, err := h.services.Vendors.GetProfile(c.Request.Context(), vendorID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "profile retrieved successfully", newVendorProfileResponse(res))
}

// Fields left out of the body are not touched.
type vendorUpdateProfileRequest struct {
	FirstName       *string             `json:"first_name" binding:"omitempty,min=2,max=50"`
	LastName        *string             `json:"last_name" binding:"omitempty,min=2,max=50"`
	Phone           *string             `json:"phone" binding:"omitempty,phonenumber"`
	AlternatePhone  *string             `json:"alternate_phone" binding:"omitempty,phonenumber"`
	BusinessName    *string             `json:"business_name" binding:"omitempty,min=2,max=100"`
	GSTNumber       *string             `json:"gst_number" binding:"omitempty,gstin"`
	LicenseNumber   *string             `json:"license_number"`
	Description     *string             `json:"description" binding:"omitempty,max=1000"`
	EstablishedYear *int                `json:"established_year" binding:"omitempty,gte=1800,lte=2100"`
	Address         *addressRequest     `json:"address" binding:"omitempty"`
	BankDetails     *bankDetailsRequest `json:"bank_details" binding:"omitempty"`
} // @name VendorUpdateProfileRequest

// @Summary Update vendor profile
// @Security BearerAuth
// @Tags Vendors
// @Description Updates the whitelisted vendor and profile fields
// @ModuleID vendorUpdateProfile
// @Accept  json
// @Produce  json
// @Param input body vendorUpdateProfileRequest true "fields to update"
// @Success 200 {object} Response{data=vendorProfileResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /vendors/profile [put]
func (h *Handler) vendorUpdateProfile(c *gin.Context) {
	vendorID, err := getVendorID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req vendorUpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	input := service.UpdateProfileInput{
		FirstName:       trimmed(req.FirstName),
		LastName:        trimmed(req.LastName),
		Phone:           req.Phone,
		AlternatePhone:  req.AlternatePhone,
		BusinessName:    trimmed(req.BusinessName),
		GSTNumber:       req.GSTNumber,
		LicenseNumber:   trimmed(req.LicenseNumber),
		Description:     trimmed(req.Description),
		EstablishedYear: req.EstablishedYear,
	}
	if req.Address != nil {
		address := req.Address.toDomain()
		input.Address = &address
	}
	if req.BankDetails != nil {
		bank := req.BankDetails.toDomain()
		input.BankDetails = &bank
	}

	res, err := h.services.Vendors.UpdateProfile(c.Request.Context(), vendorID, input)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "profile updated successfully", newVendorProfileResponse(res))
}

type tokensResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	TokenType        string `json:"token_type"`
	ExpiresIn        int    `json:"expires_in"`
	RefreshExpiresIn int    `json:"refresh_expires_in"`
} // @name TokensResponse

type authResponse struct {
	Vendor *vendorResponse `json:"vendor"`
	Tokens tokensResponse  `json:"tokens"`
} // @name AuthResponse

func newAuthResponse(res *service.AuthResult) authResponse {
	return authResponse{
		Vendor: newVendorResponse(res.Vendor),
		Tokens: tokensResponse{
			AccessToken:      res.Tokens.AccessToken,
			RefreshToken:     res.Tokens.RefreshToken,
			TokenType:        "Bearer",
			ExpiresIn:        seconds(res.Tokens.AccessTTL),
			RefreshExpiresIn: seconds(res.Tokens.RefreshTTL),
		},
	}
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
