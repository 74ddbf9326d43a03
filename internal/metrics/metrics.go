// Package metrics holds the Prometheus collectors of the vendor onboarding flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)

var (
	// VendorRegistrations counts registration attempts.
	// Labels:
	//   - outcome: "success", "exists", "error"
	VendorRegistrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinickart_vendor_registrations_total",
			Help: "Total number of vendor registration attempts",
		},
		[]string{"outcome"},
	)

	// OTPVerifications counts email verification attempts.
	// Labels:
	//   - outcome: "success", "invalid", "too_many", "not_found", "error"
	OTPVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinickart_otp_verifications_total",
			Help: "Total number of OTP verification attempts",
		},
		[]string{"outcome"},
	)

	VendorLogins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinickart_vendor_logins_total",
			Help: "Total number of vendor login attempts",
		},
		[]string{"outcome"},
	)

	// Notifications counts dispatched notifications.
	// Labels:
	//   - kind: "otp", "welcome"
	//   - outcome: "success", "error"
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinickart_notifications_total",
			Help: "Total number of notifications dispatched",
		},
		[]string{"kind", "outcome"},
	)

	PendingRegistrations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "clinickart_pending_registrations",
			Help: "Number of registrations waiting for email verification",
		},
	)

	PendingOTPs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "clinickart_pending_otps",
			Help: "Number of outstanding one-time codes",
		},
	)

	// PendingSwept counts expired entries removed by the periodic sweep.
	// Labels:
	//   - kind: "registration", "otp"
	PendingSwept = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinickart_pending_swept_total",
			Help: "Total number of expired pending entries removed by the sweeper",
		},
		[]string{"kind"},
	)
)
