// Package templates embeds the html email templates.
package templates

import "embed"

const (
	OTP     = "otp.html"
	Welcome = "welcome.html"
)

//go:embed *.html
var FS embed.FS
