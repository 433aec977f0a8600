package middleware

import (
	"log"

	"github.com/charmbracelet/lipgloss"

	"github.com/sleipnirhttp/sleipnir/request"
	"github.com/sleipnirhttp/sleipnir/response"
)

// AccessLog logs each request without colors and continues the chain.
func AccessLog() Handler {
	return func(r *request.Request, res *response.Response, s *Session) {
		log.Printf("%s %s %d\n", r.Method, r.Route, res.StatusCode())
		s.Proceed()
	}
}

// AccessLogColored logs each request with a styled method and status code.
// Place it after the handlers whose status it should report.
func AccessLogColored() Handler {
	methodStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true).Background(lipgloss.Color("12")).Width(8).Align(lipgloss.Center)

	return func(r *request.Request, res *response.Response, s *Session) {
		statusCode := int(res.StatusCode())
		statusStyle := getStatusCodeStyle(statusCode)
		styledStatus := statusStyle.Render(response.GetStatusReason(res.StatusCode()))
		styledMethod := methodStyle.Render(r.Method)

		log.Printf("%s %s %d %s\n", styledMethod, r.Route, statusCode, styledStatus)
		s.Proceed()
	}
}

// getStatusCodeStyle returns a lipgloss style for HTTP status codes
func getStatusCodeStyle(statusCode int) lipgloss.Style {
	switch {
	case statusCode >= 200 && statusCode < 300:
		// 2xx Success - Green
		return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	case statusCode >= 300 && statusCode < 400:
		// 3xx Redirection - Yellow
		return lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	case statusCode >= 400 && statusCode < 500:
		// 4xx Client Error - Orange/Red
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	case statusCode >= 500:
		// 5xx Server Error - Bright Red
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	}
}
