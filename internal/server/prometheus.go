// prometheus.go - Prometheus text exposition of the internal metrics
package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

var serverStartTime = time.Now()

// PrometheusMetricsHandler exports the metrics snapshot in Prometheus text
// format at /metrics.
func PrometheusMetricsHandler(build string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot := GetMetrics().Snapshot()

		var output strings.Builder

		output.WriteString("# HELP rokto_info Application version info\n")
		output.WriteString("# TYPE rokto_info gauge\n")
		output.WriteString(fmt.Sprintf("rokto_info{version=%q} 1\n\n", build))

		output.WriteString("# HELP rokto_requests_total Total number of HTTP requests\n")
		output.WriteString("# TYPE rokto_requests_total counter\n")
		output.WriteString(fmt.Sprintf("rokto_requests_total %d\n\n", snapshot.RequestsTotal))

		output.WriteString("# HELP rokto_request_errors_total HTTP responses by error class\n")
		output.WriteString("# TYPE rokto_request_errors_total counter\n")
		output.WriteString(fmt.Sprintf("rokto_request_errors_total{class=\"4xx\"} %d\n", snapshot.RequestErrors4xx))
		output.WriteString(fmt.Sprintf("rokto_request_errors_total{class=\"5xx\"} %d\n\n", snapshot.RequestErrors5xx))

		output.WriteString("# HELP rokto_registrations_total Total number of donor registrations\n")
		output.WriteString("# TYPE rokto_registrations_total counter\n")
		output.WriteString(fmt.Sprintf("rokto_registrations_total %d\n\n", snapshot.RegistrationsTotal))

		output.WriteString("# HELP rokto_registration_conflicts_total Registrations rejected for a duplicate mobile number\n")
		output.WriteString("# TYPE rokto_registration_conflicts_total counter\n")
		output.WriteString(fmt.Sprintf("rokto_registration_conflicts_total %d\n\n", snapshot.RegistrationConflictsTotal))

		output.WriteString("# HELP rokto_login_success_total Total number of successful logins\n")
		output.WriteString("# TYPE rokto_login_success_total counter\n")
		output.WriteString(fmt.Sprintf("rokto_login_success_total %d\n\n", snapshot.LoginSuccessTotal))

		output.WriteString("# HELP rokto_login_failures_total Total number of failed logins\n")
		output.WriteString("# TYPE rokto_login_failures_total counter\n")
		output.WriteString(fmt.Sprintf("rokto_login_failures_total %d\n\n", snapshot.LoginFailuresTotal))

		output.WriteString("# HELP rokto_searches_total Total number of donor searches\n")
		output.WriteString("# TYPE rokto_searches_total counter\n")
		output.WriteString(fmt.Sprintf("rokto_searches_total %d\n\n", snapshot.SearchesTotal))

		output.WriteString("# HELP rokto_photo_uploads_total Total number of profile photo uploads\n")
		output.WriteString("# TYPE rokto_photo_uploads_total counter\n")
		output.WriteString(fmt.Sprintf("rokto_photo_uploads_total %d\n\n", snapshot.PhotoUploadsTotal))

		output.WriteString("# HELP rokto_photo_upload_bytes_total Total bytes of uploaded profile photos\n")
		output.WriteString("# TYPE rokto_photo_upload_bytes_total counter\n")
		output.WriteString(fmt.Sprintf("rokto_photo_upload_bytes_total %d\n\n", snapshot.PhotoUploadBytesTotal))

		output.WriteString("# HELP rokto_chat_posts_total Total number of posted board messages\n")
		output.WriteString("# TYPE rokto_chat_posts_total counter\n")
		output.WriteString(fmt.Sprintf("rokto_chat_posts_total %d\n\n", snapshot.ChatPostsTotal))

		output.WriteString("# HELP rokto_uptime_seconds Application uptime in seconds\n")
		output.WriteString("# TYPE rokto_uptime_seconds counter\n")
		uptime := time.Since(serverStartTime).Seconds()
		output.WriteString(fmt.Sprintf("rokto_uptime_seconds %.0f\n", uptime))

		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(output.String()))
	})
}
