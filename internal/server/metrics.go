package server

import (
	"sync"
)

// Metrics holds application metrics
type Metrics struct {
	mu sync.RWMutex

	// Registration metrics
	registrationsTotal         int64
	registrationConflictsTotal int64

	// Auth metrics
	loginAttemptsTotal int64
	loginSuccessTotal  int64
	loginFailuresTotal int64

	// Domain activity metrics
	searchesTotal     int64
	photoUploadsTotal int64
	photoUploadBytes  int64
	photoUploadErrors int64
	chatPostsTotal    int64

	// System metrics
	requestsTotal    int64
	requestErrors5xx int64
	requestErrors4xx int64
}

var globalMetrics = &Metrics{}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	return globalMetrics
}

// RecordRegistration records a registration attempt; a duplicate mobile
// number counts as a conflict, not a registration.
func (m *Metrics) RecordRegistration(created bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if created {
		m.registrationsTotal++
	} else {
		m.registrationConflictsTotal++
	}
}

// RecordLoginAttempt records a login attempt
func (m *Metrics) RecordLoginAttempt(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginAttemptsTotal++
	if success {
		m.loginSuccessTotal++
	} else {
		m.loginFailuresTotal++
	}
}

// RecordSearch records a donor search
func (m *Metrics) RecordSearch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchesTotal++
}

// RecordPhotoUpload records a successful profile photo upload
func (m *Metrics) RecordPhotoUpload(bytes int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.photoUploadsTotal++
	m.photoUploadBytes += bytes
}

// RecordPhotoUploadError records a failed profile photo upload
func (m *Metrics) RecordPhotoUploadError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.photoUploadErrors++
}

// RecordChatPost records a posted board message
func (m *Metrics) RecordChatPost() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chatPostsTotal++
}

// RecordRequest records an HTTP request
func (m *Metrics) RecordRequest(statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestsTotal++

	if statusCode >= 500 {
		m.requestErrors5xx++
	} else if statusCode >= 400 {
		m.requestErrors4xx++
	}
}

// Snapshot returns a snapshot of current metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MetricsSnapshot{
		RegistrationsTotal:         m.registrationsTotal,
		RegistrationConflictsTotal: m.registrationConflictsTotal,
		LoginAttemptsTotal:         m.loginAttemptsTotal,
		LoginSuccessTotal:          m.loginSuccessTotal,
		LoginFailuresTotal:         m.loginFailuresTotal,
		SearchesTotal:              m.searchesTotal,
		PhotoUploadsTotal:          m.photoUploadsTotal,
		PhotoUploadBytesTotal:      m.photoUploadBytes,
		PhotoUploadErrorsTotal:     m.photoUploadErrors,
		ChatPostsTotal:             m.chatPostsTotal,
		RequestsTotal:              m.requestsTotal,
		RequestErrors5xx:           m.requestErrors5xx,
		RequestErrors4xx:           m.requestErrors4xx,
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	// Registration metrics
	RegistrationsTotal         int64 `json:"registrations_total"`
	RegistrationConflictsTotal int64 `json:"registration_conflicts_total"`

	// Auth metrics
	LoginAttemptsTotal int64 `json:"login_attempts_total"`
	LoginSuccessTotal  int64 `json:"login_success_total"`
	LoginFailuresTotal int64 `json:"login_failures_total"`

	// Domain activity metrics
	SearchesTotal          int64 `json:"searches_total"`
	PhotoUploadsTotal      int64 `json:"photo_uploads_total"`
	PhotoUploadBytesTotal  int64 `json:"photo_upload_bytes_total"`
	PhotoUploadErrorsTotal int64 `json:"photo_upload_errors_total"`
	ChatPostsTotal         int64 `json:"chat_posts_total"`

	// System metrics
	RequestsTotal    int64 `json:"requests_total"`
	RequestErrors5xx int64 `json:"request_errors_5xx"`
	RequestErrors4xx int64 `json:"request_errors_4xx"`
}
