package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := hashPassword("correct horse")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("hash must not equal the password")
	}
	if !verifyPassword("correct horse", hash) {
		t.Error("correct password rejected")
	}
	if verifyPassword("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	a := AuthConfig{SecretKey: "test-secret"}

	token, err := a.issueToken("donor-1", "01711111111")
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	claims, err := a.verifyToken(token)
	if err != nil {
		t.Fatalf("verifyToken: %v", err)
	}
	if claims.DonorID != "donor-1" || claims.Mobile != "01711111111" {
		t.Errorf("claims = %+v", claims)
	}

	// A token signed with a different secret must not verify.
	other := AuthConfig{SecretKey: "other-secret"}
	if _, err := other.verifyToken(token); err == nil {
		t.Error("token verified under the wrong secret")
	}
}

func TestIssueTokenWithoutSecret(t *testing.T) {
	a := AuthConfig{}
	if _, err := a.issueToken("donor-1", "01711111111"); err == nil {
		t.Fatal("expected error without a signing secret")
	}
}

func TestRequireAuth(t *testing.T) {
	s := newTestServer(t)
	donor := seedDonor(t, s, "01711111111", "", "pass123", "O+", "Dhaka", "Savar")

	token, err := s.auth.issueToken(donor.ID, donor.Mobile)
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireAuthDeletedDonor(t *testing.T) {
	s := newTestServer(t)

	// Token for a donor that was never stored.
	token, err := s.auth.issueToken("ghost", "01700000000")
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestProfileResponse(t *testing.T) {
	s := newTestServer(t)
	donor := seedDonor(t, s, "01711111111", "", "pass123", "O+", "Dhaka", "Savar")

	token, _ := s.auth.issueToken(donor.ID, donor.Mobile)
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var resp struct {
		VerifiedUser bool `json:"verifiedUser"`
	}
	decodeBody(t, w, &resp)
	if !resp.VerifiedUser {
		t.Error("verifiedUser = false, want true")
	}
}
