package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

// newTestServer assembles a server on in-memory stores. No database or
// object storage is involved.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Config{
		Addr:      ":0",
		Build:     "test",
		SecretKey: "test-secret",
	})
}

// seedDonor registers a donor directly in the store with a known password.
func seedDonor(t *testing.T, s *Server, mobile, womenNumber, password, bloodGroup, district, upazilla string) *Donor {
	t.Helper()
	hash, err := hashPassword(password)
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	d := &Donor{
		ID:           uuid.NewString(),
		Name:         "Test Donor " + mobile,
		Mobile:       mobile,
		WomenNumber:  womenNumber,
		BloodGroup:   bloodGroup,
		PasswordHash: hash,
		PresentAddress: Address{
			District: district,
			Upazilla: upazilla,
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.donors.Create(context.Background(), d); err != nil {
		t.Fatalf("seed donor: %v", err)
	}
	return d
}

// doJSON performs a request with a JSON body against the full handler chain
// and returns the recorder.
func doJSON(t *testing.T, s *Server, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals the recorder body into v.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// bodyMsg extracts the msg field of the uniform error envelope.
func bodyMsg(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Msg string `json:"msg"`
	}
	decodeBody(t, w, &resp)
	return resp.Msg
}
