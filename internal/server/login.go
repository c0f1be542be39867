// login.go - Password login against either of a donor's contact numbers.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type loginReq struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// loginResp carries the signed token, already prefixed with the Bearer
// scheme so clients can store it straight into the Authorization header.
type loginResp struct {
	Token  string `json:"token"`
	Mobile string `json:"mobile"`
}

// loginHandler handles POST /login. The submitted number may be either the
// donor's primary mobile or the alternate women's contact number; the
// response and the token claims echo whichever number the client sent.
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Mobile = strings.TrimSpace(req.Mobile)
	if req.Mobile == "" || req.Password == "" {
		writeMsg(w, http.StatusBadRequest, "mobile and password are required")
		return
	}

	donor, err := s.donors.FindByNumber(r.Context(), req.Mobile)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			GetMetrics().RecordLoginAttempt(false)
			writeMsg(w, http.StatusUnauthorized, "Invalid Information")
			return
		}
		Error("login: lookup failed", map[string]any{"mobile": req.Mobile}, err)
		writeMsg(w, http.StatusInternalServerError, "server error")
		return
	}

	if !verifyPassword(req.Password, donor.PasswordHash) {
		GetMetrics().RecordLoginAttempt(false)
		writeMsg(w, http.StatusUnauthorized, "Passwords do not match.")
		return
	}

	token, err := s.auth.issueToken(donor.ID, req.Mobile)
	if err != nil {
		Error("login: token signing failed", nil, err)
		writeMsg(w, http.StatusInternalServerError, "server error")
		return
	}

	GetMetrics().RecordLoginAttempt(true)
	Info("login", map[string]any{"mobile": req.Mobile})
	writeJSON(w, http.StatusOK, loginResp{Token: "Bearer " + token, Mobile: req.Mobile})
}
