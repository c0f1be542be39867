// donors.go - Donor registration, detail and listing handlers.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// registerConflictMsg is shown when the mobile number is already registered.
// User-facing copy, kept verbatim from the production frontend contract.
const registerConflictMsg = "আপনার দেয়া নাম্বার দিয়ে ইতোমধ্যে একটি একাউন্ট খোলা আছে। অনুগ্রহ করে লগইন করুন! "

// registerDonorReq is the JSON payload of POST /donorsData. The permanent
// address is not settable at registration.
type registerDonorReq struct {
	Name             string     `json:"name"`
	Mobile           string     `json:"mobile"`
	WomenNumber      string     `json:"womenNumber"`
	Email            string     `json:"email"`
	BloodGroup       string     `json:"bloodGroup"`
	LastDonationDate *time.Time `json:"lastDonationDate"`
	Gender           string     `json:"gender"`
	DOB              *time.Time `json:"dob"`
	Password         string     `json:"password"`
	PresentAddress   Address    `json:"presentAddress"`
}

// conflictResp is the duplicate-registration response body.
type conflictResp struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
}

// registerDonorHandler handles POST /donorsData. A mobile number may only
// register once; the check happens before insert, so the uniqueness is
// best-effort rather than a storage constraint.
func (s *Server) registerDonorHandler(w http.ResponseWriter, r *http.Request) {
	var req registerDonorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Mobile = strings.TrimSpace(req.Mobile)
	req.WomenNumber = strings.TrimSpace(req.WomenNumber)
	req.Email = strings.TrimSpace(req.Email)

	if err := validateRegistration(req); err != nil {
		writeMsg(w, http.StatusBadRequest, err.Error())
		return
	}

	exists, err := s.donors.MobileExists(r.Context(), req.Mobile)
	if err != nil {
		Error("register: duplicate check failed", map[string]any{"mobile": req.Mobile}, err)
		writeMsg(w, http.StatusInternalServerError, "server error")
		return
	}
	if exists {
		GetMetrics().RecordRegistration(false)
		writeJSON(w, http.StatusConflict, conflictResp{Status: "notOk", Msg: registerConflictMsg})
		return
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		Error("register: hash failed", nil, err)
		writeMsg(w, http.StatusInternalServerError, "failed to process password")
		return
	}

	donor := &Donor{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Mobile:           req.Mobile,
		WomenNumber:      req.WomenNumber,
		Email:            req.Email,
		BloodGroup:       req.BloodGroup,
		LastDonationDate: req.LastDonationDate,
		Gender:           req.Gender,
		DOB:              req.DOB,
		PresentAddress:   req.PresentAddress,
		PasswordHash:     passwordHash,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.donors.Create(r.Context(), donor); err != nil {
		Error("register: insert failed", map[string]any{"mobile": req.Mobile}, err)
		writeMsg(w, http.StatusInternalServerError, "failed to create donor")
		return
	}

	GetMetrics().RecordRegistration(true)
	Info("donor registered", map[string]any{"mobile": donor.Mobile, "blood_group": donor.BloodGroup})
	writeJSON(w, http.StatusOK, donor)
}

// donorDetailHandler handles GET /donor/{number}. The number may be the
// donor's primary mobile or the alternate women's contact number.
func (s *Server) donorDetailHandler(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")
	donor, err := s.donors.FindByNumber(r.Context(), number)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "Not Found")
			return
		}
		Error("donor detail: lookup failed", map[string]any{"number": number}, err)
		writeMsg(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, donor)
}

// allDonorsHandler handles GET /all-donors: the full list, storage order,
// no pagination.
func (s *Server) allDonorsHandler(w http.ResponseWriter, r *http.Request) {
	donors, err := s.donors.All(r.Context())
	if err != nil {
		Error("all donors: list failed", nil, err)
		writeMsg(w, http.StatusInternalServerError, "server error")
		return
	}
	if donors == nil {
		donors = []Donor{}
	}
	writeJSON(w, http.StatusOK, donors)
}
