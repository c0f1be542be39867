// update.go - Donor profile mutation handlers: field updates, the donation
// date, and password changes. Profile updates resolve the donor by either
// contact number; the date and password mutations accept the primary mobile
// only. All of them write through the store as a whole-row update.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// wrongOldPasswordMsg is shown when the current password check fails during
// a password change. User-facing copy, kept verbatim.
const wrongOldPasswordMsg = "পুরোনো পাসওয়ার্ড ভুল দিয়েছেন !"

// updateDonorReq is the JSON payload of POST /donor/update/{number}. All
// fields are optional; absent fields leave the stored value untouched. The
// password is not changeable through this endpoint.
type updateDonorReq struct {
	Name             *string    `json:"name"`
	Mobile           *string    `json:"mobile"`
	WomenNumber      *string    `json:"womenNumber"`
	Email            *string    `json:"email"`
	BloodGroup       *string    `json:"bloodGroup"`
	LastDonationDate *time.Time `json:"lastDonationDate"`
	Note             *string    `json:"note"`
	Gender           *string    `json:"gender"`
	DOB              *time.Time `json:"dob"`
	PresentAddress   *Address   `json:"presentAddress"`
	PermanentAddress *Address   `json:"permanentAddress"`
}

// resolveDonor resolves the path number to a donor through the given store
// lookup, writing the error response itself when the donor cannot be used.
// Profile updates pass FindByNumber so the alternate women's number works;
// the date, password and photo mutations pass FindByMobile and accept the
// primary mobile only.
func (s *Server) resolveDonor(w http.ResponseWriter, r *http.Request, find func(context.Context, string) (*Donor, error)) *Donor {
	number := r.PathValue("number")
	donor, err := find(r.Context(), number)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "Not Found")
			return nil
		}
		Error("update: lookup failed", map[string]any{"number": number}, err)
		writeMsg(w, http.StatusInternalServerError, "server error")
		return nil
	}
	return donor
}

// updateDonorHandler handles POST /donor/update/{number}.
func (s *Server) updateDonorHandler(w http.ResponseWriter, r *http.Request) {
	var req updateDonorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.BloodGroup != nil && !validBloodGroup(*req.BloodGroup) {
		writeMsg(w, http.StatusBadRequest, "invalid blood group")
		return
	}
	if req.Mobile != nil && !validMobile(*req.Mobile) {
		writeMsg(w, http.StatusBadRequest, "invalid mobile number")
		return
	}
	if req.WomenNumber != nil && *req.WomenNumber != "" && !validMobile(*req.WomenNumber) {
		writeMsg(w, http.StatusBadRequest, "invalid women's number")
		return
	}

	donor := s.resolveDonor(w, r, s.donors.FindByNumber)
	if donor == nil {
		return
	}

	if req.Name != nil {
		donor.Name = *req.Name
	}
	if req.Mobile != nil {
		donor.Mobile = *req.Mobile
	}
	if req.WomenNumber != nil {
		donor.WomenNumber = *req.WomenNumber
	}
	if req.Email != nil {
		donor.Email = *req.Email
	}
	if req.BloodGroup != nil {
		donor.BloodGroup = *req.BloodGroup
	}
	if req.LastDonationDate != nil {
		donor.LastDonationDate = req.LastDonationDate
	}
	if req.Note != nil {
		donor.Note = *req.Note
	}
	if req.Gender != nil {
		donor.Gender = *req.Gender
	}
	if req.DOB != nil {
		donor.DOB = req.DOB
	}
	if req.PresentAddress != nil {
		donor.PresentAddress = *req.PresentAddress
	}
	if req.PermanentAddress != nil {
		donor.PermanentAddress = *req.PermanentAddress
	}

	if err := s.donors.Update(r.Context(), donor); err != nil {
		Error("update: write failed", map[string]any{"donor_id": donor.ID}, err)
		writeMsg(w, http.StatusInternalServerError, "failed to update donor")
		return
	}

	writeJSON(w, http.StatusOK, donor)
}

// manageDateReq accepts the donation date under either field name: clients
// of the original API send "date", newer ones send "lastDonationDate". Raw
// messages keep an absent field distinguishable from an explicit null.
type manageDateReq struct {
	Date             json.RawMessage `json:"date"`
	LastDonationDate json.RawMessage `json:"lastDonationDate"`
	Note             *string         `json:"note"`
}

var jsonNull = []byte("null")

// manageDateHandler handles POST /manage-date/{number}: it records a new
// donation date, and optionally a note, for the donor. An absent date
// leaves the stored one untouched; an explicit null clears it.
func (s *Server) manageDateHandler(w http.ResponseWriter, r *http.Request) {
	var req manageDateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	raw := req.Date
	if len(raw) == 0 {
		raw = req.LastDonationDate
	}
	var date *time.Time
	if len(raw) > 0 && !bytes.Equal(raw, jsonNull) {
		var t time.Time
		if err := json.Unmarshal(raw, &t); err != nil {
			writeMsg(w, http.StatusBadRequest, "invalid date")
			return
		}
		date = &t
	}

	donor := s.resolveDonor(w, r, s.donors.FindByMobile)
	if donor == nil {
		return
	}

	if len(raw) > 0 {
		donor.LastDonationDate = date
	}
	if req.Note != nil {
		donor.Note = *req.Note
	}
	if err := s.donors.Update(r.Context(), donor); err != nil {
		Error("manage date: write failed", map[string]any{"donor_id": donor.ID}, err)
		writeMsg(w, http.StatusInternalServerError, "failed to update donor")
		return
	}

	writeJSON(w, http.StatusOK, donor)
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// changePasswordHandler handles POST /change-password/{number}. The current
// password must verify before the new one is stored.
func (s *Server) changePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req changePasswordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.NewPassword == "" {
		writeMsg(w, http.StatusBadRequest, "new password is required")
		return
	}

	donor := s.resolveDonor(w, r, s.donors.FindByMobile)
	if donor == nil {
		return
	}

	if !verifyPassword(req.OldPassword, donor.PasswordHash) {
		writeMsg(w, http.StatusUnauthorized, wrongOldPasswordMsg)
		return
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		Error("change password: hash failed", nil, err)
		writeMsg(w, http.StatusInternalServerError, "failed to process password")
		return
	}

	donor.PasswordHash = hash
	if err := s.donors.Update(r.Context(), donor); err != nil {
		Error("change password: write failed", map[string]any{"donor_id": donor.ID}, err)
		writeMsg(w, http.StatusInternalServerError, "failed to update donor")
		return
	}

	Info("password changed", map[string]any{"mobile": donor.Mobile})
	writeMsg(w, http.StatusOK, "Successfully Changed the password")
}
