// search.go - Donor search by blood group and present address.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
)

// searchReq is the JSON payload of POST /getSearchResult. Blood group and
// district are required; upazilla narrows the result when non-empty.
type searchReq struct {
	BloodGroup string `json:"bloodGroup"`
	District   string `json:"district"`
	Upazilla   string `json:"upazilla"`
}

// searchHandler handles POST /getSearchResult. The blood group is filtered
// in storage; the address filters are exact string matches against the
// present address, applied in memory since the candidate set per blood
// group is small.
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	var req searchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.BloodGroup = strings.TrimSpace(req.BloodGroup)
	if !validBloodGroup(req.BloodGroup) {
		writeMsg(w, http.StatusBadRequest, "invalid blood group")
		return
	}
	req.District = strings.TrimSpace(req.District)
	if req.District == "" {
		writeMsg(w, http.StatusBadRequest, "district is required")
		return
	}

	candidates, err := s.donors.ByBloodGroup(r.Context(), req.BloodGroup)
	if err != nil {
		Error("search: query failed", map[string]any{"blood_group": req.BloodGroup}, err)
		writeMsg(w, http.StatusInternalServerError, "server error")
		return
	}

	matches := make([]Donor, 0, len(candidates))
	for _, d := range candidates {
		if d.PresentAddress.District != req.District {
			continue
		}
		if req.Upazilla != "" && d.PresentAddress.Upazilla != req.Upazilla {
			continue
		}
		matches = append(matches, d)
	}

	GetMetrics().RecordSearch()
	writeJSON(w, http.StatusOK, matches)
}
