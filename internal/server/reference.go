// reference.go - Administrative reference data: the selectable districts
// and sub-districts per blood group, plus the lookup endpoints the signup
// form drives its cascading selects with.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// noDataResp is the not-found body of the reference lookups. Its key differs
// from the usual msg envelope because clients match on it.
type noDataResp struct {
	Message string `json:"message"`
}

// createReferenceReq is the JSON payload of POST /univercelData. The
// upazilla list is optional; an absent list stores an empty one.
type createReferenceReq struct {
	BloodGroup string     `json:"bloodGroups"`
	Districts  []District `json:"districts"`
	Upazillas  []Upazilla `json:"upazillas"`
}

// createReferenceHandler handles POST /univercelData, the administrative
// seed call that loads a blood group's reference lists.
func (s *Server) createReferenceHandler(w http.ResponseWriter, r *http.Request) {
	var req createReferenceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BloodGroup == "" {
		writeMsg(w, http.StatusBadRequest, "bloodGroups is required")
		return
	}
	if len(req.Districts) == 0 {
		writeMsg(w, http.StatusBadRequest, "districts is required")
		return
	}
	if req.Upazillas == nil {
		req.Upazillas = []Upazilla{}
	}

	rec := &ReferenceRecord{
		ID:         uuid.NewString(),
		BloodGroup: req.BloodGroup,
		Districts:  req.Districts,
		Upazillas:  req.Upazillas,
	}
	if err := s.refs.Create(r.Context(), rec); err != nil {
		Error("reference: insert failed", nil, err)
		writeMsg(w, http.StatusInternalServerError, "failed to create record")
		return
	}

	Info("reference record created", map[string]any{"blood_group": rec.BloodGroup})
	writeJSON(w, http.StatusCreated, rec)
}

// listReferenceHandler handles GET /univercelData: every record, storage
// order.
func (s *Server) listReferenceHandler(w http.ResponseWriter, r *http.Request) {
	recs, err := s.refs.All(r.Context())
	if err != nil {
		Error("reference: list failed", nil, err)
		writeMsg(w, http.StatusInternalServerError, "server error")
		return
	}
	if recs == nil {
		recs = []ReferenceRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

type upazillaLookupReq struct {
	Upazilla string `json:"upazilla"`
}

// upazillaHandler handles POST /upazilla. The request names a district
// identifier; the response is the upazilla entries belonging to it, taken
// from the record whose upazilla list references that district.
func (s *Server) upazillaHandler(w http.ResponseWriter, r *http.Request) {
	var req upazillaLookupReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Upazilla == "" {
		writeMsg(w, http.StatusBadRequest, "upazilla is required")
		return
	}

	rec, err := s.refs.ByUpazillaDistrictID(r.Context(), req.Upazilla)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, noDataResp{Message: "No data found"})
			return
		}
		Error("reference: upazilla lookup failed", map[string]any{"district_id": req.Upazilla}, err)
		writeMsg(w, http.StatusInternalServerError, "server error")
		return
	}

	matches := make([]Upazilla, 0, len(rec.Upazillas))
	for _, u := range rec.Upazillas {
		if u.DistrictID == req.Upazilla {
			matches = append(matches, u)
		}
	}
	writeJSON(w, http.StatusOK, matches)
}

type districtLookupReq struct {
	DistrictNumber string `json:"districtNumber"`
}

// getDistrictHandler handles POST /getDistrict: the same shape as the
// upazilla lookup, over the district list.
func (s *Server) getDistrictHandler(w http.ResponseWriter, r *http.Request) {
	var req districtLookupReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DistrictNumber == "" {
		writeMsg(w, http.StatusBadRequest, "districtNumber is required")
		return
	}

	rec, err := s.refs.ByDistrictID(r.Context(), req.DistrictNumber)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, noDataResp{Message: "No data found"})
			return
		}
		Error("reference: district lookup failed", map[string]any{"district_id": req.DistrictNumber}, err)
		writeMsg(w, http.StatusInternalServerError, "server error")
		return
	}

	matches := make([]District, 0, len(rec.Districts))
	for _, d := range rec.Districts {
		if d.ID == req.DistrictNumber {
			matches = append(matches, d)
		}
	}
	writeJSON(w, http.StatusOK, matches)
}
