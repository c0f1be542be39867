package server

import (
	"encoding/json"
	"net/http"
	"testing"
)

func seedReference(t *testing.T, s *Server) {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/univercelData", map[string]any{
		"bloodGroups": "O+",
		"districts": []map[string]string{
			{"id": "1", "name": "Dhaka"},
			{"id": "2", "name": "Khulna"},
		},
		"upazillas": []map[string]string{
			{"id": "10", "district_id": "1", "name": "Savar"},
			{"id": "11", "district_id": "1", "name": "Dhamrai"},
			{"id": "20", "district_id": "2", "name": "Dumuria"},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("seed reference: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestCreateAndListReference(t *testing.T) {
	s := newTestServer(t)
	seedReference(t, s)

	w := doJSON(t, s, http.MethodGet, "/univercelData", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status = %d", w.Code)
	}

	var recs []ReferenceRecord
	if err := json.Unmarshal(w.Body.Bytes(), &recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].BloodGroup != "O+" || len(recs[0].Districts) != 2 || len(recs[0].Upazillas) != 3 {
		t.Errorf("record = %+v", recs[0])
	}
}

func TestCreateReferenceWithoutUpazillas(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/univercelData", map[string]any{
		"bloodGroups": "A+",
		"districts":   []map[string]string{{"id": "1", "name": "Dhaka"}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var rec ReferenceRecord
	decodeBody(t, w, &rec)
	if rec.Upazillas == nil || len(rec.Upazillas) != 0 {
		t.Errorf("upazillas = %v, want empty list", rec.Upazillas)
	}
}

func TestUpazillaLookup(t *testing.T) {
	s := newTestServer(t)
	seedReference(t, s)

	w := doJSON(t, s, http.MethodPost, "/upazilla", map[string]string{"upazilla": "1"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var ups []Upazilla
	if err := json.Unmarshal(w.Body.Bytes(), &ups); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ups) != 2 {
		t.Fatalf("got %d upazillas, want 2", len(ups))
	}
	for _, u := range ups {
		if u.DistrictID != "1" {
			t.Errorf("upazilla %s belongs to district %s", u.Name, u.DistrictID)
		}
	}
}

func TestUpazillaLookupNoData(t *testing.T) {
	s := newTestServer(t)
	seedReference(t, s)

	w := doJSON(t, s, http.MethodPost, "/upazilla", map[string]string{"upazilla": "99"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, w, &resp)
	if resp.Message != "No data found" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestDistrictLookup(t *testing.T) {
	s := newTestServer(t)
	seedReference(t, s)

	w := doJSON(t, s, http.MethodPost, "/getDistrict", map[string]string{"districtNumber": "2"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var ds []District
	if err := json.Unmarshal(w.Body.Bytes(), &ds); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ds) != 1 || ds[0].Name != "Khulna" {
		t.Errorf("districts = %+v", ds)
	}
}

func TestDistrictLookupNoData(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/getDistrict", map[string]string{"districtNumber": "7"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
