package server

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestSearch(t *testing.T) {
	s := newTestServer(t)
	seedDonor(t, s, "01711111111", "", "pass", "O+", "Dhaka", "Savar")
	seedDonor(t, s, "01722222222", "", "pass", "O+", "Dhaka", "Dhamrai")
	seedDonor(t, s, "01733333333", "", "pass", "O+", "Khulna", "Dumuria")
	seedDonor(t, s, "01744444444", "", "pass", "A+", "Dhaka", "Savar")

	tests := []struct {
		name    string
		payload map[string]string
		want    []string
	}{
		{
			"by district",
			map[string]string{"bloodGroup": "O+", "district": "Dhaka"},
			[]string{"01711111111", "01722222222"},
		},
		{
			"narrowed by upazilla",
			map[string]string{"bloodGroup": "O+", "district": "Dhaka", "upazilla": "Savar"},
			[]string{"01711111111"},
		},
		{
			"no matches",
			map[string]string{"bloodGroup": "AB-", "district": "Dhaka"},
			[]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, s, http.MethodPost, "/getSearchResult", tt.payload)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}

			var donors []Donor
			if err := json.Unmarshal(w.Body.Bytes(), &donors); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(donors) != len(tt.want) {
				t.Fatalf("got %d donors, want %d", len(donors), len(tt.want))
			}
			for i, mobile := range tt.want {
				if donors[i].Mobile != mobile {
					t.Errorf("donor[%d] = %s, want %s", i, donors[i].Mobile, mobile)
				}
			}
		})
	}
}

func TestSearchInvalidBloodGroup(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/getSearchResult", map[string]string{
		"bloodGroup": "X",
		"district":   "Dhaka",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSearchMissingDistrict(t *testing.T) {
	s := newTestServer(t)
	seedDonor(t, s, "01711111111", "", "pass", "O+", "Dhaka", "Savar")

	w := doJSON(t, s, http.MethodPost, "/getSearchResult", map[string]string{
		"bloodGroup": "O+",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if msg := bodyMsg(t, w); msg != "district is required" {
		t.Errorf("msg = %q", msg)
	}
}

func TestSearchEmptyResultIsArray(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/getSearchResult", map[string]string{
		"bloodGroup": "B-",
		"district":   "Dhaka",
	})
	if got := w.Body.String(); got == "null\n" {
		t.Errorf("empty result serialized as null")
	}
}
