// store.go - Record types and store interfaces for the three collections
// (donors, reference records, chat messages). Each store owns its records
// exclusively; relationships between collections are maintained only by
// convention, never by foreign keys.
package server

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")
)

// Address is one of a donor's two addresses. Search filters on the
// present-address district and upazilla with exact string equality.
type Address struct {
	District string `json:"district"`
	Upazilla string `json:"upazilla"`
	Address  string `json:"address"`
}

// Donor is a registered individual or organization able to donate blood.
// The password hash is stored but never serialized.
type Donor struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Mobile           string     `json:"mobile"`
	WomenNumber      string     `json:"womenNumber"`
	Email            string     `json:"email"`
	BloodGroup       string     `json:"bloodGroup"`
	LastDonationDate *time.Time `json:"lastDonationDate"`
	Image            string     `json:"image"`
	Note             string     `json:"note"`
	Gender           string     `json:"gender"`
	DOB              *time.Time `json:"dob"`
	PresentAddress   Address    `json:"presentAddress"`
	PermanentAddress Address    `json:"permanentAddress"`
	PasswordHash     string     `json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// District is one selectable district entry inside a reference record.
type District struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Upazilla is one selectable sub-district entry. DistrictID references its
// parent district by identifier, by convention only.
type Upazilla struct {
	ID         string `json:"id"`
	DistrictID string `json:"district_id"`
	Name       string `json:"name"`
}

// ReferenceRecord bundles the selectable districts and sub-districts for
// one blood group. An empty upazilla list is valid.
type ReferenceRecord struct {
	ID         string     `json:"id"`
	BloodGroup string     `json:"bloodGroup"`
	Districts  []District `json:"districts"`
	Upazillas  []Upazilla `json:"upazillas"`
}

// ChatMessage is a single posted board message. Immutable once created.
type ChatMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Message   string    `json:"message"`
	Mobile    string    `json:"mobile"`
	CreatedAt time.Time `json:"createdAt"`
}

// DonorStore persists donor profiles. FindByNumber resolves a donor by any
// known identity: the primary mobile number first, then the alternate
// women's contact number. FindByMobile matches the primary mobile only.
type DonorStore interface {
	Create(ctx context.Context, d *Donor) error
	FindByID(ctx context.Context, id string) (*Donor, error)
	FindByNumber(ctx context.Context, number string) (*Donor, error)
	FindByMobile(ctx context.Context, mobile string) (*Donor, error)
	MobileExists(ctx context.Context, mobile string) (bool, error)
	All(ctx context.Context) ([]Donor, error)
	ByBloodGroup(ctx context.Context, bloodGroup string) ([]Donor, error)
	Update(ctx context.Context, d *Donor) error
}

// ReferenceStore persists blood-group reference records. The By* lookups
// return the record whose nested list contains a matching entry.
type ReferenceStore interface {
	Create(ctx context.Context, rec *ReferenceRecord) error
	All(ctx context.Context) ([]ReferenceRecord, error)
	ByDistrictID(ctx context.Context, districtID string) (*ReferenceRecord, error)
	ByUpazillaDistrictID(ctx context.Context, districtID string) (*ReferenceRecord, error)
}

// ChatStore persists board messages. No pagination: All returns everything
// in storage order.
type ChatStore interface {
	Create(ctx context.Context, msg *ChatMessage) error
	All(ctx context.Context) ([]ChatMessage, error)
}
