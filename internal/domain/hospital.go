package domain

import (
	"time"

	"github.com/google/uuid"
)

type BloodType string

const (
	BloodAPos  BloodType = "A+"
	BloodANeg  BloodType = "A-"
	BloodBPos  BloodType = "B+"
	BloodBNeg  BloodType = "B-"
	BloodABPos BloodType = "AB+"
	BloodABNeg BloodType = "AB-"
	BloodOPos  BloodType = "O+"
	BloodONeg  BloodType = "O-"
)

var BloodTypes = []BloodType{
	BloodAPos, BloodANeg, BloodBPos, BloodBNeg,
	BloodABPos, BloodABNeg, BloodOPos, BloodONeg,
}

func (b BloodType) Valid() bool {
	for _, t := range BloodTypes {
		if b == t {
			return true
		}
	}
	return false
}

// BloodInventory maps blood type to units on hand. Counts never go negative;
// Total() must equal the sum of per-type units after every mutation.
type BloodInventory map[BloodType]int

func (inv BloodInventory) Total() int {
	total := 0
	for _, units := range inv {
		total += units
	}
	return total
}

func (inv BloodInventory) Clone() BloodInventory {
	out := make(BloodInventory, len(inv))
	for t, units := range inv {
		out[t] = units
	}
	return out
}

type Hospital struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	PasswordHash   string         `json:"-"`
	Location       Location       `json:"location"`
	BedsAvailable  int            `json:"beds_available"`
	StaffCount     map[string]int `json:"staff_count"`
	BloodInventory BloodInventory `json:"blood_inventory"`
	Specialties    []string       `json:"specialties"`
	IsAvailable    bool           `json:"is_available"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (h *Hospital) Clone() *Hospital {
	if h == nil {
		return nil
	}
	out := *h
	out.BloodInventory = h.BloodInventory.Clone()
	out.StaffCount = make(map[string]int, len(h.StaffCount))
	for k, v := range h.StaffCount {
		out.StaffCount[k] = v
	}
	out.Specialties = append([]string(nil), h.Specialties...)
	return &out
}
