package store

import "time"

const registrationKey = "registrationData"

// registrationTTL bounds how long a pending registration stays usable; after
// this the emailed OTP is long dead and the user must register again.
const registrationTTL = 30 * time.Minute

// PendingRegistration is the transient payload held between the
// registration-submit step and OTP verification. The email travels
// separately (via the OTP step's entry point), mirroring the original flow.
type PendingRegistration struct {
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Password     string    `json:"password"`
	ReferralCode string    `json:"referralCode,omitempty"`
	SavedAt      time.Time `json:"savedAt"`
}

// Registrations persists the pending-registration record.
type Registrations struct {
	kv  *KV
	now func() time.Time
}

func NewRegistrations(kv *KV) *Registrations {
	return &Registrations{kv: kv, now: time.Now}
}

// Save stores the pending registration with the current timestamp.
func (r *Registrations) Save(reg PendingRegistration) error {
	reg.SavedAt = r.now()
	return r.kv.Set(registrationKey, reg)
}

// Load returns the pending registration if present and fresh. Stale records
// are deleted and reported as absent.
func (r *Registrations) Load() (PendingRegistration, bool) {
	var reg PendingRegistration
	ok, err := r.kv.Get(registrationKey, &reg)
	if err != nil || !ok {
		return PendingRegistration{}, false
	}
	if !reg.SavedAt.IsZero() && r.now().Sub(reg.SavedAt) > registrationTTL {
		_ = r.kv.Delete(registrationKey)
		return PendingRegistration{}, false
	}
	return reg, true
}

// Clear discards the pending registration.
func (r *Registrations) Clear() error {
	return r.kv.Delete(registrationKey)
}
