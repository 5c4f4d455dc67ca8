package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"voyager-be/internal/apperr"
)

// Details is the service-specific part of a booking. Each service has its
// own concrete type; DecodeDetails picks it from the service name.
type Details interface {
	Service() ServiceType
	Validate() error
}

type MovieDetails struct {
	Option string `json:"option"`
	Notes  string `json:"notes,omitempty"`
}

type SalonDetails struct {
	Option string `json:"option"`
	Notes  string `json:"notes,omitempty"`
}

type FitnessDetails struct {
	Option string `json:"option"`
	Notes  string `json:"notes,omitempty"`
}

type PartyDetails struct {
	Option string     `json:"option"`
	Guests GuestCount `json:"guests"`
	Notes  string     `json:"notes,omitempty"`
}

func (MovieDetails) Service() ServiceType   { return ServiceMovie }
func (SalonDetails) Service() ServiceType   { return ServiceSalon }
func (FitnessDetails) Service() ServiceType { return ServiceFitness }
func (PartyDetails) Service() ServiceType   { return ServiceParty }

// Options lists what each service offers.
var Options = map[ServiceType][]string{
	ServiceMovie:   {"Standard Seat", "Premium Seat", "VIP Suite"},
	ServiceSalon:   {"Haircut & Style", "Facial Treatment", "Massage", "Manicure & Pedicure"},
	ServiceFitness: {"Gym Access", "Personal Training", "Group Classes", "Pool Access"},
	ServiceParty:   {"Small Party (10-20)", "Medium Party (20-50)", "Large Party (50-100)"},
}

func validateOption(s ServiceType, option string) error {
	if option == "" {
		return apperr.Invalid("details.option is required")
	}
	if !slices.Contains(Options[s], option) {
		return apperr.Invalid("details.option %q is not offered for %s", option, s)
	}
	return nil
}

func (d MovieDetails) Validate() error   { return validateOption(ServiceMovie, d.Option) }
func (d SalonDetails) Validate() error   { return validateOption(ServiceSalon, d.Option) }
func (d FitnessDetails) Validate() error { return validateOption(ServiceFitness, d.Option) }

func (d PartyDetails) Validate() error {
	if err := validateOption(ServiceParty, d.Option); err != nil {
		return err
	}
	if d.Guests <= 0 {
		return apperr.Invalid("details.guests must be a positive number")
	}
	return nil
}

// GuestCount accepts both 12 and "12"; booking forms submit input values as strings.
type GuestCount int

func (g *GuestCount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*g = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*g = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("guests: %q is not a number", s)
		}
		*g = GuestCount(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("guests: %w", err)
	}
	*g = GuestCount(n)
	return nil
}

// DecodeDetails parses raw into the details type of s and validates it.
// Unknown fields are rejected so typos do not silently vanish.
func DecodeDetails(s ServiceType, raw json.RawMessage) (Details, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, apperr.Invalid("details are required")
	}

	d, err := newDetails(s)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(d); err != nil {
		return nil, apperr.Invalid("invalid details for %s: %v", s, err)
	}

	d = deref(d)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// loadDetails reads details already in the store. It is lenient: stored
// rows are not re-validated.
func loadDetails(s ServiceType, raw []byte) (Details, error) {
	d, err := newDetails(s)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, d); err != nil {
			return nil, fmt.Errorf("decode %s details: %w", s, err)
		}
	}
	return deref(d), nil
}

func newDetails(s ServiceType) (Details, error) {
	switch s {
	case ServiceMovie:
		return &MovieDetails{}, nil
	case ServiceSalon:
		return &SalonDetails{}, nil
	case ServiceFitness:
		return &FitnessDetails{}, nil
	case ServiceParty:
		return &PartyDetails{}, nil
	}
	return nil, ErrInvalidService
}

func deref(d Details) Details {
	switch v := d.(type) {
	case *MovieDetails:
		return *v
	case *SalonDetails:
		return *v
	case *FitnessDetails:
		return *v
	case *PartyDetails:
		return *v
	}
	return d
}
