// README: Booking validation producing field-path keyed messages.
package booking

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var phonePattern = regexp.MustCompile(`^\+63 \d{3} \d{3} \d{4}$`)

// ValidationResult maps a field path such as "passengers[1].contactNumber"
// to a message. Empty means valid.
type ValidationResult map[string]string

func (r ValidationResult) Valid() bool { return len(r) == 0 }

// Fields returns the failing field paths in sorted order.
func (r ValidationResult) Fields() []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (r ValidationResult) require(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		r[field] = msg
	}
}

// ValidationError is returned by Submit when the booking does not validate.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("booking: %d invalid field(s): %s", len(e.Result), strings.Join(e.Result.Fields(), ", "))
}

func Validate(b Booking) ValidationResult {
	r := ValidationResult{}

	r.require("pickup.terminal", b.Pickup.Terminal, "Select a pickup terminal")
	r.require("pickup.bay", b.Pickup.Bay, "Select a pickup bay")

	d := b.Dropoff
	r.require("dropoff.location", d.Location, "Enter a drop-off location")
	if d.Coordinates == nil || !d.Coordinates.Valid() {
		r["dropoff.coordinates"] = "Confirm the drop-off location on the map"
	}
	r.require("dropoff.region", d.Region, "Region is required")
	r.require("dropoff.province", d.Province, "Province is required")
	r.require("dropoff.city", d.City, "City is required")
	r.require("dropoff.barangay", d.Barangay, "Barangay is required")
	if strings.TrimSpace(d.Barangay) != "" {
		r.require("dropoff.postalCode", d.PostalCode, "Postal code is required")
	}
	r.require("dropoff.addressLine1", d.AddressLine1, "Address line 1 is required")
	if utf8.RuneCountInString(d.AddressLine1) > MaxAddressLine {
		r["dropoff.addressLine1"] = fmt.Sprintf("Address line 1 must be at most %d characters", MaxAddressLine)
	}
	if utf8.RuneCountInString(d.AddressLine2) > MaxAddressLine {
		r["dropoff.addressLine2"] = fmt.Sprintf("Address line 2 must be at most %d characters", MaxAddressLine)
	}

	switch n := len(b.Passengers); {
	case n == 0:
		r["passengers"] = "Add at least one passenger"
	case n > MaxPassengers:
		r["passengers"] = fmt.Sprintf("At most %d passengers per booking", MaxPassengers)
	}

	seen := make(map[string]int, len(b.Passengers))
	for i, p := range b.Passengers {
		validatePassenger(r, i, p)

		key := fullName(p)
		if key == "" {
			continue
		}
		if j, dup := seen[key]; dup {
			msg := "Duplicate passenger name"
			r[passengerField(j, "name")] = msg
			r[passengerField(i, "name")] = msg
			continue
		}
		seen[key] = i
	}
	return r
}

func validatePassenger(r ValidationResult, i int, p Passenger) {
	r.require(passengerField(i, "firstName"), p.FirstName, "First name is required")
	r.require(passengerField(i, "lastName"), p.LastName, "Last name is required")
	r.require(passengerField(i, "flightNumber"), p.FlightNumber, "Flight number is required")
	if !phonePattern.MatchString(p.ContactNumber) {
		r[passengerField(i, "contactNumber")] = "Use the format +63 XXX XXX XXXX"
	}

	if p.LuggageQuantity < MinLuggage || p.LuggageQuantity > MaxLuggage {
		r[passengerField(i, "luggageQuantity")] = fmt.Sprintf("Luggage quantity must be between %d and %d", MinLuggage, MaxLuggage)
		return
	}
	if len(p.LuggageDescriptions) != p.LuggageQuantity {
		r[passengerField(i, "luggageDescriptions")] = fmt.Sprintf("Describe exactly %d item(s)", p.LuggageQuantity)
		return
	}
	for j, desc := range p.LuggageDescriptions {
		r.require(fmt.Sprintf("passengers[%d].luggageDescriptions[%d]", i, j), desc, "Describe this item")
	}
}

func passengerField(i int, name string) string {
	return fmt.Sprintf("passengers[%d].%s", i, name)
}

// fullName is the case and whitespace insensitive identity used for the
// duplicate check.
func fullName(p Passenger) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.Join([]string{p.FirstName, p.MiddleName, p.LastName, p.Suffix}, " "))), " ")
}
