package booking

import "porter/internal/types"

func validBooking() Booking {
	return Booking{
		Pickup: Pickup{Terminal: "Terminal 3", Bay: "Bay 4"},
		Dropoff: Dropoff{
			Location:     "Bel-Air, Makati, Metro Manila, Philippines",
			Coordinates:  &types.Point{Lat: 14.5614, Lng: 121.0296},
			Region:       "National Capital Region (NCR)",
			Province:     "Metro Manila",
			City:         "City of Makati",
			Barangay:     "Bel-Air",
			PostalCode:   "1209",
			AddressLine1: "12 Jupiter St.",
		},
		Passengers: []Passenger{
			{
				FirstName:           "Maria",
				LastName:            "Santos",
				FlightNumber:        "PR 102",
				ContactNumber:       "+63 917 123 4567",
				LuggageQuantity:     2,
				LuggageDescriptions: []string{"Black suitcase", "Blue duffel"},
			},
			{
				FirstName:           "Jose",
				MiddleName:          "Cruz",
				LastName:            "Reyes",
				Suffix:              "Jr.",
				FlightNumber:        "5J 560",
				ContactNumber:       "+63 998 765 4321",
				LuggageQuantity:     7,
				LuggageDescriptions: []string{"a", "b", "c", "d", "e", "f", "g"},
			},
		},
	}
}
