package flights

import "strconv"

// Presentational airline assignment. When the backend does not name a
// carrier, a route is mapped deterministically onto one so that repeated
// searches show the same airline and flight number. Pure functions only.

// Airline is a display carrier
type Airline struct {
	Name string
	Code string
}

var airlines = []Airline{
	{Name: "IndiGo", Code: "6E"},
	{Name: "Air India", Code: "AI"},
	{Name: "SpiceJet", Code: "SG"},
	{Name: "Vistara", Code: "UK"},
	{Name: "GoFirst", Code: "G8"},
	{Name: "AirAsia India", Code: "I5"},
	{Name: "Akasa Air", Code: "QP"},
}

// RouteHash maps a route string ("DEL-BOM") to a 32-bit hash.
// h = 31*h + ch per character, wrapping at 32 bits.
func RouteHash(route string) int32 {
	var h int32
	for _, ch := range route {
		h = h*31 + int32(ch)
	}
	return h
}

func absHash(route string) int64 {
	h := int64(RouteHash(route))
	if h < 0 {
		h = -h
	}
	return h
}

// AirlineForRoute returns the carrier for a route. A known original airline
// wins; otherwise the route hash picks one.
func AirlineForRoute(originalAirline, route string) Airline {
	if originalAirline != "" && originalAirline != "Unknown Airline" {
		for _, a := range airlines {
			if a.Name == originalAirline {
				return a
			}
		}
		return Airline{Name: originalAirline, Code: "XX"}
	}
	return airlines[absHash(route)%int64(len(airlines))]
}

// FlightNumber derives a stable flight number (1000-9999) for a route.
func FlightNumber(airlineCode, route string) string {
	return airlineCode + strconv.FormatInt(1000+absHash(route)%8999, 10)
}
