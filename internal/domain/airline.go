package domain

type Airline struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IataCode string `json:"iata_code"`
	IcaoCode string `json:"icao_code"`
	Country  string `json:"country"`
	Active   bool   `json:"active"`
}
