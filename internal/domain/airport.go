package domain

type Airport struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Country  string `json:"country"`
	IataCode string `json:"iata_code"`
	IcaoCode string `json:"icao_code"`
	Timezone string `json:"timezone"`
}
