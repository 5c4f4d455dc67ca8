package booking

var prices = map[ServiceType]float64{
	ServiceMovie:   15,
	ServiceSalon:   80,
	ServiceFitness: 25,
	ServiceParty:   200,
}

// PriceOf is the server-side price of a service.
func PriceOf(s ServiceType) (float64, bool) {
	p, ok := prices[s]
	return p, ok
}
