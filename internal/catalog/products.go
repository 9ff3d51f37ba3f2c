package catalog

// Networks lists the mobile networks available for data and airtime
// purchases, in display order.
var Networks = []string{"MTN", "AIRTEL", "GLO", "9MOBILE"}

// IsNetwork reports whether name is a supported mobile network.
func IsNetwork(name string) bool {
	for _, n := range Networks {
		if n == name {
			return true
		}
	}
	return false
}

// AirtimeQuickAmounts are the preset top-up amounts offered before free
// entry.
var AirtimeQuickAmounts = []float64{100, 200, 500, 1000, 2000, 5000}

// CablePlan describes one cable TV bouquet with its backend plan ID.
type CablePlan struct {
	ID       int
	Name     string
	Provider string
	Price    float64
}

// CablePlans lists the available bouquets.
var CablePlans = []CablePlan{
	{ID: 1, Name: "DStv Compact", Provider: "DStv", Price: 7900},
	{ID: 2, Name: "DStv Premium", Provider: "DStv", Price: 24500},
	{ID: 3, Name: "GOtv Max", Provider: "GOtv", Price: 4900},
	{ID: 4, Name: "GOtv Jolli", Provider: "GOtv", Price: 3200},
	{ID: 5, Name: "StarTimes Nova", Provider: "StarTimes", Price: 1500},
	{ID: 6, Name: "StarTimes Basic", Provider: "StarTimes", Price: 2500},
}

// CablePlanByID returns the bouquet with the given plan ID, if any.
func CablePlanByID(id int) (CablePlan, bool) {
	for _, p := range CablePlans {
		if p.ID == id {
			return p, true
		}
	}
	return CablePlan{}, false
}
