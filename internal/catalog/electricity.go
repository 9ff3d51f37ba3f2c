package catalog

// PlanType selects between the two tariff products every disco exposes.
type PlanType string

const (
	Prepaid  PlanType = "prepaid"
	Postpaid PlanType = "postpaid"
)

// ElectricityProvider holds the backend plan IDs for one distribution
// company.
type ElectricityProvider struct {
	Name     string
	Prepaid  int
	Postpaid int
}

// DefaultElectricityPlanID is used when a provider name is not recognized
// (AEDC prepaid).
const DefaultElectricityPlanID = 15

// ElectricityProviders lists every supported disco with its fixed plan IDs.
// The IDs are assigned by the utility aggregator and must not be reordered.
var ElectricityProviders = []ElectricityProvider{
	{Name: "IKEDC", Prepaid: 1, Postpaid: 2},
	{Name: "EKEDC", Prepaid: 3, Postpaid: 4},
	{Name: "KEDCO", Prepaid: 5, Postpaid: 6},
	{Name: "PHED", Prepaid: 7, Postpaid: 8},
	{Name: "JED", Prepaid: 9, Postpaid: 10},
	{Name: "IBEDC", Prepaid: 11, Postpaid: 12},
	{Name: "KAEDCO", Prepaid: 13, Postpaid: 14},
	{Name: "AEDC", Prepaid: 15, Postpaid: 16},
	{Name: "EEDC", Prepaid: 17, Postpaid: 18},
	{Name: "BEDC", Prepaid: 19, Postpaid: 20},
	{Name: "ABA", Prepaid: 22, Postpaid: 23},
	{Name: "YEDC", Prepaid: 24, Postpaid: 25},
}

// ElectricityPlanID resolves a provider name and plan type to the aggregator
// plan ID, falling back to DefaultElectricityPlanID for unknown providers.
func ElectricityPlanID(provider string, planType PlanType) int {
	for _, p := range ElectricityProviders {
		if p.Name == provider {
			if planType == Postpaid {
				return p.Postpaid
			}
			return p.Prepaid
		}
	}
	return DefaultElectricityPlanID
}

// IsElectricityProvider reports whether name is one of the supported discos.
func IsElectricityProvider(name string) bool {
	for _, p := range ElectricityProviders {
		if p.Name == name {
			return true
		}
	}
	return false
}
