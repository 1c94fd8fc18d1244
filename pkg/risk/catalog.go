package risk

// catalog is the standard risk register. It does not vary with the project;
// every scenario is assessed against the same six factors.
var catalog = []Factor{
	{
		ID:          "material-price-escalation",
		Category:    Financial,
		Description: "Material prices rise faster than the estimate during construction",
		Probability: High,
		Impact:      Medium,
		Mitigation:  "Fix prices for steel and concrete in supplier contracts; keep the contingency reserve ring-fenced",
	},
	{
		ID:          "financing-cost-increase",
		Category:    Financial,
		Description: "Interest rate changes increase the cost of construction financing",
		Probability: Medium,
		Impact:      High,
		Mitigation:  "Lock a fixed-rate facility before groundbreaking",
	},
	{
		ID:          "ground-conditions",
		Category:    Technical,
		Description: "Ground conditions differ from the geotechnical survey",
		Probability: Medium,
		Impact:      Medium,
		Mitigation:  "Commission additional boreholes and keep a foundation redesign allowance",
	},
	{
		ID:          "skilled-labor-shortage",
		Category:    Technical,
		Description: "Shortage of skilled trades delays structural and finishing works",
		Probability: High,
		Impact:      Medium,
		Mitigation:  "Sign subcontractors early and schedule critical trades with float",
	},
	{
		ID:          "weather-delays",
		Category:    Environmental,
		Description: "Adverse weather stops concrete pours and facade installation",
		Probability: High,
		Impact:      Low,
		Mitigation:  "Plan structural works outside winter months and use cold-weather concreting",
	},
	{
		ID:          "permit-delays",
		Category:    Regulatory,
		Description: "Building permit or occupancy approval is delayed by the municipality",
		Probability: Medium,
		Impact:      Medium,
		Mitigation:  "Engage a permit consultant and submit complete documentation at the design stage",
	},
}

// Catalog returns a fresh copy of the standard risk catalog.
func Catalog() []Factor {
	out := make([]Factor, len(catalog))
	copy(out, catalog)
	return out
}

// AssessCatalog scores the standard catalog.
func AssessCatalog() Assessment {
	a, err := Assess(Catalog())
	if err != nil {
		// The built-in catalog only contains defined levels.
		panic(err)
	}
	return a
}
