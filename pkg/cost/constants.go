package cost

// Cost shares and allowances. Unit prices live in the pricing table; these
// percentages are part of the formula itself.
const (
	MaterialsShare = 0.55 // of construction total
	LaborShare     = 0.30 // of construction total; equipment takes the remainder (15%)

	PermitsRate    = 0.025 // of construction total
	DesignRate     = 0.08  // of construction total
	ConsultingRate = 0.035 // of construction total
	SiteRate       = 0.12  // of construction total

	ContingencyRate = 0.15 // of subtotal

	HeightPenaltyFloors = 5    // floors above this raise the unit rate
	HeightPenaltyStep   = 0.03 // per floor above HeightPenaltyFloors, uncapped

	durationEpsilon = 1e-9
)
