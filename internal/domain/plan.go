package domain

type PlanID string

const (
	PlanFree     PlanID = "free"
	PlanStandard PlanID = "standard"
	PlanPremium  PlanID = "premium"
	PlanBusiness PlanID = "business"
)

func (p PlanID) Valid() bool {
	switch p {
	case PlanFree, PlanStandard, PlanPremium, PlanBusiness:
		return true
	}
	return false
}

func (p PlanID) DisplayName() string {
	switch p {
	case PlanFree:
		return "Free"
	case PlanStandard:
		return "Standard"
	case PlanPremium:
		return "Premium"
	case PlanBusiness:
		return "Business"
	}
	return "Unknown"
}
