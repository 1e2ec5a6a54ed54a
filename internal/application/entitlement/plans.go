package entitlement

import "github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"

// Unlimited is the limit sentinel for "no cap".
const Unlimited = -1

type SupportLevel string

const (
	SupportFAQ       SupportLevel = "faq"
	SupportEmail     SupportLevel = "email"
	SupportChat      SupportLevel = "chat"
	SupportDedicated SupportLevel = "dedicated"
)

// Features is the fixed capability/limit table of one plan.
type Features struct {
	MaxAds           int          `json:"max_ads"`
	CanExchange      bool         `json:"can_exchange"`
	CanMessage       bool         `json:"can_message"`
	HasBoost         bool         `json:"has_boost"`
	HasAdvancedStats bool         `json:"has_advanced_stats"`
	HasPremiumBadge  bool         `json:"has_premium_badge"`
	SupportLevel     SupportLevel `json:"support_level"`
	VisibilityBoost  bool         `json:"visibility_boost"`
	SponsoredAds     int          `json:"sponsored_ads"`
	BoostDuration    int          `json:"boost_duration,omitempty"` // hours per day
	AutoBoost        bool         `json:"auto_boost,omitempty"`
	BoostInterval    int          `json:"boost_interval,omitempty"` // hours
	CustomPage       bool         `json:"custom_page,omitempty"`
	CSVExport        bool         `json:"csv_export,omitempty"`
	Promotions       bool         `json:"promotions,omitempty"`
	Integrations     []string     `json:"integrations,omitempty"`
	BusinessBadge    bool         `json:"business_badge,omitempty"`
}

// Plan is a catalogue entry: display data plus features.
type Plan struct {
	ID           domain.PlanID `json:"id"`
	Name         string        `json:"name"`
	MonthlyCents int           `json:"monthly_cents"`
	Features     Features      `json:"features"`
}

var catalogue = map[domain.PlanID]Plan{
	domain.PlanFree: {
		ID:   domain.PlanFree,
		Name: domain.PlanFree.DisplayName(),
		Features: Features{
			MaxAds:       15,
			SupportLevel: SupportFAQ,
		},
	},
	domain.PlanStandard: {
		ID:           domain.PlanStandard,
		Name:         domain.PlanStandard.DisplayName(),
		MonthlyCents: 499,
		Features: Features{
			MaxAds:          35,
			CanExchange:     true,
			CanMessage:      true,
			HasBoost:        true,
			SupportLevel:    SupportEmail,
			VisibilityBoost: true,
			BoostDuration:   1,
		},
	},
	domain.PlanPremium: {
		ID:           domain.PlanPremium,
		Name:         domain.PlanPremium.DisplayName(),
		MonthlyCents: 999,
		Features: Features{
			MaxAds:           Unlimited,
			CanExchange:      true,
			CanMessage:       true,
			HasBoost:         true,
			HasAdvancedStats: true,
			HasPremiumBadge:  true,
			SupportLevel:     SupportChat,
			VisibilityBoost:  true,
			AutoBoost:        true,
			BoostInterval:    12,
		},
	},
	domain.PlanBusiness: {
		ID:           domain.PlanBusiness,
		Name:         domain.PlanBusiness.DisplayName(),
		MonthlyCents: 2999,
		Features: Features{
			MaxAds:           Unlimited,
			CanExchange:      true,
			CanMessage:       true,
			HasBoost:         true,
			HasAdvancedStats: true,
			HasPremiumBadge:  true,
			SupportLevel:     SupportDedicated,
			VisibilityBoost:  true,
			SponsoredAds:     5,
			CustomPage:       true,
			CSVExport:        true,
			Promotions:       true,
			Integrations:     []string{"whatsapp", "telegram"},
			BusinessBadge:    true,
		},
	},
}

var planOrder = []domain.PlanID{domain.PlanFree, domain.PlanStandard, domain.PlanPremium, domain.PlanBusiness}

// Plans lists the catalogue from free to business.
func Plans() []Plan {
	out := make([]Plan, 0, len(planOrder))
	for _, id := range planOrder {
		p, _ := Lookup(id)
		out = append(out, p)
	}
	return out
}

// Lookup returns a copy of the plan entry.
func Lookup(id domain.PlanID) (Plan, bool) {
	p, ok := catalogue[id]
	if !ok {
		return Plan{}, false
	}
	p.Features.Integrations = append([]string(nil), p.Features.Integrations...)
	return p, true
}
