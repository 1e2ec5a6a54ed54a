package entitlement

import (
	"strings"
	"unicode"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

// Action names accepted by CanPerformAction.
const (
	ActionCreateAd          = "create_ad"
	ActionExchange          = "exchange"
	ActionMessage           = "message"
	ActionBoostAd           = "boost_ad"
	ActionViewAdvancedStats = "view_advanced_stats"
)

// Feature names accepted by HasFeature and GetFeatureLimit. The camelCase
// spelling of each (maxAds, canExchange, ...) is accepted too.
const (
	FeatureMaxAds           = "max_ads"
	FeatureCanExchange      = "can_exchange"
	FeatureCanMessage       = "can_message"
	FeatureHasBoost         = "has_boost"
	FeatureHasAdvancedStats = "has_advanced_stats"
	FeatureHasPremiumBadge  = "has_premium_badge"
	FeatureVisibilityBoost  = "visibility_boost"
	FeatureSponsoredAds     = "sponsored_ads"
	FeatureBoostDuration    = "boost_duration"
	FeatureAutoBoost        = "auto_boost"
	FeatureBoostInterval    = "boost_interval"
	FeatureCustomPage       = "custom_page"
	FeatureCSVExport        = "csv_export"
	FeaturePromotions       = "promotions"
	FeatureBusinessBadge    = "business_badge"
)

// FeaturesOf returns the feature table of plan; ok is false for unknown plans.
func FeaturesOf(plan domain.PlanID) (Features, bool) {
	p, ok := Lookup(plan)
	return p.Features, ok
}

// featureKey folds a camelCase feature name into its snake_case constant.
func featureKey(name string) string {
	if strings.IndexFunc(name, unicode.IsUpper) < 0 {
		return name
	}
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// HasFeature looks up a boolean flag. Unknown plan or feature -> false.
func HasFeature(plan domain.PlanID, feature string) bool {
	f, ok := FeaturesOf(plan)
	if !ok {
		return false
	}
	switch featureKey(feature) {
	case FeatureCanExchange:
		return f.CanExchange
	case FeatureCanMessage:
		return f.CanMessage
	case FeatureHasBoost:
		return f.HasBoost
	case FeatureHasAdvancedStats:
		return f.HasAdvancedStats
	case FeatureHasPremiumBadge:
		return f.HasPremiumBadge
	case FeatureVisibilityBoost:
		return f.VisibilityBoost
	case FeatureAutoBoost:
		return f.AutoBoost
	case FeatureCustomPage:
		return f.CustomPage
	case FeatureCSVExport:
		return f.CSVExport
	case FeaturePromotions:
		return f.Promotions
	case FeatureBusinessBadge:
		return f.BusinessBadge
	case FeatureMaxAds:
		return f.MaxAds != 0
	case FeatureSponsoredAds:
		return f.SponsoredAds > 0
	}
	return false
}

// GetFeatureLimit returns a numeric limit; Unlimited (-1) means no cap.
// Unknown plan or feature -> 0.
func GetFeatureLimit(plan domain.PlanID, feature string) int {
	f, ok := FeaturesOf(plan)
	if !ok {
		return 0
	}
	switch featureKey(feature) {
	case FeatureMaxAds:
		return f.MaxAds
	case FeatureSponsoredAds:
		return f.SponsoredAds
	case FeatureBoostDuration:
		return f.BoostDuration
	case FeatureBoostInterval:
		return f.BoostInterval
	}
	return 0
}

// CanPerformAction applies the per-action policy. It fails closed: unknown plan or action -> false.
func CanPerformAction(plan domain.PlanID, action string, currentCount int) bool {
	f, ok := FeaturesOf(plan)
	if !ok {
		return false
	}
	switch action {
	case ActionCreateAd:
		return f.MaxAds == Unlimited || currentCount < f.MaxAds
	case ActionExchange:
		return f.CanExchange
	case ActionMessage:
		return f.CanMessage
	case ActionBoostAd:
		return f.HasBoost
	case ActionViewAdvancedStats:
		return f.HasAdvancedStats
	}
	return false
}

// KnownAction reports whether action is one CanPerformAction understands.
func KnownAction(action string) bool {
	switch action {
	case ActionCreateAd, ActionExchange, ActionMessage, ActionBoostAd, ActionViewAdvancedStats:
		return true
	}
	return false
}
