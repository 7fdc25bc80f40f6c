package session

import "strings"

// Plan is the entitlement tier gating feature availability and the default tab.
type Plan string

const (
	PlanFree    Plan = "Free"
	PlanPremium Plan = "Premium"
)

// Premium reports whether the plan unlocks premium features.
func (p Plan) Premium() bool { return p == PlanPremium }

// Session is the authoritative client-side snapshot of the signed-in
// identity and entitlement. Field names follow the backend's user object;
// the record round-trips through the persisted store unchanged.
type Session struct {
	Email             string `json:"email"`
	Plan              Plan   `json:"plan"`
	CancelAtPeriodEnd bool   `json:"cancelAtPeriodEnd,omitempty"`
	PriceMin          string `json:"priceMin,omitempty"`
	PriceMax          string `json:"priceMax,omitempty"`
	CustomPrompt      string `json:"customPrompt,omitempty"`
}

// Valid reports whether the snapshot carries the required identity and plan.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.Email) != "" && s.Plan != ""
}
