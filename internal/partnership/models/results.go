package models

// GroupDetails is a group with its full roster.
type GroupDetails struct {
	Group         *PartnershipGroup `json:"group"`
	Members       []*Partnership    `json:"members"`
	AcceptedCount int               `json:"accepted_count"`
}

// GroupSummary is a group listed for an opening.
type GroupSummary struct {
	Group         *PartnershipGroup `json:"group"`
	AcceptedCount int               `json:"accepted_count"`
}

// StatusChange is the result of setting a group's status.
type StatusChange struct {
	Group          *PartnershipGroup
	PreviousStatus GroupStatus
	// Cascaded holds member records moved by a terminal status.
	Cascaded []*Partnership
}

// ProvisionOutcome describes what the lifecycle orchestrator did for an opening.
type ProvisionOutcome string

const (
	ProvisionCreated  ProvisionOutcome = "created"
	ProvisionExisting ProvisionOutcome = "existing"
	ProvisionFailed   ProvisionOutcome = "failed"
)

// ProvisionResult reports the creator's group after an opening approval.
type ProvisionResult struct {
	Outcome ProvisionOutcome
	// Group is the creator's own group; nil when the existing record belongs
	// to another user's group or provisioning failed.
	Group       *PartnershipGroup
	Partnership *Partnership
	// Err is set when Outcome is ProvisionFailed.
	Err error
}
