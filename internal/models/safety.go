package models

import "errors"

// RiskLevel classifies the safety risk detected in user text.
type RiskLevel string

const (
	RiskNone            RiskLevel = "none"
	RiskSelfHarm        RiskLevel = "self_harm"
	RiskEatingDisorder  RiskLevel = "eating_disorder"
	RiskSevereAddiction RiskLevel = "severe_addiction"
	RiskViolence        RiskLevel = "violence"
	RiskOther           RiskLevel = "other"
)

// SafetyAction is the decision attached to a safety classification.
type SafetyAction string

const (
	// ActionAllow means the coach may answer normally.
	ActionAllow SafetyAction = "allow"
	// ActionBlockAndEscalate means only the fixed safe message may be
	// surfaced; no freeform generation downstream.
	ActionBlockAndEscalate SafetyAction = "block_and_escalate"
)

// Error variables for safety validation.
var (
	ErrInvalidRiskLevel    = errors.New("invalid risk level")
	ErrInvalidSafetyAction = errors.New("invalid safety action")
	ErrMissingBlockMessage = errors.New("message is required when action is block_and_escalate")
)

// SafetyResult is the outcome of the safety classification stage.
type SafetyResult struct {
	Risk    RiskLevel    `json:"risk"`
	Action  SafetyAction `json:"action"`
	Message string       `json:"message"`
}

// IsValidRiskLevel checks if the given risk level is supported.
func IsValidRiskLevel(r RiskLevel) bool {
	switch r {
	case RiskNone, RiskSelfHarm, RiskEatingDisorder, RiskSevereAddiction, RiskViolence, RiskOther:
		return true
	default:
		return false
	}
}

// Blocked reports whether the result demands the block-and-escalate path.
func (s *SafetyResult) Blocked() bool {
	return s != nil && s.Action == ActionBlockAndEscalate
}

// Validate checks enum membership and that a block carries a user-facing
// message.
func (s *SafetyResult) Validate() error {
	if !IsValidRiskLevel(s.Risk) {
		return ErrInvalidRiskLevel
	}
	switch s.Action {
	case ActionAllow:
	case ActionBlockAndEscalate:
		if s.Message == "" {
			return ErrMissingBlockMessage
		}
	default:
		return ErrInvalidSafetyAction
	}
	return nil
}
