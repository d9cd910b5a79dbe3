// Package audit captures decision audit events. Events are emitted from the
// review pipeline and persisted through a pluggable store; nothing in the
// pipeline ever reads them back, they exist for operators.
package audit

import (
	"fmt"
	"strings"
	"time"

	"github.com/mssola/useragent"
)

// ActionOrderEvaluated is the action recorded for every pipeline run.
const ActionOrderEvaluated = "lunch_order_evaluated"

// Event is one decision audit record. Keep it transport-agnostic so stores
// can fan out.
type Event struct {
	Timestamp     time.Time `json:"timestamp"`
	RequestID     string    `json:"request_id,omitempty"`
	ClientIP      string    `json:"client_ip,omitempty"`
	Client        string    `json:"client,omitempty"`
	Action        string    `json:"action"`
	Headcount     int       `json:"headcount"`
	RiskLevel     string    `json:"risk_level"`
	FinalDecision string    `json:"final_decision"`
	Approved      bool      `json:"approved"`
	AdvisoryUsed  bool      `json:"advisory_used"`
	ReasonCount   int       `json:"reason_count"`
}

// SummarizeUserAgent reduces a raw User-Agent header to a short
// "Browser version (OS)" label for audit records. Unparseable agents are
// recorded verbatim, truncated.
func SummarizeUserAgent(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" {
		if len(raw) > 64 {
			return raw[:64]
		}
		return raw
	}

	if os := ua.OS(); os != "" {
		return fmt.Sprintf("%s %s (%s)", name, version, os)
	}
	return strings.TrimSpace(name + " " + version)
}
