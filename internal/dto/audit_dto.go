package dto

import "time"

// AuditLogMessage is the payload published to the audit topic and
// persisted into system_logs by the consumer.
type AuditLogMessage struct {
	Level      string                 `json:"level"`
	Module     string                 `json:"module"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}
