// internal/models/audit_log.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditLog records every mutating request for traceability.
type AuditLog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"userId,omitempty" json:"userId,omitempty"`
	Action       string             `bson:"action" json:"action"`
	ResourceType string             `bson:"resourceType" json:"resourceType"`
	Status       int                `bson:"status" json:"status"`
	IPAddress    string             `bson:"ipAddress" json:"ipAddress"`
	UserAgent    string             `bson:"userAgent" json:"userAgent"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
