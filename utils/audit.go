package utils

import (
	"encoding/json"
	"net"

	"github.com/kataras/iris/v12"
	log "github.com/sirupsen/logrus"

	"feedback-board-server/models"
	"feedback-board-server/storage"
)

// Audit records an admin action with before/after snapshots. Audit failures
// are logged, never propagated: the action itself already succeeded.
func Audit(ctx iris.Context, client *storage.Client, action, resourceType string, resourceID uint, before, after interface{}) {
	var beforeStr, afterStr string
	if before != nil {
		if b, err := json.Marshal(before); err == nil {
			beforeStr = string(b)
		}
	}
	if after != nil {
		if a, err := json.Marshal(after); err == nil {
			afterStr = string(a)
		}
	}

	entry := models.AuditLog{
		AdminUserID:  AdminID(ctx),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		BeforeJSON:   beforeStr,
		AfterJSON:    afterStr,
		IPAddress:    clientIP(ctx),
	}
	if err := client.Audits().Insert(&entry); err != nil {
		log.WithError(err).WithField("action", action).Warn("audit write failed")
	}
}

func clientIP(ctx iris.Context) string {
	if ip := ctx.GetHeader("X-Forwarded-For"); ip != "" {
		return ip
	}
	ip, _, _ := net.SplitHostPort(ctx.RemoteAddr())
	return ip
}
