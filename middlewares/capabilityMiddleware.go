package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shivaccounts/books_backend/models"
	"github.com/shivaccounts/books_backend/utils"
)

// Capability names one thing a caller may do. Routes declare the capability
// they need; roles map to capability sets. Adding a role is a table edit, not
// a hunt through handler code.
type Capability string

const (
	CapabilityMasterDataWrite  Capability = "master_data:write"
	CapabilityTransactionWrite Capability = "transactions:write"
	CapabilityPaymentWrite     Capability = "payments:write"
	CapabilityReportRead       Capability = "reports:read"
	CapabilityOwnDocumentRead  Capability = "own_documents:read"
	CapabilityUserAdmin        Capability = "users:admin"
)

var roleCapabilities = map[models.UserRole][]Capability{
	models.UserRoleAdmin: {
		CapabilityMasterDataWrite,
		CapabilityTransactionWrite,
		CapabilityPaymentWrite,
		CapabilityReportRead,
		CapabilityOwnDocumentRead,
		CapabilityUserAdmin,
	},
	models.UserRoleInvoicing: {
		CapabilityMasterDataWrite,
		CapabilityTransactionWrite,
		CapabilityPaymentWrite,
		CapabilityReportRead,
	},
	models.UserRoleContact: {
		CapabilityOwnDocumentRead,
	},
}

// RoleHasCapability reports whether a role's capability set includes the
// capability.
func RoleHasCapability(role models.UserRole, capability Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == capability {
			return true
		}
	}
	return false
}

// RequireCapability gates a route group on one capability. Unauthenticated
// callers get 401, authenticated callers outside the capability get 403.
func RequireCapability(capability Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := utils.GetRoleFromContext(c.Request.Context())
		if !ok || role == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		if !RoleHasCapability(models.UserRole(role), capability) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}
