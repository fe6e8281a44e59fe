package middlewares

import (
	"testing"

	"github.com/shivaccounts/books_backend/models"
)

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role       models.UserRole
		capability Capability
		want       bool
	}{
		{models.UserRoleAdmin, CapabilityUserAdmin, true},
		{models.UserRoleAdmin, CapabilityPaymentWrite, true},
		{models.UserRoleInvoicing, CapabilityMasterDataWrite, true},
		{models.UserRoleInvoicing, CapabilityTransactionWrite, true},
		{models.UserRoleInvoicing, CapabilityUserAdmin, false},
		{models.UserRoleInvoicing, CapabilityOwnDocumentRead, false},
		{models.UserRoleContact, CapabilityOwnDocumentRead, true},
		{models.UserRoleContact, CapabilityTransactionWrite, false},
		{models.UserRoleContact, CapabilityReportRead, false},
		{models.UserRole("unknown"), CapabilityReportRead, false},
	}
	for _, tc := range cases {
		if got := RoleHasCapability(tc.role, tc.capability); got != tc.want {
			t.Errorf("RoleHasCapability(%s, %s) = %v, want %v", tc.role, tc.capability, got, tc.want)
		}
	}
}
