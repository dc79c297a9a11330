package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProjectGuards(t *testing.T) {
	pending := &Property{Status: PropertyStatusPendingReview}
	approved := &Property{Status: PropertyStatusApproved}

	tests := []struct {
		name       string
		status     ProjectStatus
		prop       *Property
		canApprove bool
		canReject  bool
		canAssign  bool
	}{
		{"intake pending", ProjectStatusIntake, pending, true, true, false},
		{"intake already approved property", ProjectStatusIntake, approved, false, true, false},
		{"waiting freelancer", ProjectStatusWaitingFreelancer, approved, false, false, true},
		{"assigned", ProjectStatusAssigned, approved, false, false, false},
		{"ready to list", ProjectStatusReadyToList, approved, false, false, false},
		{"listed", ProjectStatusListed, approved, false, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &Project{Status: tc.status}
			require.Equal(t, tc.canApprove, p.CanApprove(tc.prop))
			require.Equal(t, tc.canReject, p.CanReject())
			require.Equal(t, tc.canAssign, p.CanAssign())
		})
	}
}

func TestCanApproveNilProperty(t *testing.T) {
	p := &Project{Status: ProjectStatusIntake}
	require.False(t, p.CanApprove(nil))
}

func TestParseProjectStatus(t *testing.T) {
	st, ok := ParseProjectStatus("READY_TO_LIST")
	require.True(t, ok)
	require.Equal(t, ProjectStatusReadyToList, st)

	_, ok = ParseProjectStatus("ready_to_list")
	require.False(t, ok)
	_, ok = ParseProjectStatus("REJECTED")
	require.False(t, ok)
}

func TestRoles(t *testing.T) {
	for _, s := range []string{"OPERATOR", "OWNER", "FREELANCER", "GUEST"} {
		_, ok := ParseRole(s)
		require.True(t, ok, s)
	}
	_, ok := ParseRole("admin")
	require.False(t, ok)

	require.True(t, RoleOperator.CanOperate())
	require.False(t, RoleOwner.CanOperate())
	require.False(t, Role("admin").CanOperate())

	require.False(t, RoleOperator.SelfServiceSignup())
	require.True(t, RoleGuest.SelfServiceSignup())
}
