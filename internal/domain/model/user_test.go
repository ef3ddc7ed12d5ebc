package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanCreateWithRole(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	user := &User{Role: RoleUser}

	tests := []struct {
		name      string
		requester *User
		role      string
		want      bool
	}{
		{"anonymous creates user", nil, RoleUser, true},
		{"anonymous creates admin", nil, RoleAdmin, false},
		{"user creates user", user, RoleUser, true},
		{"user creates admin", user, RoleAdmin, false},
		{"admin creates user", admin, RoleUser, true},
		{"admin creates admin", admin, RoleAdmin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CanCreateWithRole(tt.requester, tt.role))
		})
	}
}

func TestValidRole(t *testing.T) {
	require.True(t, ValidRole(RoleUser))
	require.True(t, ValidRole(RoleAdmin))
	require.False(t, ValidRole(""))
	require.False(t, ValidRole("superuser"))
}
