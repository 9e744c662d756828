package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefreshState_Transition(t *testing.T) {
	tests := []struct {
		from    RefreshState
		event   RefreshEvent
		want    RefreshState
		allowed bool
	}{
		{RefreshStateNone, RefreshEventLogin, RefreshStateActive, true},
		{RefreshStateActive, RefreshEventLogin, RefreshStateActive, true},
		{RefreshStateActive, RefreshEventRotate, RefreshStateActive, true},
		{RefreshStateNone, RefreshEventRotate, RefreshStateNone, false},
		{RefreshStateActive, RefreshEventLogout, RefreshStateNone, true},
		{RefreshStateNone, RefreshEventLogout, RefreshStateNone, true},
		{RefreshStateActive, RefreshEvent("delete"), RefreshStateActive, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.event), func(t *testing.T) {
			got, ok := tt.from.Transition(tt.event)
			assert.Equal(t, tt.allowed, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUser_SanitizedDropsSecrets(t *testing.T) {
	u := &User{Username: "alice", PasswordHash: "hash", RefreshToken: "token"}

	clean := u.Sanitized()

	assert.Equal(t, "alice", clean.Username)
	assert.Empty(t, clean.PasswordHash)
	assert.Empty(t, clean.RefreshToken)
	assert.Equal(t, "hash", u.PasswordHash, "original must be untouched")
	assert.Equal(t, RefreshStateActive, u.RefreshState())
	assert.Equal(t, RefreshStateNone, clean.RefreshState())
}
