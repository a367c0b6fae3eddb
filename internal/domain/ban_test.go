package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBanIsExpired(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	future := time.Now().Add(2 * time.Hour)

	tests := []struct {
		name    string
		ban     Ban
		expired bool
	}{
		{"temporary past expiry", Ban{BanType: BanTemporary, ExpiresAt: &past}, true},
		{"temporary future expiry", Ban{BanType: BanTemporary, ExpiresAt: &future}, false},
		{"temporary without expiry", Ban{BanType: BanTemporary}, false},
		{"permanent ignores expiry", Ban{BanType: BanPermanent, ExpiresAt: &past}, false},
		{"permanent without expiry", Ban{BanType: BanPermanent}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, tt.ban.IsExpired())
		})
	}
}

func TestBanTimeRemaining(t *testing.T) {
	future := time.Now().Add(1 * time.Hour)
	past := time.Now().Add(-1 * time.Hour)

	b := Ban{BanType: BanTemporary, ExpiresAt: &future}
	remaining := b.TimeRemaining()
	assert.NotNil(t, remaining)
	assert.InDelta(t, time.Hour.Seconds(), remaining.Seconds(), 5)

	expired := Ban{BanType: BanTemporary, ExpiresAt: &past}
	assert.Nil(t, expired.TimeRemaining())

	permanent := Ban{BanType: BanPermanent, ExpiresAt: &future}
	assert.Nil(t, permanent.TimeRemaining())

	unset := Ban{BanType: BanTemporary}
	assert.Nil(t, unset.TimeRemaining())
}

func TestBanTypeValid(t *testing.T) {
	assert.True(t, BanPermanent.Valid())
	assert.True(t, BanTemporary.Valid())
	assert.False(t, BanType("forever").Valid())
	assert.False(t, BanType("").Valid())
}
