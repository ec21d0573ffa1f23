package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "buyeralike/pkg/domain-errors"
)

func TestBecameQualifying(t *testing.T) {
	tests := []struct {
		name     string
		previous Status
		current  Status
		want     bool
	}{
		{"first sighting as verified", "", StatusVerified, true},
		{"approved to verified", StatusApproved, StatusVerified, true},
		{"pending to unverified", StatusPending, StatusUnverified, true},
		{"verified to unverified is not an edge", StatusVerified, StatusUnverified, false},
		{"verified replayed", StatusVerified, StatusVerified, false},
		{"verified to closed", StatusVerified, StatusClosed, false},
		{"pending to approved", StatusPending, StatusApproved, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BecameQualifying(tt.previous, tt.current))
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" Verified ")
	require.NoError(t, err)
	assert.Equal(t, StatusVerified, s)

	_, err = ParseStatus("published")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidArgument))
}
