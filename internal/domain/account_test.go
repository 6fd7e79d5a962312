package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasFeature(t *testing.T) {
	account := &Account{Role: &Role{
		Features: []Feature{{Name: FeatureManageTicket}, {Name: FeatureManageProject}},
	}}

	assert.True(t, account.HasFeature(FeatureManageTicket))
	assert.False(t, account.HasFeature(FeatureManageAccount))
}

func TestHasFeatureNilSafe(t *testing.T) {
	var account *Account
	assert.False(t, account.HasFeature(FeatureManageTicket))
	assert.False(t, (&Account{}).HasFeature(FeatureManageTicket))
}
