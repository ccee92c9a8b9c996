package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuzzyScore(t *testing.T) {
	assert.Equal(t, 100, FuzzyScore("Daily Planet", "daily planet"))
	assert.Equal(t, 90, FuzzyScore("Test", "Test Outlet 1"))
	assert.Less(t, FuzzyScore("Test", "Another Outlet"), 80)
	assert.Equal(t, 0, FuzzyScore("", "anything"))
	assert.Equal(t, 90, FuzzyScore("planet", "Daily Planet"))
}

func TestRankMatches(t *testing.T) {
	candidates := []string{"Another Outlet", "Test Outlet 1", "Test Outlet 2", "test"}
	assert.Equal(t, []string{"test", "Test Outlet 1", "Test Outlet 2"}, RankMatches("Test", candidates, 10, 80))
	assert.Equal(t, []string{"test"}, RankMatches("Test", candidates, 1, 80))
	assert.Empty(t, RankMatches("zzzz", candidates, 10, 80))
	assert.Empty(t, RankMatches("Test", candidates, 0, 80))
	assert.Empty(t, RankMatches("Test", candidates, -1, 80))
}

func TestRankMatches_ThresholdAppliesAfterLimit(t *testing.T) {
	candidates := []string{"abc", "abd", "xyz"}
	assert.Equal(t, []string{"abc"}, RankMatches("abc", candidates, 1, 0))
	assert.Equal(t, []string{"abc", "abd", "xyz"}, RankMatches("abc", candidates, 10, 0))
}
