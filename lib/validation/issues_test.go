package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatIssuesAccumulatesInOrder(t *testing.T) {
	errors := FormatIssues([]Issue{
		{Path: []string{"amount"}, Message: "A"},
		{Path: []string{"status"}, Message: "S"},
		{Path: []string{"amount"}, Message: "B"},
	})
	assert.Equal(t, map[string][]string{
		"amount": {"A", "B"},
		"status": {"S"},
	}, errors)
}

func TestFormatIssuesDropsIssuesWithoutField(t *testing.T) {
	errors := FormatIssues([]Issue{
		{Path: nil, Message: "root"},
		{Path: []string{}, Message: "empty"},
		{Path: []string{""}, Message: "blank"},
	})
	assert.Empty(t, errors)
}
