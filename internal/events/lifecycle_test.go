package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopicFor(t *testing.T) {
	assert.Equal(t, CaseLifecycleTopic, TopicFor(AggregateCase))
	assert.Equal(t, EmployeeLifecycleTopic, TopicFor(AggregateEmployee))
	assert.Empty(t, TopicFor("payroll"))
}
