package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseStatus(t *testing.T) {
	tests := []struct {
		in   ProgressStatus
		want EnrollmentStatus
	}{
		{StatusNotStarted, EnrollmentNotStarted},
		{StatusInProgress, EnrollmentInProgress},
		{StatusContentCompleted, EnrollmentInProgress},
		{StatusQuizzesPending, EnrollmentInProgress},
		{StatusCompleted, EnrollmentCompleted},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CollapseStatus(tt.in), "status %s", tt.in)
	}
}

func TestCompletedItemIDsRoundTrip(t *testing.T) {
	var p TrainingProgress

	assert.Nil(t, p.CompletedItemIDs())

	p.SetCompletedItemIDs([]string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, p.CompletedItemIDs())

	p.SetCompletedItemIDs(nil)
	assert.Empty(t, p.CompletedItemIDs())
}
