package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommend(t *testing.T) {
	topics := []string{"hand_ranking", "which_wins", "starting_hand"}

	tests := []struct {
		name    string
		records map[string]TopicProgress
		want    string
	}{
		{"nothing practiced", nil, "hand_ranking"},
		{
			name: "first unpracticed",
			records: map[string]TopicProgress{
				"hand_ranking": {TotalAttempts: 2, CorrectAttempts: 2},
			},
			want: "which_wins",
		},
		{
			name: "weakest with enough attempts",
			records: map[string]TopicProgress{
				"hand_ranking":  {TotalAttempts: 10, CorrectAttempts: 9},
				"which_wins":    {TotalAttempts: 4, CorrectAttempts: 1},
				"starting_hand": {TotalAttempts: 2, CorrectAttempts: 0},
			},
			want: "which_wins",
		},
		{
			name: "least practiced when all tried but few attempts",
			records: map[string]TopicProgress{
				"hand_ranking":  {TotalAttempts: 2, CorrectAttempts: 2},
				"which_wins":    {TotalAttempts: 1, CorrectAttempts: 1},
				"starting_hand": {TotalAttempts: 2, CorrectAttempts: 1},
			},
			want: "which_wins",
		},
		{
			name: "accuracy tie keeps topic order",
			records: map[string]TopicProgress{
				"hand_ranking":  {TotalAttempts: 4, CorrectAttempts: 2},
				"which_wins":    {TotalAttempts: 6, CorrectAttempts: 3},
				"starting_hand": {TotalAttempts: 3, CorrectAttempts: 3},
			},
			want: "hand_ranking",
		},
		{
			name: "perfect topic moves on to unpracticed",
			records: map[string]TopicProgress{
				"hand_ranking": {TotalAttempts: 5, CorrectAttempts: 5},
			},
			want: "which_wins",
		},
		{
			name: "all perfect falls back to least practiced",
			records: map[string]TopicProgress{
				"hand_ranking":  {TotalAttempts: 5, CorrectAttempts: 5},
				"which_wins":    {TotalAttempts: 3, CorrectAttempts: 3},
				"starting_hand": {TotalAttempts: 4, CorrectAttempts: 4},
			},
			want: "which_wins",
		},
		{
			name: "perfect topic skipped for a weaker one",
			records: map[string]TopicProgress{
				"hand_ranking":  {TotalAttempts: 5, CorrectAttempts: 5},
				"which_wins":    {TotalAttempts: 3, CorrectAttempts: 2},
				"starting_hand": {TotalAttempts: 4, CorrectAttempts: 4},
			},
			want: "which_wins",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommend(topics, tt.records))
		})
	}

	assert.Equal(t, "", Recommend(nil, nil))
}
