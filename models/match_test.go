package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestMatchWinner(t *testing.T) {
	tests := []struct {
		name   string
		match  Match
		want   int
		wantOK bool
	}{
		{"pending", Match{Player1ID: 1, Player2ID: intPtr(2)}, 0, false},
		{"decided", Match{Player1ID: 1, Player2ID: intPtr(2), Status: true, Win: intPtr(2)}, 2, true},
		{"draw", Match{Player1ID: 1, Player2ID: intPtr(2), Status: true, Draw: true}, 0, false},
		{"phantom", Match{Player1ID: 7, Status: true, Win: intPtr(7)}, 7, true},
		{"phantom without win", Match{Player1ID: 7, Status: true}, 7, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.match.Winner()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchHasParticipant(t *testing.T) {
	m := Match{Player1ID: 1, Player2ID: intPtr(2)}
	assert.True(t, m.HasParticipant(1))
	assert.True(t, m.HasParticipant(2))
	assert.False(t, m.HasParticipant(3))

	phantom := Match{Player1ID: 5}
	assert.True(t, phantom.HasParticipant(5))
	assert.False(t, phantom.HasParticipant(0))
	assert.Equal(t, []int{5}, phantom.Participants())
}
