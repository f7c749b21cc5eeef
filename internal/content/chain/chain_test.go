package chain

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func step(name string, v int, err error, calls *[]string) Step[int] {
	return Step[int]{Name: name, Run: func(context.Context) (int, error) {
		*calls = append(*calls, name)
		return v, err
	}}
}

func TestFirst(t *testing.T) {
	tests := []struct {
		name      string
		steps     func(calls *[]string) []Step[int]
		wantValue int
		wantFrom  string
		wantErr   error
		wantCalls []string
	}{
		{
			name: "first success wins",
			steps: func(c *[]string) []Step[int] {
				return []Step[int]{step("a", 1, nil, c), step("b", 2, nil, c)}
			},
			wantValue: 1, wantFrom: "a", wantCalls: []string{"a"},
		},
		{
			name: "skip and failure fall through",
			steps: func(c *[]string) []Step[int] {
				return []Step[int]{step("cache", 0, ErrSkip, c), step("live", 0, errors.New("offline"), c), step("static", 3, nil, c)}
			},
			wantValue: 3, wantFrom: "static", wantCalls: []string{"cache", "live", "static"},
		},
		{
			name: "exhausted",
			steps: func(c *[]string) []Step[int] {
				return []Step[int]{step("a", 0, ErrSkip, c)}
			},
			wantErr: ErrExhausted, wantCalls: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []string
			v, from, err := First(context.Background(), tt.steps(&calls)...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantValue, v)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestFirst_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls []string
	_, _, err := First(ctx, step("a", 1, nil, &calls))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, calls)
}
