package cli

import (
	"testing"

	"github.com/jacksmith/menu/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPrefix(t *testing.T) {
	choices := []string{"list", "log", "add"}

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr string
	}{
		{name: "exact", in: "list", want: "list"},
		{name: "exact any case", in: "LOG", want: "log"},
		{name: "unique prefix", in: "li", want: "list"},
		{name: "trimmed", in: " ad ", want: "add"},
		{name: "ambiguous", in: "l", wantErr: `ambiguous command "l" matches: list, log`},
		{name: "unknown", in: "zap", wantErr: `unknown command "zap"`},
		{name: "empty", in: "", wantErr: "empty command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchPrefix("command", tt.in, choices)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchCategory(t *testing.T) {
	got, err := MatchCategory("burg")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryBurgers, got)

	got, err = MatchCategory("Hot")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryHotdogs, got)

	got, err = MatchCategory("drinks")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryDrinks, got)

	_, err = MatchCategory("d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous category")

	_, err = MatchCategory("pizza")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "burgers, hotdogs")
}
