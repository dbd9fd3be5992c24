package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitegentech/atendo/internal/common"
)

func TestRuleSetValidate(t *testing.T) {
	tests := []struct {
		name    string
		rules   RuleSet
		wantErr string
	}{
		{
			name:    "empty table",
			rules:   RuleSet{},
			wantErr: "rule table is empty",
		},
		{
			name: "missing category",
			rules: RuleSet{
				{Keywords: []string{"x"}, Weight: 10},
			},
			wantErr: "no category",
		},
		{
			name: "duplicate category",
			rules: RuleSet{
				{Category: "A", Keywords: []string{"x"}, Weight: 10},
				{Category: "A", Keywords: []string{"y"}, Weight: 10},
			},
			wantErr: "duplicate category",
		},
		{
			name: "neither keywords nor combos",
			rules: RuleSet{
				{Category: "A", Weight: 10},
			},
			wantErr: "neither keywords nor combos",
		},
		{
			name: "non-positive weight with keywords",
			rules: RuleSet{
				{Category: "A", Keywords: []string{"x"}},
			},
			wantErr: "non-positive weight",
		},
		{
			name: "combos only is fine",
			rules: RuleSet{
				{Category: "A", Combos: []string{"x y"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rules.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidRuleTable)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultRulesAreValid(t *testing.T) {
	rules := DefaultRules()
	require.NoError(t, rules.Validate())

	// Declaration order is the tie-break; the catch-all and the vacuum
	// categories must be present.
	categories := rules.Categories()
	assert.Contains(t, categories, CategoryManager)
	assert.Contains(t, categories, CategoryNoAnswer)
	assert.Len(t, categories, 16)
}
