package db

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/placement-intel/internal/types"
)

func TestUnmarshalSkills_EmptyColumn(t *testing.T) {
	skills, err := unmarshalSkills(nil)

	require.NoError(t, err)
	assert.Nil(t, skills)
}

func TestUnmarshalSkills_Document(t *testing.T) {
	doc := `[{"name": "Go", "claimed_level": "advanced", "evidence": {"has_repository": true, "project_count": 2, "certification_count": 0, "has_internship": false}}]`

	skills, err := unmarshalSkills([]byte(doc))

	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Go", skills[0].Name)
	assert.Equal(t, types.ClaimAdvanced, skills[0].ClaimedLevel)
	assert.True(t, skills[0].Evidence.HasRepository)
}

func TestUnmarshalSkills_Malformed(t *testing.T) {
	_, err := unmarshalSkills([]byte(`{not json`))

	assert.Error(t, err)
}

func TestDecodeRequirementColumns(t *testing.T) {
	var r types.RequirementPolicy
	weights, err := json.Marshal(types.DefaultWeights())
	require.NoError(t, err)

	err = decodeRequirementColumns(&r,
		[]byte(`["Go", "SQL"]`),
		[]byte(`["Kubernetes"]`),
		weights,
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, r.MandatorySkills)
	assert.Equal(t, []string{"Kubernetes"}, r.PreferredSkills)
	assert.Equal(t, types.DefaultWeights(), r.Weights)
}

func TestDecodeRequirementColumns_NullColumnsKeepZeroValues(t *testing.T) {
	var r types.RequirementPolicy

	err := decodeRequirementColumns(&r, nil, nil, nil)

	require.NoError(t, err)
	assert.Nil(t, r.MandatorySkills)
	assert.Equal(t, types.WeightPolicy{}, r.Weights)
}
