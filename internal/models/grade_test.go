package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrade(t *testing.T) {
	tests := []struct {
		input string
		want  Grade
	}{
		{"VB", GradeVB},
		{"V_B", GradeVB},
		{"b", GradeVB},
		{"V0", GradeV0},
		{"v5", GradeV5},
		{"10", GradeV10},
		{" V12 ", GradeV12},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseGrade(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "V13", "5.12a", "V-1"} {
		_, err := ParseGrade(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestGradeOrderIsByIndex(t *testing.T) {
	// Lexically "V10" < "V9"; on the scale it is harder.
	assert.Greater(t, GradeV10.Index(), GradeV9.Index())
	assert.Less(t, GradeVB.Index(), GradeV0.Index())
	assert.Equal(t, -1, NoGrade.Index())
	assert.Len(t, Grades(), GradeCount)
}

func TestGradeLabels(t *testing.T) {
	assert.Equal(t, "V10", GradeV10.String())
	assert.Equal(t, "10", GradeV10.Short())
	assert.Equal(t, "B", GradeVB.Short())
	assert.Equal(t, "—", NoGrade.String())
}

func TestGradeJSON(t *testing.T) {
	data, err := json.Marshal(GradeV7)
	require.NoError(t, err)
	assert.JSONEq(t, `"V7"`, string(data))

	var g Grade
	require.NoError(t, json.Unmarshal([]byte(`"V11"`), &g))
	assert.Equal(t, GradeV11, g)

	assert.Error(t, json.Unmarshal([]byte(`"V99"`), &g))
	assert.Error(t, json.Unmarshal([]byte(`7`), &g))

	_, err = json.Marshal(NoGrade)
	assert.Error(t, err)
}

func TestParseOrdinalLevels(t *testing.T) {
	e, err := ParseEnergyLevel("peak")
	require.NoError(t, err)
	assert.Equal(t, EnergyPeak, e)

	e, err = ParseEnergyLevel("1")
	require.NoError(t, err)
	assert.Equal(t, EnergyLow, e)

	s, err := ParseSkinCondition("tend")
	require.NoError(t, err)
	assert.Equal(t, SkinTender, s)

	_, err = ParseSkinCondition("9")
	assert.Error(t, err)
	_, err = ParseEnergyLevel("sleepy")
	assert.Error(t, err)

	assert.Equal(t, "Wrecked", SkinWrecked.String())
	assert.Equal(t, 1, ClampPsych(-3))
	assert.Equal(t, 5, ClampPsych(9))
}

func TestNormalizeVocab(t *testing.T) {
	assert.Equal(t, "Red", NormalizeColor("red"))
	assert.Equal(t, "Grey", NormalizeColor("gray"))
	assert.Equal(t, "", NormalizeColor("magenta"))
	assert.Equal(t, "Comp Style", NormalizeStyle("comp-style"))
	assert.Equal(t, "Overhang", NormalizeStyle("OVERHANG"))
	assert.Equal(t, "", NormalizeStyle("chimney"))
}
