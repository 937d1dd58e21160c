package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Grade is a position on the fixed V-scale, VB (easiest) through V12 (hardest).
// Grades compare by index, never lexically.
type Grade int

const (
	GradeVB Grade = iota
	GradeV0
	GradeV1
	GradeV2
	GradeV3
	GradeV4
	GradeV5
	GradeV6
	GradeV7
	GradeV8
	GradeV9
	GradeV10
	GradeV11
	GradeV12
)

// NoGrade is returned when there is nothing to report, e.g. no climb was ever sent.
const NoGrade Grade = -1

// GradeCount is the number of grades on the scale.
const GradeCount = 14

var gradeLabels = [GradeCount]string{
	"VB", "V0", "V1", "V2", "V3", "V4", "V5", "V6", "V7", "V8", "V9", "V10", "V11", "V12",
}

// Grades returns the whole scale in ascending order.
func Grades() []Grade {
	grades := make([]Grade, GradeCount)
	for i := range grades {
		grades[i] = Grade(i)
	}
	return grades
}

// Valid reports whether g is on the scale.
func (g Grade) Valid() bool {
	return g >= GradeVB && g <= GradeV12
}

// Index returns the scale position, or -1 for NoGrade and out-of-range values.
func (g Grade) Index() int {
	if !g.Valid() {
		return -1
	}
	return int(g)
}

func (g Grade) String() string {
	if !g.Valid() {
		return "—"
	}
	return gradeLabels[g]
}

// Short is the label without the leading V, as used on chart axes.
func (g Grade) Short() string {
	if !g.Valid() {
		return "—"
	}
	return strings.TrimPrefix(gradeLabels[g], "V")
}

// ParseGrade accepts "V5", "v5", "5", "VB", "V_B" and "B".
func ParseGrade(input string) (Grade, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, "_", "")
	if s == "" {
		return NoGrade, fmt.Errorf("grade is required")
	}
	if !strings.HasPrefix(s, "V") {
		s = "V" + s
	}
	for i, label := range gradeLabels {
		if label == s {
			return Grade(i), nil
		}
	}
	return NoGrade, fmt.Errorf("invalid grade %q. Use VB or V0-V12", input)
}

func (g Grade) MarshalJSON() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("cannot encode grade %d", int(g))
	}
	return json.Marshal(gradeLabels[g])
}

func (g *Grade) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return fmt.Errorf("grade must be a string: %w", err)
	}
	parsed, err := ParseGrade(label)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
