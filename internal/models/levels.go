package models

import (
	"fmt"
	"strconv"
	"strings"
)

// EnergyLevel is an ordinal 0..4 rank, stored on disk as its index.
type EnergyLevel int

const (
	EnergyExhausted EnergyLevel = iota
	EnergyLow
	EnergyModerate
	EnergyStrong
	EnergyPeak
)

// SkinCondition is an ordinal 0..4 rank, Fresh through Wrecked.
type SkinCondition int

const (
	SkinFresh SkinCondition = iota
	SkinGood
	SkinTender
	SkinRaw
	SkinWrecked
)

// EnergyLevels and SkinConditions are the display names, indexed by rank.
var (
	EnergyLevels   = []string{"Exhausted", "Low", "Moderate", "Strong", "Peak"}
	SkinConditions = []string{"Fresh", "Good", "Tender", "Raw", "Wrecked"}
)

const (
	MinPsych = 1
	MaxPsych = 5
)

func (e EnergyLevel) String() string {
	if e < 0 || int(e) >= len(EnergyLevels) {
		return "?"
	}
	return EnergyLevels[e]
}

func (s SkinCondition) String() string {
	if s < 0 || int(s) >= len(SkinConditions) {
		return "?"
	}
	return SkinConditions[s]
}

// ParseEnergyLevel accepts a rank index or a (prefix of a) name, case-insensitive.
func ParseEnergyLevel(input string) (EnergyLevel, error) {
	idx, err := parseOrdinal(input, EnergyLevels)
	if err != nil {
		return EnergyModerate, fmt.Errorf("invalid energy level: %w", err)
	}
	return EnergyLevel(idx), nil
}

// ParseSkinCondition accepts a rank index or a (prefix of a) name, case-insensitive.
func ParseSkinCondition(input string) (SkinCondition, error) {
	idx, err := parseOrdinal(input, SkinConditions)
	if err != nil {
		return SkinGood, fmt.Errorf("invalid skin condition: %w", err)
	}
	return SkinCondition(idx), nil
}

func parseOrdinal(input string, names []string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= len(names) {
			return 0, fmt.Errorf("%d out of range 0-%d", n, len(names)-1)
		}
		return n, nil
	}
	for i, name := range names {
		if strings.HasPrefix(strings.ToLower(name), s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%q is not one of %s", input, strings.Join(names, ", "))
}

// ClampPsych forces a psych level into 1..5.
func ClampPsych(level int) int {
	if level < MinPsych {
		return MinPsych
	}
	if level > MaxPsych {
		return MaxPsych
	}
	return level
}
