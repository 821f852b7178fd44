package models

// Level is a geographic granularity tier a stay is tracked at.
type Level string

const (
	LevelCity      Level = "city"
	LevelCountry   Level = "country"
	LevelContinent Level = "continent"
)

// Levels lists every tier in evaluation order.
var Levels = []Level{LevelCity, LevelCountry, LevelContinent}

func (l Level) Valid() bool {
	switch l {
	case LevelCity, LevelCountry, LevelContinent:
		return true
	}
	return false
}
