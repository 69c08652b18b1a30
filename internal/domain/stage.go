package domain

// Stage represents a funding round stage inferred from free text.
type Stage string

const (
	StageSeed        Stage = "SEED"
	StageSeriesA     Stage = "SERIES_A"
	StageSeriesB     Stage = "SERIES_B"
	StageSeriesC     Stage = "SERIES_C"
	StageSeriesDPlus Stage = "SERIES_D_PLUS"
	StageGrowth      Stage = "GROWTH"
	StageAcquisition Stage = "ACQUISITION"
	StageIPO         Stage = "IPO"
	StageUndisclosed Stage = "UNDISCLOSED"
	StageUnknown     Stage = "UNKNOWN"
)

// String returns the string representation of Stage.
func (s Stage) String() string {
	return string(s)
}

// IsValid checks if the stage is a valid value.
func (s Stage) IsValid() bool {
	switch s {
	case StageSeed, StageSeriesA, StageSeriesB, StageSeriesC, StageSeriesDPlus,
		StageGrowth, StageAcquisition, StageIPO, StageUndisclosed, StageUnknown:
		return true
	default:
		return false
	}
}
