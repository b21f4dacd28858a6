package models

// CycleStage is the qualitative market phase of an asset class.
type CycleStage string

const (
	StageRecovery  CycleStage = "底部复苏"
	StageGrowth    CycleStage = "成长期"
	StageOverheat  CycleStage = "过热期"
	StageRecession CycleStage = "衰退期"
	StageBottoming CycleStage = "筑底期"
)

// Valid reports whether s is one of the five known stages.
func (s CycleStage) Valid() bool {
	switch s {
	case StageRecovery, StageGrowth, StageOverheat, StageRecession, StageBottoming:
		return true
	}
	return false
}

// CycleData is a market-cycle assessment for one asset class.
type CycleData struct {
	Asset       string     `json:"asset"`
	Stage       CycleStage `json:"stage"`
	Progress    int        `json:"progress"` // 0 to 100
	Description string     `json:"description"`
	Suggestion  string     `json:"suggestion"`
}
