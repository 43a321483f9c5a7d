package shot

var outcomeByVendor = map[string]string{
	"Goal":             OutcomeGoal,
	"Saved":            OutcomeSaved,
	"Saved Off Target": OutcomeSaved,
	"Blocked":          OutcomeBlocked,
	"Off T":            OutcomeOffTarget,
	"Off Target":       OutcomeOffTarget,
	"Wayward":          OutcomeOffTarget,
	"Post":             OutcomeOffTarget,
}

var bodyPartByVendor = map[string]string{
	"Right Foot": BodyPartRightFoot,
	"Left Foot":  BodyPartLeftFoot,
	"Head":       BodyPartHead,
}

var shotTypeByVendor = map[string]string{
	"Open Play": TypeOpenPlay,
	"Penalty":   TypePenalty,
	"Free Kick": TypeFreeKick,
}

// OutcomeFromVendor maps a vendor outcome name. Unknown names are off target;
// only the exact goal token yields a goal.
func OutcomeFromVendor(name string) string {
	if outcome, ok := outcomeByVendor[name]; ok {
		return outcome
	}
	return OutcomeOffTarget
}

// BodyPartFromVendor returns "" for unknown names.
func BodyPartFromVendor(name string) string {
	return bodyPartByVendor[name]
}

// TypeFromVendor returns "" for unknown names.
func TypeFromVendor(name string) string {
	return shotTypeByVendor[name]
}
