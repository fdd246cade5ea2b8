package gap

// Category weights for the overall weighted-mean confidence score. These
// seven categories are scoring buckets distinct from the eight Gap
// categories above — a category here names an extraction domain
// (configuration, master data, ...), not a kind of detected shortfall.
const (
	weightConfig      = 0.25
	weightMasterData  = 0.15
	weightTransaction = 0.10
	weightCode        = 0.20
	weightSecurity    = 0.10
	weightInterface   = 0.10
	weightProcess     = 0.10
)

// CategoryInput is the raw coverage and gap-count input for one scoring
// category.
type CategoryInput struct {
	CoveragePct          float64
	MissingCriticalTables int
	AuthorizationGaps     int
	DataVolumeGaps        int
}

// CategoryScore is a single category's clamped 0-100 score.
type CategoryScore struct {
	Score float64
}

// score applies the penalty subtractions and clamps to [0, 100].
func (in CategoryInput) score() CategoryScore {
	s := in.CoveragePct
	s -= 5 * float64(in.MissingCriticalTables)
	s -= 3 * float64(in.AuthorizationGaps)
	s -= 2 * float64(in.DataVolumeGaps)
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return CategoryScore{Score: s}
}

// Inputs is the full set of per-category inputs driving the confidence
// score.
type Inputs struct {
	Config      CategoryInput
	MasterData  CategoryInput
	Transaction CategoryInput
	Code        CategoryInput
	Security    CategoryInput
	Interface   CategoryInput
	Process     CategoryInput
}

// Score is the computed confidence result: per-category scores, the
// weighted overall score, and its letter grade.
type Score struct {
	Config      CategoryScore
	MasterData  CategoryScore
	Transaction CategoryScore
	Code        CategoryScore
	Security    CategoryScore
	Interface   CategoryScore
	Process     CategoryScore
	Overall     float64
	Grade       string
}

// Summary returns a flat scalar digest.
func (s Score) Summary() map[string]interface{} {
	return map[string]interface{}{"overall": s.Overall, "grade": s.Grade}
}

// ToSerializable returns the full nested record.
func (s Score) ToSerializable() map[string]interface{} {
	return map[string]interface{}{
		"config":      s.Config.Score,
		"master_data": s.MasterData.Score,
		"transaction": s.Transaction.Score,
		"code":        s.Code.Score,
		"security":    s.Security.Score,
		"interface":   s.Interface.Score,
		"process":     s.Process.Score,
		"overall":     s.Overall,
		"grade":       s.Grade,
	}
}

// ComputeScore derives per-category scores and the weighted overall score
// and grade from in.
func ComputeScore(in Inputs) Score {
	config := in.Config.score()
	masterData := in.MasterData.score()
	transaction := in.Transaction.score()
	code := in.Code.score()
	security := in.Security.score()
	iface := in.Interface.score()
	process := in.Process.score()

	overall := weightConfig*config.Score +
		weightMasterData*masterData.Score +
		weightTransaction*transaction.Score +
		weightCode*code.Score +
		weightSecurity*security.Score +
		weightInterface*iface.Score +
		weightProcess*process.Score

	return Score{
		Config:      config,
		MasterData:  masterData,
		Transaction: transaction,
		Code:        code,
		Security:    security,
		Interface:   iface,
		Process:     process,
		Overall:     overall,
		Grade:       grade(overall),
	}
}

func grade(overall float64) string {
	switch {
	case overall >= 90:
		return "A"
	case overall >= 80:
		return "B"
	case overall >= 70:
		return "C"
	case overall >= 60:
		return "D"
	default:
		return "F"
	}
}
