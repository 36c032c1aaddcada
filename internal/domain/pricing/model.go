package pricing

import "errors"

var ErrUnknownModel = errors.New("unknown pricing model")

// Model tags how a listing's base price is interpreted.
type Model string

const (
	ModelHourly      Model = "hourly"
	ModelDaily       Model = "daily"
	ModelMonthlyFlat Model = "monthly_flat"
)

func (m Model) String() string {
	return string(m)
}

func (m Model) IsValid() bool {
	switch m {
	case ModelHourly, ModelDaily, ModelMonthlyFlat:
		return true
	default:
		return false
	}
}

func ParseModel(s string) (Model, error) {
	m := Model(s)
	if !m.IsValid() {
		return "", ErrUnknownModel
	}
	return m, nil
}
