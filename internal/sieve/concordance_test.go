package sieve

import (
	"testing"

	"github.com/ppiankov/corefsieve/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestConcordant(t *testing.T) {
	const (
		u = model.GenderUnknown
		m = model.GenderMale
		f = model.GenderFemale
		n = model.GenderNeutral
	)

	tests := []struct {
		name    string
		this    []model.Gender
		ant     []model.Gender
		strict  bool
		lenient bool
	}{
		{"same value", []model.Gender{f}, []model.Gender{f, f}, true, true},
		{"all unknown", []model.Gender{u}, []model.Gender{u}, true, true},
		{"unknown antecedent absorbs", []model.Gender{n}, []model.Gender{u}, true, true},
		{"unknown mention absorbs", []model.Gender{u}, []model.Gender{m}, true, true},
		{"unknown absorbs one side only", []model.Gender{n}, []model.Gender{f, u}, false, true},
		{"disjoint values", []model.Gender{n}, []model.Gender{f}, false, false},
		{"antecedent has extra", []model.Gender{m}, []model.Gender{m, f}, false, true},
		{"mention has extra", []model.Gender{m, f}, []model.Gender{f}, false, true},
		{"empty sides", nil, nil, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.strict, Concordant(tt.this, tt.ant, u, RuleStrict), "strict")
			assert.Equal(t, tt.lenient, Concordant(tt.this, tt.ant, u, RuleLenient), "lenient")
		})
	}
}

func TestConcordant_Number(t *testing.T) {
	assert.False(t, Concordant(
		[]model.Number{model.NumberPlural},
		[]model.Number{model.NumberSingular},
		model.NumberUnknown, RuleStrict))
	assert.True(t, Concordant(
		[]model.Number{model.NumberPlural},
		[]model.Number{model.NumberPlural, model.NumberUnknown},
		model.NumberUnknown, RuleStrict))
}

func TestParseRule(t *testing.T) {
	assert.Equal(t, RuleLenient, ParseRule(model.ConcordanceLenient))
	assert.Equal(t, RuleStrict, ParseRule(model.ConcordanceStrict))
	assert.Equal(t, RuleStrict, ParseRule(""))
}

func TestGenders_ZeroValueIsUnknown(t *testing.T) {
	cluster := []*model.Mention{{}, {Attributes: model.Attributes{Gender: model.GenderFemale}}}
	assert.Equal(t, []model.Gender{model.GenderUnknown, model.GenderFemale}, genders(cluster))
}
