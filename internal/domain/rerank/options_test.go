package rerank

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kailas-cloud/rerankd/internal/domain"
)

func TestApplyDefaults(t *testing.T) {
	var o Options
	o.ApplyDefaults()

	if o.TopN != 5 {
		t.Errorf("TopN = %d, want 5", o.TopN)
	}
	if o.BatchSize != 200 {
		t.Errorf("BatchSize = %d, want 200", o.BatchSize)
	}
	if o.Weights != DefaultWeights() {
		t.Errorf("Weights = %+v, want defaults", o.Weights)
	}
	if o.RecencyHalfLifeDays != 60 {
		t.Errorf("RecencyHalfLifeDays = %f, want 60", o.RecencyHalfLifeDays)
	}
	if o.MinTokenLength != 2 {
		t.Errorf("MinTokenLength = %d, want 2", o.MinTokenLength)
	}
	if o.NormalizeMethod != NormalizeSigmoid {
		t.Errorf("NormalizeMethod = %q, want sigmoid", o.NormalizeMethod)
	}
	if o.Workers != 1 {
		t.Errorf("Workers = %d, want 1", o.Workers)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	o := Options{
		TopN:            10,
		Weights:         Weights{Semantic: 0.5, Lexical: 0.5},
		NormalizeMethod: NormalizeMinMax,
	}
	o.ApplyDefaults()

	if o.TopN != 10 {
		t.Errorf("TopN = %d, want 10", o.TopN)
	}
	if o.Weights.Semantic != 0.5 || o.Weights.Exact != 0 {
		t.Errorf("explicit weights overwritten: %+v", o.Weights)
	}
	if o.NormalizeMethod != NormalizeMinMax {
		t.Errorf("NormalizeMethod = %q, want minmax", o.NormalizeMethod)
	}
}

func TestApplyDefaults_NegativeWeightReplaced(t *testing.T) {
	o := Options{Weights: Weights{Semantic: -1, Lexical: 0.3}}
	o.ApplyDefaults()
	if o.Weights.Semantic != DefaultWeights().Semantic {
		t.Errorf("negative weight kept: %f", o.Weights.Semantic)
	}
	if o.Weights.Lexical != 0.3 {
		t.Errorf("valid weight overwritten: %f", o.Weights.Lexical)
	}
}

func TestApplyDefaults_InvalidNormalizeMethod(t *testing.T) {
	o := Options{NormalizeMethod: "zscore"}
	o.ApplyDefaults()
	if o.NormalizeMethod != NormalizeSigmoid {
		t.Errorf("NormalizeMethod = %q, want sigmoid fallback", o.NormalizeMethod)
	}
}

func TestWeights_Balanced(t *testing.T) {
	if !DefaultWeights().Balanced() {
		t.Error("default weights must count as balanced")
	}
	unbalanced := Weights{Semantic: 1, Lexical: 0.5}
	if unbalanced.Balanced() {
		t.Error("sum 1.5 must not count as balanced")
	}
}

func TestModelCoefficients_Valid(t *testing.T) {
	o := Options{ModelWeights: "0.5, -0.2, 0.1, 0.05, 1.5"}
	m, err := o.ModelCoefficients()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := ModelCoefficients{Semantic: 0.5, BM25: -0.2, Exact: 0.1, Recency: 0.05, Bias: 1.5}
	if m != want {
		t.Errorf("got %+v, want %+v", m, want)
	}
}

func TestModelCoefficients_WrongCount(t *testing.T) {
	o := Options{ModelWeights: "0.1,0.2"}
	_, err := o.ModelCoefficients()
	if !errors.Is(err, domain.ErrModelConfigInvalid) {
		t.Errorf("got %v, want ErrModelConfigInvalid", err)
	}
}

func TestModelCoefficients_NotNumeric(t *testing.T) {
	o := Options{ModelWeights: "0.1,0.2,abc,0.4,0.5"}
	_, err := o.ModelCoefficients()
	if !errors.Is(err, domain.ErrModelConfigInvalid) {
		t.Errorf("got %v, want ErrModelConfigInvalid", err)
	}
}

func TestValidate_ModelMode(t *testing.T) {
	o := DefaultOptions()
	o.UseModel = true
	o.ModelWeights = "1,2,3"
	if err := o.Validate(); !errors.Is(err, domain.ErrModelConfigInvalid) {
		t.Errorf("got %v, want ErrModelConfigInvalid", err)
	}

	o.ModelWeights = "1,2,3,4,5"
	if err := o.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// Model weights are irrelevant when the model is off.
	o.UseModel = false
	o.ModelWeights = "garbage"
	if err := o.Validate(); err != nil {
		t.Errorf("unexpected error with model disabled: %v", err)
	}
}

func TestCustomStopwordList(t *testing.T) {
	o := Options{CustomStopwords: " Foo, BAR ,,baz "}
	got := o.CustomStopwordList()
	want := []string{"foo", "bar", "baz"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := (Options{}).CustomStopwordList(); got != nil {
		t.Errorf("empty input: got %v, want nil", got)
	}
}
