package figures

import (
	"fmt"
	"io"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spboyer/ocreval/internal/roc"
)

// Kind selects which chart a Spec builds.
type Kind string

const (
	KindROC               Kind = "roc"
	KindScoreDistribution Kind = "score_distribution"
	KindAccuracyVsScore   Kind = "accuracy_vs_score"
)

// Spec describes one figure to export, usually read from the project config.
type Spec struct {
	// Name is the file stem. Defaults to a slug of Title, then to the kind's default.
	Name   string         `yaml:"name,omitempty" json:"name,omitempty"`
	Title  string         `yaml:"title,omitempty" json:"title,omitempty"`
	Kind   Kind           `yaml:"kind" json:"kind"`
	Params map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
}

// Data is everything a figure may draw from.
type Data struct {
	Samples []roc.Sample
	Result  *roc.Result
	// Note is markdown attached to the ROC figure.
	Note string
}

type binParams struct {
	Bins int `mapstructure:"bins"`
}

type accuracyParams struct {
	Bins          int  `mapstructure:"bins"`
	ShowThreshold bool `mapstructure:"show_threshold"`
}

// DefaultSpecs is the figure set exported when the config lists none.
func DefaultSpecs() []Spec {
	return []Spec{
		{Kind: KindROC},
		{Kind: KindScoreDistribution},
		{Kind: KindAccuracyVsScore, Params: map[string]any{"show_threshold": true}},
	}
}

// Build creates the figure described by spec.
func Build(spec Spec, data Data) (Figure, error) {
	name := spec.Name
	if name == "" && spec.Title != "" {
		name = NameFromTitle(spec.Title)
	}

	switch spec.Kind {
	case KindROC:
		if len(spec.Params) > 0 {
			return nil, fmt.Errorf("figure kind %q takes no params", spec.Kind)
		}
		return &ROCFigure{Result: data.Result, FileName: name, Title: spec.Title, Note: data.Note}, nil
	case KindScoreDistribution:
		var p binParams
		if err := decodeParams(spec.Params, &p); err != nil {
			return nil, err
		}
		return &ScoreDistributionFigure{Samples: data.Samples, Bins: p.Bins, FileName: name, Title: spec.Title}, nil
	case KindAccuracyVsScore:
		var p accuracyParams
		if err := decodeParams(spec.Params, &p); err != nil {
			return nil, err
		}
		f := &AccuracyVsScoreFigure{Samples: data.Samples, Bins: p.Bins, FileName: name, Title: spec.Title}
		if p.ShowThreshold && data.Result != nil {
			t := data.Result.OptimalThreshold
			f.Threshold = &t
		}
		return f, nil
	}
	return nil, fmt.Errorf("unknown figure kind %q", spec.Kind)
}

// BuildAll builds every spec. A spec that fails to build becomes a figure
// whose render fails, so the error is reported alongside the others at
// export time instead of aborting the batch.
func BuildAll(specs []Spec, data Data) []Figure {
	figs := make([]Figure, 0, len(specs))
	for i, s := range specs {
		f, err := Build(s, data)
		if err != nil {
			name := s.Name
			if name == "" {
				name = NameFromTitle(s.Title)
			}
			if name == "" {
				name = fmt.Sprintf("figure-%d", i+1)
			}
			f = &brokenFigure{name: name, err: err}
		}
		figs = append(figs, f)
	}
	return figs
}

func decodeParams(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("invalid figure params: %w", err)
	}
	return nil
}

type brokenFigure struct {
	name string
	err  error
}

func (b *brokenFigure) Name() string { return b.name }

func (b *brokenFigure) WriteHTML(io.Writer) error { return b.err }
