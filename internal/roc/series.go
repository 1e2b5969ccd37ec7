package roc

import "fmt"

// Series is the plottable form of a curve: FPR on x, TPR on y.
type Series struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Series returns the curve as parallel x/y slices.
func (r *Result) Series() Series {
	s := Series{
		X: make([]float64, len(r.Curve)),
		Y: make([]float64, len(r.Curve)),
	}
	for i, p := range r.Curve {
		s.X[i] = p.FPR
		s.Y[i] = p.TPR
	}
	return s
}

// Label is the legend text for the curve, with the area to 3 decimals.
func (r *Result) Label() string {
	return fmt.Sprintf("ROC Curve (AUC = %.3f)", r.AUC)
}

// Optimal returns the highlighted operating point.
func (r *Result) Optimal() Point {
	return r.Curve[r.OptimalIndex]
}

// Youden returns TPR - FPR at the optimal point.
func (r *Result) Youden() float64 {
	p := r.Optimal()
	return p.TPR - p.FPR
}
