package eval

import (
	"fmt"
	"sort"

	"github.com/DjordjeVuckovic/box-bench/internal/apperr"
	"github.com/DjordjeVuckovic/box-bench/internal/geom"
)

var DefaultIoUThresholds = []float64{0.25, 0.50}

type Config struct {
	// IoUThresholds are evaluated simultaneously in one matching pass.
	IoUThresholds []float64

	// APMode selects the AP integration policy, APModeArea or
	// APMode11Points.
	APMode string

	// ClassNames maps class id to display name. Required before results
	// can be labeled.
	ClassNames []string

	// Oracle computes pairwise IoU. Defaults to the axis-aligned oracle.
	Oracle geom.Oracle
}

func DefaultConfig() Config {
	return Config{
		IoUThresholds: DefaultIoUThresholds,
		APMode:        APModeArea,
	}
}

// ClassResult holds one class's scores, indexed by threshold position.
type ClassResult struct {
	ClassID int       `json:"class_id"`
	Name    string    `json:"name"`
	AP      []float64 `json:"ap"`
	AR      []float64 `json:"ar"`
}

// Result is the outcome of one Compute call. Metrics maps
// "AP_<thr>"/"AR_<thr>" (threshold formatted to two decimals) to the mean
// over all classes.
type Result struct {
	Thresholds []float64          `json:"thresholds"`
	Metrics    map[string]float64 `json:"metrics"`
	PerClass   []ClassResult      `json:"per_class"`
}

// Evaluator accumulates (prediction, ground truth) pairs and scores them
// as one batch. It is not safe for concurrent use; gathering results from
// multiple workers into one ordered batch is the caller's job.
type Evaluator struct {
	cfg   Config
	pairs []SamplePair
}

func New(cfg Config) (*Evaluator, error) {
	if len(cfg.IoUThresholds) == 0 {
		cfg.IoUThresholds = DefaultIoUThresholds
	}
	for _, thr := range cfg.IoUThresholds {
		if thr < 0 || thr >= 1 {
			return nil, apperr.NewValidation(fmt.Sprintf("IoU threshold %v out of range [0, 1)", thr))
		}
	}
	if cfg.APMode == "" {
		cfg.APMode = APModeArea
	}
	if !ValidAPMode(cfg.APMode) {
		return nil, apperr.NewValidation(fmt.Sprintf("unsupported AP mode %q, only %q and %q are supported",
			cfg.APMode, APModeArea, APMode11Points))
	}
	if cfg.Oracle == nil {
		cfg.Oracle = geom.NewAxisAlignedOracle()
	}
	return &Evaluator{cfg: cfg}, nil
}

// Add appends one batch of sample pairs. The two sequences are zipped
// positionally, so they must share length; each element is validated at
// ingestion. Sample ids continue from previous Add calls.
func (e *Evaluator) Add(preds []Prediction, gts []GroundTruth) error {
	if len(preds) != len(gts) {
		return fmt.Errorf("got %d predictions for %d ground truths", len(preds), len(gts))
	}

	start := len(e.pairs)
	for i := range preds {
		if err := preds[i].validate(); err != nil {
			return fmt.Errorf("sample %d: %w", start+i, err)
		}
		if err := gts[i].validate(); err != nil {
			return fmt.Errorf("sample %d: %w", start+i, err)
		}
		e.pairs = append(e.pairs, SamplePair{
			SampleID:    start + i,
			Prediction:  preds[i],
			GroundTruth: gts[i],
		})
	}
	return nil
}

// Reset discards all accumulated samples.
func (e *Evaluator) Reset() {
	e.pairs = nil
}

// Compute scores every accumulated sample and returns mean AP and mean AR
// per threshold. It does not mutate the accumulated pairs, so calling it
// twice yields identical results.
func (e *Evaluator) Compute() (*Result, error) {
	return e.ComputePairs(e.pairs)
}

// ComputePairs scores an explicit batch of sample pairs. Sample ids must
// be unique within the batch; beyond identity their order carries no
// meaning.
func (e *Evaluator) ComputePairs(pairs []SamplePair) (*Result, error) {
	if len(e.cfg.ClassNames) == 0 {
		return nil, apperr.NewValidation("class name table is not configured")
	}

	classes := groupByClass(pairs)

	classIDs := make([]int, 0, len(classes))
	for id := range classes {
		classIDs = append(classIDs, id)
	}
	sort.Ints(classIDs)

	thresholds := e.cfg.IoUThresholds
	result := &Result{
		Thresholds: thresholds,
		Metrics:    make(map[string]float64, 2*len(thresholds)),
	}

	for _, classID := range classIDs {
		if classID >= len(e.cfg.ClassNames) {
			return nil, apperr.NewValidation(fmt.Sprintf("class id %d has no name in the class table (%d entries)",
				classID, len(e.cfg.ClassNames)))
		}

		cr, err := e.evalClass(classes[classID], thresholds)
		if err != nil {
			return nil, fmt.Errorf("class %d: %w", classID, err)
		}
		cr.ClassID = classID
		cr.Name = e.cfg.ClassNames[classID]
		result.PerClass = append(result.PerClass, cr)
	}

	for t, thr := range thresholds {
		var sumAP, sumAR float64
		for _, cr := range result.PerClass {
			sumAP += cr.AP[t]
			sumAR += cr.AR[t]
		}
		n := float64(len(result.PerClass))
		if n > 0 {
			sumAP /= n
			sumAR /= n
		}
		result.Metrics[MetricKeyAP(thr)] = sumAP
		result.Metrics[MetricKeyAR(thr)] = sumAR
	}

	return result, nil
}

// evalClass scores one class across all thresholds. A class with no
// detections, or with detections but no ground truth, degrades to the
// zero curve by convention instead of erroring.
func (e *Evaluator) evalClass(idx *classIndex, thresholds []float64) (ClassResult, error) {
	cr := ClassResult{
		AP: make([]float64, len(thresholds)),
		AR: make([]float64, len(thresholds)),
	}

	recalls := make([][]float64, len(thresholds))
	precisions := make([][]float64, len(thresholds))

	if idx.detectionCount() == 0 || idx.npos() == 0 {
		// No detections, or detections with nothing to match against:
		// the class degrades to the zero curve instead of erroring.
		for t := range thresholds {
			recalls[t], precisions[t] = degenerateCurve()
		}
	} else {
		matched := matchClass(e.cfg.Oracle, idx, thresholds)
		for t := range thresholds {
			recalls[t], precisions[t] = prCurve(matched.npos, matched.tp[t], matched.fp[t])
		}
	}

	aps, err := averagePrecision(recalls, precisions, e.cfg.APMode)
	if err != nil {
		return cr, err
	}

	for t := range thresholds {
		cr.AP[t] = aps[t]
		cr.AR[t] = recalls[t][len(recalls[t])-1]
	}
	return cr, nil
}

// MetricKeyAP names the mean-AP metric for one threshold, e.g. "AP_0.25".
func MetricKeyAP(thr float64) string {
	return fmt.Sprintf("AP_%.2f", thr)
}

// MetricKeyAR names the mean-AR metric for one threshold, e.g. "AR_0.50".
func MetricKeyAR(thr float64) string {
	return fmt.Sprintf("AR_%.2f", thr)
}
