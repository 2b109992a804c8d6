package usecases

import (
	"sync"
	"time"
)

const (
	DefaultAnalysisDuration = 10 * time.Second
	AnalysisRedirectDelay   = 300 * time.Millisecond
)

var (
	analysisCurve = []int{0, 8, 15, 22, 30, 38, 45, 52, 60, 68, 74, 80, 86, 91, 95, 98, 100}

	analysisSteps = []string{
		"Analyzing your responses...",
		"Identifying key challenges...",
		"Reviewing community recommendations...",
		"Personalizing your experience...",
		"Building your gluten-free plan...",
		"Finalizing your results...",
	}

	// percent at which each step text appears
	analysisStepPercents = []int{0, 10, 35, 60, 72, 85}
)

// AnalysisFrame is one state of the analysis loader.
type AnalysisFrame struct {
	Elapsed time.Duration `json:"-"`
	Percent int           `json:"percent"`
	Step    string        `json:"step"`
}

// AnalysisStep returns the step text shown at percent.
func AnalysisStep(percent int) string {
	step := 0
	for i, threshold := range analysisStepPercents {
		if percent >= threshold {
			step = i
		}
	}
	return analysisSteps[step]
}

// AnalysisSchedule lays the progress curve over total: frame i is shown at
// i*total/len(curve).
func AnalysisSchedule(total time.Duration) []AnalysisFrame {
	if total <= 0 {
		total = DefaultAnalysisDuration
	}
	interval := total / time.Duration(len(analysisCurve))
	frames := make([]AnalysisFrame, len(analysisCurve))
	for i, percent := range analysisCurve {
		frames[i] = AnalysisFrame{
			Elapsed: time.Duration(i) * interval,
			Percent: percent,
			Step:    AnalysisStep(percent),
		}
	}
	return frames
}

// AnalysisRunner plays the schedule on a single timer and fires onDone at
// total+300ms. Cancel stops both; no callback runs after Cancel returns.
type AnalysisRunner struct {
	total   time.Duration
	onFrame func(AnalysisFrame)
	onDone  func()

	mu      sync.Mutex
	started bool
	stopped bool
	stop    chan struct{}
	done    chan struct{}
}

func NewAnalysisRunner(total time.Duration, onFrame func(AnalysisFrame), onDone func()) *AnalysisRunner {
	if total <= 0 {
		total = DefaultAnalysisDuration
	}
	return &AnalysisRunner{
		total:   total,
		onFrame: onFrame,
		onDone:  onDone,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the runner. Calling it twice, or after Cancel, does nothing.
func (r *AnalysisRunner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started || r.stopped {
		return
	}
	r.started = true
	go r.run()
}

// Cancel stops the runner and waits for an in-flight callback to return. It
// must not be called from inside a callback.
func (r *AnalysisRunner) Cancel() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	close(r.stop)
	started := r.started
	r.mu.Unlock()

	if !started {
		close(r.done)
		return
	}
	<-r.done
}

// Done is closed once the runner finished or was cancelled.
func (r *AnalysisRunner) Done() <-chan struct{} {
	return r.done
}

func (r *AnalysisRunner) run() {
	defer close(r.done)

	frames := AnalysisSchedule(r.total)
	begin := time.Now()
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for i := 0; i <= len(frames); i++ {
		at := r.total + AnalysisRedirectDelay
		if i < len(frames) {
			at = frames[i].Elapsed
		}
		timer.Reset(time.Until(begin.Add(at)))

		select {
		case <-r.stop:
			return
		case <-timer.C:
		}
		if r.cancelled() {
			return
		}

		if i < len(frames) {
			if r.onFrame != nil {
				r.onFrame(frames[i])
			}
			continue
		}
		if r.onDone != nil {
			r.onDone()
		}
	}
}

func (r *AnalysisRunner) cancelled() bool {
	select {
	case <-r.stop:
		return true
	default:
		return false
	}
}
