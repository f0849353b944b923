package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	MatchesGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tournament_matches_generated_total",
			Help: "Matches created by tournament start and phase advance, phantom matches included",
		},
		[]string{"tournament_type", "phase_kind"},
	)

	ResultsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tournament_results_recorded_total",
			Help: "Match results recorded, by outcome",
		},
		[]string{"outcome"},
	)

	PhasesAdvanced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tournament_phase_advances_total",
			Help: "Elimination phase advance requests, by result",
		},
		[]string{"result"},
	)

	TournamentsFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tournaments_finished_total",
			Help: "Tournaments moved to the finished state",
		},
		[]string{"tournament_type"},
	)

	RollbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tournament_operation_rollbacks_total",
			Help: "Controller operations that failed and were rolled back",
		},
		[]string{"operation"},
	)
)

const (
	PhaseKindInitial = "initial"
	PhaseKindNext    = "next"

	OutcomeWin  = "win"
	OutcomeDraw = "draw"

	AdvanceGenerated      = "generated"
	AdvanceNoFurtherPhase = "no_further_phase"
)

var registerOnce sync.Once

// Register adds the counters to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			MatchesGenerated,
			ResultsRecorded,
			PhasesAdvanced,
			TournamentsFinished,
			RollbacksTotal,
		)
	})
}
