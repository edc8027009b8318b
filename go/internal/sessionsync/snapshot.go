package sessionsync

import "github.com/mcdev12/quorum/go/internal/models"

// Phase is the lifecycle state of a synchronization loop.
type Phase string

const (
	// PhaseInitializing covers mount until the first question fetch resolves,
	// successfully or not.
	PhaseInitializing Phase = "INITIALIZING"
	// PhaseReady means the recurring poll is driving the snapshot.
	PhaseReady Phase = "READY"
	// PhaseTerminated means the timer is cancelled and late results are discarded.
	PhaseTerminated Phase = "TERMINATED"
)

// Snapshot is the read model the view renders from. Questions are always the
// most recently resolved server response, never a client-side merge. Version
// increases with every applied update so an update source that delivers
// out of order can be detected; with the default poll source the later
// resolver simply wins.
type Snapshot struct {
	Phase     Phase
	Questions []models.Question
	IsAdmin   bool
	Loading   bool
	Version   uint64
}
