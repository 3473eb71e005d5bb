package pipeline

// Stage is one named step of the simulated pipeline.
type Stage struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Details     string   `yaml:"details" json:"details"`
	Duration    string   `yaml:"duration" json:"duration"`
	Tools       []string `yaml:"tools" json:"tools"`
}

// Status is the derived state of a simulation run.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// StepStatus is how a single stage should be shown for the current run.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
)

// Step pairs a stage with its status in a snapshot.
type Step struct {
	Stage  Stage      `json:"stage"`
	Status StepStatus `json:"status"`
	Last   bool       `json:"last"`
}

// Snapshot is a consistent view of a simulator at one instant.
type Snapshot struct {
	Index  int    `json:"index"`
	Active bool   `json:"active"`
	Status Status `json:"status"`
	Steps  []Step `json:"steps"`
}

// Current returns the stage at the snapshot's index.
func (s Snapshot) Current() (Stage, bool) {
	if s.Index < 0 || s.Index >= len(s.Steps) {
		return Stage{}, false
	}
	return s.Steps[s.Index].Stage, true
}
