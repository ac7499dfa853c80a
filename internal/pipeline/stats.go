package pipeline

// RunStats tracks aggregate counters across a run. Per-file counters
// (FilesProcessed, UDIMDetected, InvalidExtension, Unrecognized) count input
// paths; Redirected and Hopeless count textures after UDIM tiles collapsed.
type RunStats struct {
	FilesProcessed   int
	UDIMDetected     int
	InvalidExtension int
	Unrecognized     int
	Redirected       int
	Hopeless         int
	Conflicts        int
	GroupsCreated    int
}

// Add accumulates o into s.
func (s *RunStats) Add(o RunStats) {
	s.FilesProcessed += o.FilesProcessed
	s.UDIMDetected += o.UDIMDetected
	s.InvalidExtension += o.InvalidExtension
	s.Unrecognized += o.Unrecognized
	s.Redirected += o.Redirected
	s.Hopeless += o.Hopeless
	s.Conflicts += o.Conflicts
	s.GroupsCreated += o.GroupsCreated
}

// Ignored is the number of inputs that ended up in no group: invalid
// extensions plus hopeless textures.
func (s RunStats) Ignored() int {
	return s.InvalidExtension + s.Hopeless
}

// Outcome lists the per-file classification outcomes of a batch or run.
// InvalidExtension, Unrecognized and UDIM hold input paths; Redirected,
// Hopeless and Conflicted hold resolved paths.
type Outcome struct {
	InvalidExtension []string
	Unrecognized     []string
	UDIM             []string
	Redirected       []string
	Hopeless         []string
	Conflicted       []string
}

// Append adds every list of o to the end of the matching list of out.
func (out *Outcome) Append(o Outcome) {
	out.InvalidExtension = append(out.InvalidExtension, o.InvalidExtension...)
	out.Unrecognized = append(out.Unrecognized, o.Unrecognized...)
	out.UDIM = append(out.UDIM, o.UDIM...)
	out.Redirected = append(out.Redirected, o.Redirected...)
	out.Hopeless = append(out.Hopeless, o.Hopeless...)
	out.Conflicted = append(out.Conflicted, o.Conflicted...)
}
