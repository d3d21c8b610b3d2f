package engine

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns consumer data. It reads through this interface.
//
// Implementations:
//   SliceView — the immutable base dataset handle
//   SubView   — filtered subset (indices into parent, zero-copy)
//
// The base dataset is built once and shared read-only; views are per pass.
// ============================================================================

// RecordView provides indexed access to a dataset.
// The engine calls Record in tight loops — keep implementations fast.
type RecordView interface {
	Len() int
	Record(index int) Project
}

// ============================================================================
// SLICE VIEW — the base dataset
// ============================================================================

// SliceView wraps a []Project slice as a RecordView.
// It copies the slice on construction so later writes by the caller cannot
// leak into a cached dataset.
type SliceView struct {
	records []Project
}

// NewDataset creates the base RecordView from normalized projects.
func NewDataset(records []Project) *SliceView {
	owned := make([]Project, len(records))
	copy(owned, records)
	return &SliceView{records: owned}
}

func (v *SliceView) Len() int { return len(v.records) }

func (v *SliceView) Record(i int) Project {
	if i < 0 || i >= len(v.records) {
		return Project{}
	}
	return v.records[i]
}

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent — no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Record(i int) Project {
	if i < 0 || i >= len(v.indices) {
		return Project{}
	}
	return v.parent.Record(v.indices[i])
}

// Records materializes a view in order. Used by exporters and tables.
func Records(view RecordView) []Project {
	out := make([]Project, view.Len())
	for i := range out {
		out[i] = view.Record(i)
	}
	return out
}
