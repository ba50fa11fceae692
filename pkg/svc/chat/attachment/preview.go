package attachment

// Preview is the state of the single "open for preview" slot.
// It is one of PreviewClosed, PreviewEditable or PreviewReadOnly.
type Preview interface {
	isPreview()
}

// PreviewClosed means no attachment is open.
type PreviewClosed struct{}

// PreviewEditable points at a staged attachment whose edits flow back into the store.
type PreviewEditable struct {
	ID string
}

// PreviewReadOnly holds a snapshot of an archived attachment.
type PreviewReadOnly struct {
	Snapshot Attachment
}

func (PreviewClosed) isPreview()   {}
func (PreviewEditable) isPreview() {}
func (PreviewReadOnly) isPreview() {}
