package model

import (
	"time"

	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

// MaxDocumentSize is the per-file ceiling for attached documents (5 MiB).
const MaxDocumentSize int64 = 5 << 20

// DocumentSlot holds at most one file for one document type. Attachment
// (a file staged locally) and upload confirmation (the file durably stored)
// are tracked independently.
type DocumentSlot struct {
	Type        valueobject.DocumentType
	FileName    string
	FileSize    int64
	StorageRef  string // staging reference set at attach time
	Uploaded    bool
	UploadedRef string // durable reference set after a successful upload
	AttachedAt  time.Time
}

// Attached reports whether the slot currently holds a file.
func (s DocumentSlot) Attached() bool { return s.FileName != "" }

// DocumentSet is the fixed collection of document slots for one dossier,
// one slot per type in the fixed set. The zero value means the document
// step has not been entered yet.
type DocumentSet struct {
	slots []DocumentSlot
}

// NewDocumentSet creates an empty slot for every type in the fixed set.
func NewDocumentSet() DocumentSet {
	types := valueobject.AllDocumentTypes()
	slots := make([]DocumentSlot, len(types))
	for i, t := range types {
		slots[i] = DocumentSlot{Type: t}
	}
	return DocumentSet{slots: slots}
}

// ReconstructDocumentSet rebuilds a set from persistence.
func ReconstructDocumentSet(slots []DocumentSlot) DocumentSet {
	return DocumentSet{slots: copySlots(slots)}
}

// Initialised reports whether slots have been created.
func (d DocumentSet) Initialised() bool { return len(d.slots) > 0 }

// Attach stores a file reference in the slot for docType, replacing any
// previous attachment for that type; re-attaching clears a prior upload
// confirmation. Oversized files and unknown types are rejected before any
// mutation, leaving the slot unchanged.
func (d DocumentSet) Attach(docType valueobject.DocumentType, fileName string, fileSize int64, storageRef string, now time.Time) (DocumentSet, error) {
	if fileSize > MaxDocumentSize {
		return d, valueobject.ErrFileTooLarge
	}

	i, ok := d.index(docType)
	if !ok {
		return d, valueobject.ErrUnknownDocumentType
	}

	next := DocumentSet{slots: copySlots(d.slots)}
	next.slots[i] = DocumentSlot{
		Type:       docType,
		FileName:   fileName,
		FileSize:   fileSize,
		StorageRef: storageRef,
		AttachedAt: now,
	}
	return next, nil
}

// Remove clears the slot for docType.
func (d DocumentSet) Remove(docType valueobject.DocumentType) (DocumentSet, error) {
	i, ok := d.index(docType)
	if !ok {
		return d, valueobject.ErrUnknownDocumentType
	}
	if !d.slots[i].Attached() {
		return d, valueobject.ErrDocumentNotAttached
	}

	next := DocumentSet{slots: copySlots(d.slots)}
	next.slots[i] = DocumentSlot{Type: docType}
	return next, nil
}

// MarkUploaded records a successful durable upload for docType.
func (d DocumentSet) MarkUploaded(docType valueobject.DocumentType, uploadedRef string) (DocumentSet, error) {
	i, ok := d.index(docType)
	if !ok {
		return d, valueobject.ErrUnknownDocumentType
	}
	if !d.slots[i].Attached() {
		return d, valueobject.ErrDocumentNotAttached
	}

	next := DocumentSet{slots: copySlots(d.slots)}
	next.slots[i].Uploaded = true
	next.slots[i].UploadedRef = uploadedRef
	return next, nil
}

// IsComplete is true only when every required slot is uploaded. Optional
// slots never influence completeness.
func (d DocumentSet) IsComplete() bool {
	if !d.Initialised() {
		return false
	}
	for _, s := range d.slots {
		if s.Type.Required() && !s.Uploaded {
			return false
		}
	}
	return true
}

// PendingUploads returns the attached-but-not-yet-uploaded slots, so a
// submission attempt can retry exactly what is missing.
func (d DocumentSet) PendingUploads() []DocumentSlot {
	var pending []DocumentSlot
	for _, s := range d.slots {
		if s.Attached() && !s.Uploaded {
			pending = append(pending, s)
		}
	}
	return pending
}

// Slot returns the slot for docType.
func (d DocumentSet) Slot(docType valueobject.DocumentType) (DocumentSlot, bool) {
	i, ok := d.index(docType)
	if !ok {
		return DocumentSlot{}, false
	}
	return d.slots[i], true
}

// Slots returns a defensive copy of all slots.
func (d DocumentSet) Slots() []DocumentSlot {
	return copySlots(d.slots)
}

func (d DocumentSet) index(docType valueobject.DocumentType) (int, bool) {
	for i, s := range d.slots {
		if s.Type.Equal(docType) {
			return i, true
		}
	}
	return 0, false
}

func copySlots(src []DocumentSlot) []DocumentSlot {
	if len(src) == 0 {
		return nil
	}
	dst := make([]DocumentSlot, len(src))
	copy(dst, src)
	return dst
}
