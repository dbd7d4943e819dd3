package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

var docNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestDocumentSet_AttachRemoveRoundTrip(t *testing.T) {
	set := model.NewDocumentSet()

	set, err := set.Attach(valueobject.DocumentTypeIDFront, "id-front.jpg", 1024, "staging/a", docNow)
	require.NoError(t, err)

	set, err = set.Remove(valueobject.DocumentTypeIDFront)
	require.NoError(t, err)

	set, err = set.Attach(valueobject.DocumentTypeIDFront, "id-front-2.jpg", 2048, "staging/b", docNow)
	require.NoError(t, err)

	// Exactly one slot per type, holding the latest file.
	slot, ok := set.Slot(valueobject.DocumentTypeIDFront)
	require.True(t, ok)
	assert.Equal(t, "id-front-2.jpg", slot.FileName)
	assert.Len(t, set.Slots(), len(valueobject.AllDocumentTypes()))
}

func TestDocumentSet_AttachRejectsOversizedFile(t *testing.T) {
	set := model.NewDocumentSet()

	_, err := set.Attach(valueobject.DocumentTypePaySlip1, "huge.pdf", model.MaxDocumentSize+1, "staging/x", docNow)
	assert.ErrorIs(t, err, valueobject.ErrFileTooLarge)

	// Slot left unchanged.
	slot, ok := set.Slot(valueobject.DocumentTypePaySlip1)
	require.True(t, ok)
	assert.False(t, slot.Attached())
}

func TestDocumentSet_ReplaceClearsUploadConfirmation(t *testing.T) {
	set := model.NewDocumentSet()

	set, err := set.Attach(valueobject.DocumentTypeIDBack, "back.jpg", 512, "staging/a", docNow)
	require.NoError(t, err)
	set, err = set.MarkUploaded(valueobject.DocumentTypeIDBack, "store/a")
	require.NoError(t, err)

	set, err = set.Attach(valueobject.DocumentTypeIDBack, "back-fixed.jpg", 600, "staging/b", docNow)
	require.NoError(t, err)

	slot, _ := set.Slot(valueobject.DocumentTypeIDBack)
	assert.False(t, slot.Uploaded)
	assert.Empty(t, slot.UploadedRef)
}

func TestDocumentSet_RemoveUnattachedSlot(t *testing.T) {
	set := model.NewDocumentSet()
	_, err := set.Remove(valueobject.DocumentTypePaySlip2)
	assert.ErrorIs(t, err, valueobject.ErrDocumentNotAttached)
}

func TestDocumentSet_IsComplete(t *testing.T) {
	set := model.NewDocumentSet()
	assert.False(t, set.IsComplete())

	// Upload every required document; the optional bank statement stays empty.
	var err error
	for _, docType := range valueobject.AllDocumentTypes() {
		if !docType.Required() {
			continue
		}
		set, err = set.Attach(docType, docType.String()+".pdf", 1024, "staging/"+docType.String(), docNow)
		require.NoError(t, err)

		// Attached but not uploaded: still incomplete.
		assert.False(t, set.IsComplete())

		set, err = set.MarkUploaded(docType, "store/"+docType.String())
		require.NoError(t, err)
	}

	assert.True(t, set.IsComplete())
	assert.Empty(t, set.PendingUploads())
}

func TestDocumentSet_PendingUploads(t *testing.T) {
	set := model.NewDocumentSet()

	set, err := set.Attach(valueobject.DocumentTypeIDFront, "front.jpg", 100, "staging/a", docNow)
	require.NoError(t, err)
	set, err = set.Attach(valueobject.DocumentTypePaySlip1, "slip.pdf", 100, "staging/b", docNow)
	require.NoError(t, err)
	set, err = set.MarkUploaded(valueobject.DocumentTypeIDFront, "store/a")
	require.NoError(t, err)

	pending := set.PendingUploads()
	require.Len(t, pending, 1)
	assert.True(t, pending[0].Type.Equal(valueobject.DocumentTypePaySlip1))
}

func TestDocumentSet_ZeroValueNotInitialised(t *testing.T) {
	var set model.DocumentSet
	assert.False(t, set.Initialised())
	assert.False(t, set.IsComplete())
}
