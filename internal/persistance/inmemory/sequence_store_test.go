package inmemory

import (
	"testing"

	"github.com/nestjam/yap-sequencer/internal/domain"
)

func TestSequenceStore(t *testing.T) {
	domain.SequenceStoreContract{
		NewSequenceStore: func() (domain.SequenceStore, func()) {
			t.Helper()
			store := New()

			return store, func() {
			}
		},
	}.Test(t)
}
