package sink

import (
	"testing"

	"github.com/matzehuels/oldglory/pkg/layout"
)

func testFlag(t *testing.T, width float64) *layout.Flag {
	t.Helper()
	f, err := layout.Compose(width)
	if err != nil {
		t.Fatalf("Compose(%v) error: %v", width, err)
	}
	return f
}
