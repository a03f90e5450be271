package driver

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestSpaceExcluded(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"EHOBA-MOTO-01", true},
		{"P2 EHOBA-MOTO", true},
		{"EHOBA-047", false},
		{"Desk 12", false},
	}
	for _, c := range cases {
		if got := SpaceExcluded(c.name); got != c.want {
			t.Errorf("SpaceExcluded(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestNewError_ReclassifiesDeadlineAsTimeout(t *testing.T) {
	err := NewError(KindNavigation, "apply filters", fmt.Errorf("run: %w", context.DeadlineExceeded))
	if err.Kind != KindTimeout {
		t.Fatalf("want timeout kind, got %s", err.Kind)
	}
	if !IsTimeout(err) {
		t.Fatal("IsTimeout must report true")
	}
}

func TestError_WrapsAndFormats(t *testing.T) {
	cause := errors.New("element not found")
	err := NewError(KindFormMismatch, "space mismatch", cause)

	if !errors.Is(err, cause) {
		t.Fatal("cause must be unwrappable")
	}
	if IsTimeout(err) {
		t.Fatal("mismatch is not a timeout")
	}

	var de *Error
	if !errors.As(fmt.Errorf("book: %w", err), &de) {
		t.Fatal("Error must survive wrapping")
	}
	if de.Kind != KindFormMismatch {
		t.Fatalf("unexpected kind: %s", de.Kind)
	}
}
