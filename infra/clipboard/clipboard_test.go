package clipboard

import (
	"errors"
	"testing"
)

func TestWriteAll_Unsupported(t *testing.T) {
	s := &System{unsupported: true}
	if err := s.WriteAll("https://rivals.test/community#p1"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}
