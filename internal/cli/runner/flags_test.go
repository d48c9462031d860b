package runner

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestFlagSetString(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("output-dir", "default", "test flag")
	cmd.Flags().Set("output-dir", "raw/opentdb")

	flags := Flags(cmd)
	val := flags.String("output-dir")

	if val != "raw/opentdb" {
		t.Errorf("expected 'raw/opentdb', got %q", val)
	}
	if flags.Err() != nil {
		t.Errorf("unexpected error: %v", flags.Err())
	}
}

func TestFlagSetInt(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Int("category", 0, "test flag")
	cmd.Flags().Set("category", "9")

	flags := Flags(cmd)
	val := flags.Int("category")

	if val != 9 {
		t.Errorf("expected 9, got %d", val)
	}
	if flags.Err() != nil {
		t.Errorf("unexpected error: %v", flags.Err())
	}
}

func TestFlagSetBool(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Bool("dry-run", false, "test flag")
	cmd.Flags().Set("dry-run", "true")

	flags := Flags(cmd)
	if !flags.Bool("dry-run") {
		t.Error("expected true, got false")
	}
	if flags.Err() != nil {
		t.Errorf("unexpected error: %v", flags.Err())
	}
}

func TestFlagSetAccumulatesErrors(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("present", "x", "test flag")

	flags := Flags(cmd)
	flags.String("present")
	flags.Int("missing-int")
	flags.Bool("missing-bool")

	if !flags.HasErrors() {
		t.Fatal("expected accumulated errors for missing flags")
	}
	if flags.Err() == nil {
		t.Fatal("expected joined error")
	}
}

func TestFlagSetChanged(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("name", "default", "test flag")

	flags := Flags(cmd)
	if flags.Changed("name") {
		t.Error("flag not set, Changed must be false")
	}

	cmd.Flags().Set("name", "other")
	if !flags.Changed("name") {
		t.Error("flag set, Changed must be true")
	}
}
