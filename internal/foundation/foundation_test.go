package foundation

import "testing"

func TestChange(t *testing.T) {
	t.Run("Modified", func(t *testing.T) {
		c := Modified("index.html")
		if !c.Changed {
			t.Error("Expected Modified to report a change")
		}
		if c.Artifact != "index.html" {
			t.Errorf("Expected artifact index.html, got %q", c.Artifact)
		}
	})

	t.Run("Unmodified", func(t *testing.T) {
		c := Unmodified(3)
		if c.Changed {
			t.Error("Expected Unmodified to report no change")
		}
		if c.Artifact != 3 {
			t.Errorf("Expected artifact 3, got %d", c.Artifact)
		}
	})

	t.Run("ChangedIf", func(t *testing.T) {
		if !ChangedIf(true, "").Changed || ChangedIf(false, "").Changed {
			t.Error("Expected ChangedIf to follow its condition")
		}
	})

	t.Run("Erase", func(t *testing.T) {
		erased := Modified("x").Erase()
		if !erased.Changed {
			t.Error("Expected erased change to keep the flag")
		}
		if s, ok := erased.Artifact.(string); !ok || s != "x" {
			t.Errorf("Expected erased artifact x, got %v", erased.Artifact)
		}
	})
}
