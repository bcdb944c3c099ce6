package modes

import (
	"testing"
	"time"
)

func TestBuiltinModes(t *testing.T) {
	r := Default()

	tests := []struct {
		id            ID
		threshold     int
		timeLimit     time.Duration
		allowGameOver bool
	}{
		{Classic, 2048, 0, true},
		{TimeAttack, 0, 2 * time.Minute, true},
		{Zen, 2048, 0, false},
		{Challenge, 4096, 0, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			c, ok := r.Lookup(tt.id)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.id)
			}
			if c.WinThreshold != tt.threshold {
				t.Errorf("WinThreshold = %d, want %d", c.WinThreshold, tt.threshold)
			}
			if c.TimeLimit != tt.timeLimit {
				t.Errorf("TimeLimit = %v, want %v", c.TimeLimit, tt.timeLimit)
			}
			if c.AllowGameOver != tt.allowGameOver {
				t.Errorf("AllowGameOver = %v, want %v", c.AllowGameOver, tt.allowGameOver)
			}
		})
	}

	if c, _ := r.Lookup(TimeAttack); c.HasWinCondition() {
		t.Error("time attack should have no win condition")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := Default()
	defer func() {
		if recover() == nil {
			t.Error("Register of duplicate mode should panic")
		}
	}()
	r.Register(Config{ID: Classic})
}

func TestSetOverridesAndNormalizes(t *testing.T) {
	r := Default()
	r.Set(Config{ID: Zen, WinThreshold: 1024, WinBehavior: "bogus"})

	c, ok := r.Lookup(Zen)
	if !ok {
		t.Fatal("zen missing after Set")
	}
	if c.WinThreshold != 1024 {
		t.Errorf("WinThreshold = %d, want 1024", c.WinThreshold)
	}
	if c.WinBehavior != WinEnd {
		t.Errorf("invalid WinBehavior should normalize to %q, got %q", WinEnd, c.WinBehavior)
	}
	if c.Name != "zen" {
		t.Errorf("empty Name should default to the ID, got %q", c.Name)
	}
}

func TestListSortedAndNext(t *testing.T) {
	r := Default()
	ids := r.IDs()
	want := []ID{Challenge, Classic, TimeAttack, Zen}
	if len(ids) != len(want) {
		t.Fatalf("IDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	if got := r.Next(Zen); got != Challenge {
		t.Errorf("Next(zen) = %q, want wrap to challenge", got)
	}
	if got := r.Next(Classic); got != TimeAttack {
		t.Errorf("Next(classic) = %q, want timeAttack", got)
	}
}

func TestResolveIgnoresCase(t *testing.T) {
	r := Default()
	c, err := r.Resolve("timeattack")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if c.ID != TimeAttack {
		t.Errorf("Resolve(timeattack) = %q", c.ID)
	}
	if _, err := r.Resolve("speedrun"); err == nil {
		t.Error("Resolve should fail for unknown mode")
	}
}
