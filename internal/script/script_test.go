package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/skovran/physbox/internal/session"
)

func TestLoadScenario(t *testing.T) {
	src := `
name: throw
description: scripted drag throw
mode: ballistic
seed: 3
dt: 0.02
duration: 4
events:
  - {at: 0.0, kind: press, x: 300, y: 200}
  - {at: 0.1, kind: release, x: 110, y: 506}
`
	path := filepath.Join(t.TempDir(), "throw.yaml")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Name != "throw" || sc.Mode != "ballistic" || sc.Seed != 3 {
		t.Errorf("header fields: %+v", sc)
	}
	if len(sc.Events) != 2 || sc.Events[1].Kind != "release" || sc.Events[1].At != 0.1 {
		t.Errorf("events: %+v", sc.Events)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestConfigErrors(t *testing.T) {
	if _, err := (&Scenario{Mode: "plasma"}).Config(); err == nil {
		t.Error("expected unknown mode error")
	}
	if _, err := (&Scenario{Mode: "orbit", Preset: "nope"}).Config(); err == nil {
		t.Error("expected unknown preset error")
	}
}

func TestPlayRejectsUnknownKind(t *testing.T) {
	sc := &Scenario{
		Mode:     "collision",
		Duration: 1,
		Events:   []TimedEvent{{At: 0, Kind: "wiggle"}},
	}
	_, err := Play(context.Background(), sc)
	if !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("got %v, expected ErrUnknownEvent", err)
	}
}

// A scripted press and release must fly a full shot; events listed out
// of order still deliver in timestamp order.
func TestScriptedBallisticShot(t *testing.T) {
	sc := &Scenario{
		Mode:     "ballistic",
		Duration: 5,
		Events: []TimedEvent{
			{At: 0.05, Kind: "release", X: 110, Y: 506},
			{At: 0, Kind: "press", X: 300, Y: 200},
		},
	}
	result, err := Play(context.Background(), sc)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	last := result.Frames[len(result.Frames)-1]
	if last.Phase != session.PhaseLanded {
		t.Fatalf("final phase %v, expected landed", last.Phase)
	}
	if last.Result == nil {
		t.Fatal("no flight summary on the landed frame")
	}
	if last.Result.Range < 300 || last.Result.Range > 450 {
		t.Errorf("range %.1f outside the plausible band", last.Result.Range)
	}
}

func TestScriptedSettlingStart(t *testing.T) {
	sc := &Scenario{
		Mode:     "settling",
		Duration: 3,
		Events:   []TimedEvent{{At: 0.1, Kind: "start"}},
	}
	result, err := Play(context.Background(), sc)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	first := result.Frames[0].Particles[0]
	last := result.Frames[len(result.Frames)-1].Particles[0]
	if last.Pos.Y-first.Pos.Y < 100 {
		t.Errorf("water ball only fell %.1f px", last.Pos.Y-first.Pos.Y)
	}
}
