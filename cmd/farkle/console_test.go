package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"farkle/internal/app"
	"farkle/internal/config"
)

type fixedFaces struct {
	faces []int
	pos   int
}

func (f *fixedFaces) Intn(n int) int {
	face := f.faces[len(f.faces)-1]
	if f.pos < len(f.faces) {
		face = f.faces[f.pos]
		f.pos++
	}
	return (face - 1) % n
}

func newTestConsole(faces ...int) (*Console, *bytes.Buffer, *[]time.Duration) {
	out := &bytes.Buffer{}
	c := NewConsole(app.NewService(&fixedFaces{faces: faces}), config.Defaults(), out, zerolog.Nop())
	slept := &[]time.Duration{}
	c.sleep = func(d time.Duration) { *slept = append(*slept, d) }
	return c, out, slept
}

func TestConsole_PlaysATurn(t *testing.T) {
	c, out, slept := newTestConsole(1, 2, 3, 4, 6, 6)

	input := "config 2 1000\nnew\nroll\nhold 1\nbank\nend\nquit\n"
	if err := c.Run(strings.NewReader(input)); err != nil {
		t.Fatalf("run error: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"Ready to start",
		"2 players, playing to 1000",
		"1:[1]",
		"1 of 1 (100)",
		"Player 2's turn",
		" P1 100",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if len(*slept) != 1 || (*slept)[0] != config.Defaults().RollAnimation() {
		t.Errorf("expected one roll animation delay, got %v", *slept)
	}

	g := c.sess.Game
	if g.PlayerScores[0] != 100 || g.Current != 1 {
		t.Errorf("expected P1 100 and player 2 up, got %v current %d", g.PlayerScores, g.Current)
	}
}

func TestConsole_FarkleAdvancesAfterDelay(t *testing.T) {
	c, out, slept := newTestConsole(2, 3, 4, 6, 2, 3)

	if err := c.Run(strings.NewReader("config 2 1000\nnew\nroll\n")); err != nil {
		t.Fatalf("run error: %v", err)
	}

	cfg := config.Defaults()
	if len(*slept) != 2 || (*slept)[1] != cfg.FarkleDelay() {
		t.Errorf("expected roll and farkle delays, got %v", *slept)
	}
	if !strings.Contains(out.String(), "Farkle! You lost all points for this turn") {
		t.Errorf("farkle status not shown:\n%s", out.String())
	}
	if c.sess.Game.Current != 1 {
		t.Errorf("expected player 2 after farkle, got %d", c.sess.Game.Current+1)
	}
}

func TestConsole_ReportsRejectedCommands(t *testing.T) {
	c, out, _ := newTestConsole(1)

	if err := c.Run(strings.NewReader("roll\nhold x\nconfig 9 1000\nfly\n")); err != nil {
		t.Fatalf("run error: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"! game has not started",
		"! usage: hold <die>",
		"! player count must be between 1 and 6",
		`! unknown command "fly"`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if c.sess.GameID != "" {
		t.Errorf("no game should have started, got id %q", c.sess.GameID)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"WARN":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
		"":      zerolog.InfoLevel,
		"loud":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
