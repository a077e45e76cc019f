package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"farkle/internal/app"
	"farkle/internal/config"
	"farkle/internal/domain"
)

const helpText = `commands:
  new                      start a new game
  config <players> <goal>  change settings before the game starts
  roll                     roll the active dice
  hold <die>               select or release a die (1-6)
  bank                     save the selected score
  end                      keep the turn score and pass the dice
  show                     print the table
  help                     print this help
  quit                     leave`

// Console is a line-oriented hot-seat table for local play.
type Console struct {
	svc  *app.Service
	cfg  *config.GameConfig
	sess *app.Session
	out  io.Writer
	log  zerolog.Logger

	// sleep waits out the roll and farkle delays; tests replace it.
	sleep func(time.Duration)
}

// NewConsole creates a console with a table in setup using the configured defaults.
func NewConsole(svc *app.Service, cfg *config.GameConfig, out io.Writer, log zerolog.Logger) *Console {
	return &Console{
		svc:   svc,
		cfg:   cfg,
		sess:  svc.NewSession(cfg.DefaultPlayerCount, cfg.DefaultWinningScore),
		out:   out,
		log:   log,
		sleep: time.Sleep,
	}
}

// Run reads commands until quit or end of input.
func (c *Console) Run(in io.Reader) error {
	fmt.Fprintln(c.out, "Farkle. Type 'help' for commands.")
	c.render()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := c.exec(fields[0], fields[1:]); err != nil {
			c.report(err)
		}
	}
	fmt.Fprintln(c.out)
	return scanner.Err()
}

func (c *Console) exec(cmd string, args []string) error {
	var (
		events []app.Event
		err    error
	)

	switch cmd {
	case "help":
		fmt.Fprintln(c.out, helpText)
		return nil
	case "show":
		c.render()
		return nil
	case "new":
		events, err = c.svc.StartGame(c.sess)
	case "config":
		if len(args) != 2 {
			return errUsage("config <players> <goal>")
		}
		players, perr := strconv.Atoi(args[0])
		goal, gerr := strconv.Atoi(args[1])
		if perr != nil || gerr != nil {
			return errUsage("config <players> <goal>")
		}
		events, err = c.svc.Configure(c.sess, players, goal)
	case "roll":
		return c.roll()
	case "hold":
		if len(args) != 1 {
			return errUsage("hold <die>")
		}
		die, perr := strconv.Atoi(args[0])
		if perr != nil {
			return errUsage("hold <die>")
		}
		events, err = c.svc.ToggleHold(c.sess, die-1)
	case "bank":
		events, err = c.svc.Bank(c.sess)
	case "end":
		events, err = c.svc.EndTurn(c.sess)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		return err
	}
	c.logEvents(events)
	c.render()
	return nil
}

// roll plays the animation delay, draws the dice, and on a farkle waits before passing the turn.
func (c *Console) roll() error {
	events, err := c.svc.BeginRoll(c.sess)
	if err != nil {
		return err
	}
	c.logEvents(events)
	fmt.Fprintln(c.out, c.sess.Game.Status)
	c.sleep(c.cfg.RollAnimation())

	events, err = c.svc.CompleteRoll(c.sess)
	if err != nil {
		return err
	}
	c.logEvents(events)
	c.render()

	if !c.sess.Game.Turn.Farkled {
		return nil
	}
	c.sleep(c.cfg.FarkleDelay())
	events, err = c.svc.AdvanceAfterFarkle(c.sess)
	if err != nil {
		return err
	}
	c.logEvents(events)
	c.render()
	return nil
}

func (c *Console) report(err error) {
	if domain.IsRuleViolation(err) {
		c.log.Debug().Err(err).Msg("action rejected")
	}
	fmt.Fprintf(c.out, "! %v\n", err)
}

func (c *Console) logEvents(events []app.Event) {
	for _, ev := range events {
		c.log.Debug().Str("event", string(ev.Kind)).Str("game_id", c.sess.GameID).Msg("event")
	}
}

func (c *Console) render() {
	snap := c.sess.Game.Snapshot()
	w := c.out

	scores := make([]string, len(snap.PlayerScores))
	for i, s := range snap.PlayerScores {
		mark := " "
		if i == snap.CurrentPlayer && snap.Phase == domain.PhasePlaying {
			mark = "*"
		}
		scores[i] = fmt.Sprintf("%sP%d %d", mark, i+1, s)
	}
	fmt.Fprintf(w, "[%s] goal %d | %s\n", snap.Phase, snap.WinningScore, strings.Join(scores, "  "))

	if snap.Phase == domain.PhasePlaying {
		fmt.Fprintf(w, "dice: %s\n", renderDice(snap))
		for _, opt := range snap.Options {
			fmt.Fprintf(w, "  %s (%d)\n", opt.Label(), opt.Points)
		}
		fmt.Fprintf(w, "turn %d  selected %d\n", snap.TurnScore, snap.SelectedScore)
	}
	fmt.Fprintln(w, snap.Status)
}

// renderDice prints active dice as 1-based slots, with held dice in brackets.
func renderDice(snap domain.Snapshot) string {
	held := make(map[int]bool, len(snap.Held))
	for _, i := range snap.Held {
		held[i] = true
	}

	parts := make([]string, 0, snap.ActiveDice)
	for i := 0; i < snap.ActiveDice; i++ {
		face := "-"
		if v := snap.Dice[i]; v != 0 {
			face = strconv.Itoa(v)
		}
		if held[i] {
			parts = append(parts, fmt.Sprintf("%d:[%s]", i+1, face))
		} else {
			parts = append(parts, fmt.Sprintf("%d:%s", i+1, face))
		}
	}
	return strings.Join(parts, " ")
}

type errUsage string

func (e errUsage) Error() string { return "usage: " + string(e) }
