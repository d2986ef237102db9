package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/craps/craps"
)

// CommandKind is what a line of input asks the table to do
type CommandKind int

const (
	CommandRoll CommandKind = iota
	CommandBet
	CommandOdds
	CommandClear
	CommandHelp
	CommandQuit
)

// Command is a parsed line of player input
type Command struct {
	Kind     CommandKind
	Category craps.BetCategory
	Number   int
	Amount   craps.Money
	Dice     []int // optional fixed faces for roll
}

var ErrUnknownCommand = errors.New("unknown command")

const usage = `Commands:
  bet <category> <amount>   place a wager, e.g. "bet pass 10", "bet place6 12"
  odds <number> <amount>    back a pass, don't pass, come or don't come bet
  roll [d1 d2]              throw the dice (Enter on its own rolls too)
  clear                     take down every removable bet
  help                      show the rules
  quit                      leave the table`

// ParseCommand reads one line of input. An empty line is a roll.
func ParseCommand(input string) (Command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{Kind: CommandRoll}, nil
	}

	verb, args := fields[0], fields[1:]
	switch verb {
	case "roll", "r":
		switch len(args) {
		case 0:
			return Command{Kind: CommandRoll}, nil
		case 2:
			d1, err1 := strconv.Atoi(args[0])
			d2, err2 := strconv.Atoi(args[1])
			if err1 != nil || err2 != nil {
				return Command{}, fmt.Errorf("roll: dice must be numbers, got %q %q", args[0], args[1])
			}
			if _, err := craps.NewRoll(d1, d2); err != nil {
				return Command{}, fmt.Errorf("roll: %w", err)
			}
			return Command{Kind: CommandRoll, Dice: []int{d1, d2}}, nil
		default:
			return Command{}, errors.New("usage: roll [d1 d2]")
		}

	case "bet", "b":
		if len(args) != 2 {
			return Command{}, errors.New("usage: bet <category> <amount>")
		}
		category, err := craps.ParseCategory(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("bet: %w", err)
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return Command{}, fmt.Errorf("bet: %w", err)
		}
		return Command{Kind: CommandBet, Category: category, Amount: amount}, nil

	case "odds", "o":
		if len(args) != 2 {
			return Command{}, errors.New("usage: odds <number> <amount>")
		}
		number, err := strconv.Atoi(args[0])
		if err != nil || !craps.IsPointNumber(number) {
			return Command{}, fmt.Errorf("odds: %q is not a point number", args[0])
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return Command{}, fmt.Errorf("odds: %w", err)
		}
		return Command{Kind: CommandOdds, Number: number, Amount: amount}, nil

	case "clear", "takedown":
		return Command{Kind: CommandClear}, nil
	case "help", "h", "?":
		return Command{Kind: CommandHelp}, nil
	case "quit", "q", "exit":
		return Command{Kind: CommandQuit}, nil
	}

	return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, verb)
}

func parseAmount(s string) (craps.Money, error) {
	n, err := strconv.ParseInt(strings.TrimPrefix(s, "$"), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return craps.Money(n), nil
}
