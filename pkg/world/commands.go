package world

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingObject  = errors.New("missing object")
)

type Verb string

const (
	VerbLook      Verb = "look"
	VerbGo        Verb = "go"
	VerbTake      Verb = "take"
	VerbUnlock    Verb = "unlock"
	VerbOpen      Verb = "open"
	VerbExamine   Verb = "examine"
	VerbInventory Verb = "inventory"
	VerbHelp      Verb = "help"
)

// Command is a parsed player instruction, e.g. "take treasure from well" is
// {Verb: take, Object: treasure, Target: well}.
type Command struct {
	Verb   Verb
	Object string
	Target string
}

var directionAliases = map[string]Direction{
	"n": North, "north": North,
	"s": South, "south": South,
	"e": East, "east": East,
	"w": West, "west": West,
}

var verbAliases = map[string]Verb{
	"look": VerbLook, "l": VerbLook,
	"go": VerbGo, "walk": VerbGo, "move": VerbGo,
	"take": VerbTake, "get": VerbTake, "grab": VerbTake,
	"unlock": VerbUnlock, "open": VerbOpen,
	"examine": VerbExamine, "x": VerbExamine, "inspect": VerbExamine,
	"inventory": VerbInventory, "i": VerbInventory, "inv": VerbInventory,
	"help": VerbHelp,
}

// Parse turns free text into a Command.
func Parse(input string) (Command, error) {
	words := tokenize(input)
	if len(words) == 0 {
		return Command{}, fmt.Errorf("%w: empty input", ErrUnknownCommand)
	}

	if dir, ok := directionAliases[words[0]]; ok && len(words) == 1 {
		return Command{Verb: VerbGo, Object: string(dir)}, nil
	}

	verb, ok := verbAliases[words[0]]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, words[0])
	}
	rest := words[1:]

	switch verb {
	case VerbLook, VerbInventory, VerbHelp:
		return Command{Verb: verb}, nil
	case VerbGo:
		if len(rest) == 0 {
			return Command{}, fmt.Errorf("%w: go where?", ErrMissingObject)
		}
		dir, ok := directionAliases[rest[0]]
		if !ok {
			return Command{}, fmt.Errorf("%w: %q is not a direction", ErrUnknownCommand, rest[0])
		}
		return Command{Verb: VerbGo, Object: string(dir)}, nil
	case VerbTake:
		object, target := splitOn(rest, "from")
		if object == "" {
			return Command{}, fmt.Errorf("%w: take what?", ErrMissingObject)
		}
		return Command{Verb: verb, Object: object, Target: target}, nil
	case VerbUnlock:
		object, target := splitOn(rest, "with")
		if object == "" || target == "" {
			return Command{}, fmt.Errorf("%w: unlock what with what?", ErrMissingObject)
		}
		return Command{Verb: verb, Object: object, Target: target}, nil
	default:
		if len(rest) == 0 {
			return Command{}, fmt.Errorf("%w: %s what?", ErrMissingObject, verb)
		}
		return Command{Verb: verb, Object: strings.Join(rest, " ")}, nil
	}
}

func tokenize(input string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(input)) {
		w = strings.Trim(w, ".,!?")
		switch w {
		case "", "the", "a", "an", "to":
			continue
		}
		words = append(words, w)
	}
	return words
}

func splitOn(words []string, sep string) (string, string) {
	i := indexOf(words, sep)
	if i < 0 {
		return strings.Join(words, " "), ""
	}
	return strings.Join(words[:i], " "), strings.Join(words[i+1:], " ")
}

const helpText = "Try: look, go <north|south|east|west>, take <item> [from <container>], " +
	"unlock <container> with <item>, open <container>, examine <thing>, inventory."

// Step runs one line of player input and returns the game's reply.
func (w *World) Step(input string) string {
	if w.won {
		w.lastObs = "The game is over. Reset to play again."
		return w.lastObs
	}

	cmd, err := Parse(input)
	if err != nil {
		if errors.Is(err, ErrMissingObject) {
			w.lastObs = capitalize(strings.TrimPrefix(err.Error(), ErrMissingObject.Error()+": "))
		} else {
			w.lastObs = "I don't understand that. " + helpText
		}
		return w.lastObs
	}

	w.lastObs = w.execute(cmd)
	return w.lastObs
}

func (w *World) execute(cmd Command) string {
	switch cmd.Verb {
	case VerbLook:
		return w.describe()
	case VerbHelp:
		return helpText
	case VerbInventory:
		return w.Inventory()
	case VerbGo:
		return w.move(Direction(cmd.Object))
	case VerbTake:
		if cmd.Target != "" {
			return w.takeFrom(cmd.Object, cmd.Target)
		}
		return w.take(cmd.Object)
	case VerbUnlock:
		return w.unlock(cmd.Object, cmd.Target)
	case VerbOpen:
		return w.open(cmd.Object)
	case VerbExamine:
		return w.examine(cmd.Object)
	}
	return "I don't understand that. " + helpText
}

func (w *World) move(dir Direction) string {
	next, ok := w.currentRoom().Exits[dir]
	if !ok {
		return "You can't go that way."
	}
	w.player = next
	return w.describe()
}

func (w *World) take(name string) string {
	room := w.currentRoom()
	if indexOf(room.Items, name) < 0 {
		if w.holding(name) {
			return fmt.Sprintf("You already have the %s.", name)
		}
		for _, c := range room.Containers {
			if indexOf(w.containers[c].Items, name) >= 0 {
				return fmt.Sprintf("The %s is in the %s.", name, c)
			}
		}
		return fmt.Sprintf("You don't see any %s here.", name)
	}
	if item, ok := w.items[name]; !ok || !item.Takeable {
		return fmt.Sprintf("You can't take the %s.", name)
	}
	room.Items = remove(room.Items, name)
	return w.pickUp(name)
}

func (w *World) takeFrom(name, containerName string) string {
	c, msg := w.reachableContainer(containerName)
	if c == nil {
		return msg
	}
	if !c.Open {
		return fmt.Sprintf("The %s is closed.", c.Name)
	}
	if indexOf(c.Items, name) < 0 {
		return fmt.Sprintf("There is no %s in the %s.", name, c.Name)
	}
	c.Items = remove(c.Items, name)
	return w.pickUp(name)
}

func (w *World) pickUp(name string) string {
	w.inventory = append(w.inventory, name)
	reply := fmt.Sprintf("You take the %s.", name)
	if name == w.goal {
		w.won = true
		reply += " *** You have won! ***"
	}
	return reply
}

func (w *World) unlock(containerName, key string) string {
	c, msg := w.reachableContainer(containerName)
	if c == nil {
		return msg
	}
	if !w.holding(key) {
		return fmt.Sprintf("You don't have a %s.", key)
	}
	if !c.Locked {
		return fmt.Sprintf("The %s is already unlocked.", c.Name)
	}
	if c.Key != key {
		return fmt.Sprintf("The %s doesn't fit the %s.", key, c.Name)
	}
	c.Locked = false
	return fmt.Sprintf("You unlock the %s with the %s.", c.Name, key)
}

func (w *World) open(containerName string) string {
	c, msg := w.reachableContainer(containerName)
	if c == nil {
		return msg
	}
	if c.Locked {
		return fmt.Sprintf("The %s is locked.", c.Name)
	}
	if c.Open {
		return fmt.Sprintf("The %s is already open.", c.Name)
	}
	c.Open = true
	if len(c.Items) == 0 {
		return fmt.Sprintf("You open the %s. It is empty.", c.Name)
	}
	return fmt.Sprintf("You open the %s, revealing %s.", c.Name, listItems(c.Items))
}

func (w *World) examine(name string) string {
	if c, ok := w.containers[name]; ok && indexOf(w.currentRoom().Containers, name) >= 0 {
		return c.Description
	}
	if item, ok := w.items[name]; ok && (w.holding(name) || indexOf(w.currentRoom().Items, name) >= 0) {
		return item.Description
	}
	return fmt.Sprintf("You don't see any %s here.", name)
}

func (w *World) reachableContainer(name string) (*Container, string) {
	c, ok := w.containers[name]
	if !ok || indexOf(w.currentRoom().Containers, name) < 0 {
		return nil, fmt.Sprintf("You don't see any %s here.", name)
	}
	return c, ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
