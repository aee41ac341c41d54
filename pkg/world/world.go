// Package world implements the village text adventure served by the development server.
package world

import (
	"fmt"
	"sort"
	"strings"
)

type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return d
}

type Room struct {
	Name        string
	Description string
	Exits       map[Direction]string
	Items       []string
	Containers  []string
}

type Item struct {
	Name        string
	Description string
	Takeable    bool
}

type Container struct {
	Name        string
	Description string
	Locked      bool
	Open        bool
	// Key is the item that unlocks the container.
	Key   string
	Items []string
}

// World is a single play-through. It is not safe for concurrent use.
type World struct {
	rooms      map[string]*Room
	items      map[string]*Item
	containers map[string]*Container
	player     string
	inventory  []string
	goal       string
	won        bool
	lastObs    string
}

// NewVillage builds the 3x3 village with the player in House 1.
// The treasure sits in a locked well in the Central Square; the rope in the
// Forest unlocks it. Holding the treasure wins the game.
func NewVillage() *World {
	w := &World{
		rooms:      map[string]*Room{},
		items:      map[string]*Item{},
		containers: map[string]*Container{},
	}

	grid := [3][3]*Room{
		{
			w.addRoom("Shop", "A store with various goods on display."),
			w.addRoom("Village Committee", "A place where villagers gather to discuss community affairs."),
			w.addRoom("Hospital", "Provides medical services to villagers."),
		},
		{
			w.addRoom("School", "Where children receive their education."),
			w.addRoom("Central Square", "The heart of the village, with an ancient well in the center."),
			w.addRoom("Police Station", "Responsible for maintaining village security."),
		},
		{
			w.addRoom("House 1", "A typical resident's home."),
			w.addRoom("House 2", "Another resident's home."),
			w.addRoom("Forest", "A forest dangerous for villagers."),
		},
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if col < 2 {
				connect(grid[row][col], East, grid[row][col+1])
			}
			if row < 2 {
				connect(grid[row][col], South, grid[row+1][col])
			}
		}
	}

	w.items["treasure"] = &Item{Name: "treasure", Description: "A mysterious ancient treasure!", Takeable: true}
	w.items["rope"] = &Item{Name: "rope", Description: "A strong rope that could be useful.", Takeable: true}

	w.containers["well"] = &Container{
		Name:        "well",
		Description: "An ancient well. You might need a rope to explore it.",
		Locked:      true,
		Key:         "rope",
		Items:       []string{"treasure"},
	}
	w.rooms["Central Square"].Containers = []string{"well"}
	w.rooms["Forest"].Items = []string{"rope"}

	w.player = "House 1"
	w.goal = "treasure"
	w.lastObs = w.describe()
	return w
}

func (w *World) addRoom(name, description string) *Room {
	r := &Room{Name: name, Description: description, Exits: map[Direction]string{}}
	w.rooms[name] = r
	return r
}

func connect(from *Room, dir Direction, to *Room) {
	from.Exits[dir] = to.Name
	to.Exits[dir.Opposite()] = from.Name
}

// Location returns the name of the room the player is in.
func (w *World) Location() string {
	return w.player
}

// Won reports whether the player holds the goal item.
func (w *World) Won() bool {
	return w.won
}

// Observation returns the text produced by the last command, or the opening
// room description for a fresh world.
func (w *World) Observation() string {
	return w.lastObs
}

// Inventory describes what the player is carrying.
func (w *World) Inventory() string {
	if len(w.inventory) == 0 {
		return "You are carrying nothing."
	}
	return fmt.Sprintf("You are carrying: %s.", listItems(w.inventory))
}

// Room returns a room by name.
func (w *World) Room(name string) (*Room, bool) {
	r, ok := w.rooms[name]
	return r, ok
}

func (w *World) currentRoom() *Room {
	return w.rooms[w.player]
}

func (w *World) describe() string {
	room := w.currentRoom()
	var b strings.Builder
	fmt.Fprintf(&b, "-= %s =-\n%s", room.Name, room.Description)

	var things []string
	things = append(things, room.Containers...)
	things = append(things, room.Items...)
	if len(things) > 0 {
		fmt.Fprintf(&b, "\nYou see: %s.", listItems(things))
	}

	exits := make([]string, 0, len(room.Exits))
	for dir := range room.Exits {
		exits = append(exits, string(dir))
	}
	sort.Strings(exits)
	fmt.Fprintf(&b, "\nExits: %s.", strings.Join(exits, ", "))
	return b.String()
}

func (w *World) holding(item string) bool {
	return indexOf(w.inventory, item) >= 0
}

func listItems(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = "a " + n
	}
	return strings.Join(out, ", ")
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func remove(list []string, s string) []string {
	i := indexOf(list, s)
	if i < 0 {
		return list
	}
	return append(list[:i:i], list[i+1:]...)
}
