// Package command provides the command registry, parser, built-in command
// definitions, and the dispatcher that turns player input into match intents.
package command

// Categories for organizing commands.
const (
	CategoryMovement = "movement"
	CategoryWorld    = "world"
	CategoryCombat   = "combat"
	CategorySystem   = "system"
)

// Handler identifiers mapping commands to dispatcher functions.
const (
	HandlerHelp       = "help"
	HandlerLook       = "look"
	HandlerDirections = "directions"
	HandlerWait       = "wait"
	HandlerGo         = "go"
	HandlerMove       = "move"
	HandlerAttack     = "attack"
	HandlerUse        = "use"
	HandlerSkills     = "skills"
	HandlerStatus     = "status"
	HandlerQuit       = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument syntax after the command name.
	Usage string
	// Help is the help text displayed to players.
	Help string
	// Category groups the command (movement, world, combat, system).
	Category string
	// Handler maps to the dispatcher function.
	Handler string
}

// BuiltinCommands returns all built-in commands, in help order.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "help", Aliases: []string{"h", "?"}, Help: "Prints this help message.", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "look", Aliases: []string{"l"}, Help: "Look around you. Describe the place and who is here.", Category: CategoryWorld, Handler: HandlerLook},
		{Name: "directions", Aliases: []string{"dir", "d"}, Help: "List the destinations you can reach from here.", Category: CategoryWorld, Handler: HandlerDirections},
		{Name: "wait", Aliases: []string{"w"}, Help: "Do nothing until next turn.", Category: CategoryCombat, Handler: HandlerWait},
		{Name: "go", Aliases: []string{"g"}, Usage: "<direction>", Help: "Walk in a given direction. Type \"directions\" to see where you can go. Example: go red (go toward the red base)", Category: CategoryMovement, Handler: HandlerGo},
		{Name: "move", Aliases: []string{"m"}, Usage: "[front|back]", Help: "Move your character to the front or back row.", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "attack", Aliases: []string{"a"}, Usage: "<character-number>", Help: "Attack the enemy number n, where n is the number you can see when you run the command look.", Category: CategoryCombat, Handler: HandlerAttack},
		{Name: "use", Aliases: []string{"u"}, Usage: "<skill-name> [<character-number>|front|back]", Help: "Use a skill. Some skills need a character number or a row in parameter. Example: use bomb front", Category: CategoryCombat, Handler: HandlerUse},
		{Name: "skills", Aliases: []string{"s"}, Help: "List your skills, their mana cost and cooldown.", Category: CategoryCombat, Handler: HandlerSkills},
		{Name: "status", Aliases: []string{"st"}, Help: "Show your level, xp, hp and mana.", Category: CategoryWorld, Handler: HandlerStatus},
		{Name: "quit", Aliases: []string{"exit", "q"}, Help: "Leave the game.", Category: CategorySystem, Handler: HandlerQuit},
	}
}
