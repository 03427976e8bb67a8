package input

// Command is a decoded player action
type Command uint8

const (
	CommandNone Command = iota
	CommandLeft
	CommandRight
	CommandRotate // clockwise
	CommandDrop   // hard drop, locks on the next fall expiry
	CommandQuit
)

var commandNames = [...]string{
	CommandNone:   "none",
	CommandLeft:   "left",
	CommandRight:  "right",
	CommandRotate: "rotate",
	CommandDrop:   "drop",
	CommandQuit:   "quit",
}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return "unknown"
}

// Moves reports whether the command changes the active piece
func (c Command) Moves() bool {
	return c >= CommandLeft && c <= CommandDrop
}

// Control bytes
const (
	byteEscape = 0x1b
	byteCSI    = '['
	dataMask   = 0x7f
)

// letterTable maps single uppercase keys
var letterTable = map[byte]Command{
	'A': CommandLeft,
	'D': CommandRight,
	'W': CommandRotate,
	'S': CommandDrop,
	'Q': CommandQuit,
}

// cursorTable maps the final byte of ESC [ x cursor-key sequences
var cursorTable = map[byte]Command{
	'A': CommandRotate, // up
	'B': CommandDrop,   // down
	'C': CommandRight,
	'D': CommandLeft,
}
