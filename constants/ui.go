package constants

// Screen layout, 1-based terminal coordinates
const (
	// BoardLeft is the column of board column 0
	BoardLeft = 2
	// BoardTop is the row of board row 0
	BoardTop = 2

	// CellWidth is the number of characters per board cell
	CellWidth = 2

	// SidebarCol is the first column of the info block
	SidebarCol = BoardLeft + BoardCols*CellWidth + 3

	// PreviewRows and PreviewWidth size the next-piece area
	PreviewRows  = 4
	PreviewWidth = 8
)

// Sidebar rows relative to BoardTop
const (
	SidebarTitleRow   = 0
	SidebarScoreRow   = 2
	SidebarLinesRow   = 5
	SidebarLevelRow   = 8
	SidebarNextRow    = 11
	SidebarPreviewRow = 12
	SidebarKeysRow    = 17
)

// Glyphs
const (
	GlyphCell  = "[]"
	GlyphEmpty = "  "
)

// KeyLegend lines shown under the KEYS header
var KeyLegend = [...]string{
	"</>  MOVE",
	"^    ROT",
	"v    DROP",
	"Q    QUIT",
}
