// Package board declares the parameters of the session board and renders a
// display snapshot from them.
package board

import "atelier/internal/param"

// Main content modes.
const (
	ContentQOTD  = "qotd"
	ContentTimer = "timer"
	ContentText  = "text"
)

// TimeToken in a pill is replaced by the ambient clock.
const TimeToken = ":time:"

// DefaultNotesSize is the notes panel size when none is set. The display
// layer understands sizes 1 to 3.
const DefaultNotesSize = 3

// Corner groups the notes panel parameters of one board corner.
type Corner struct {
	Name  string
	Notes param.Param[string]
	Size  param.Param[int]
	Show  param.Param[bool]
}

func newCorner(name, prefix, title string) Corner {
	return Corner{
		Name:  name,
		Notes: param.String(prefix+"Notes", ""),
		Size:  param.Int(prefix+"NotesSize", DefaultNotesSize),
		Show:  param.Bool("show"+title+"Notes", true),
	}
}

var (
	SelectedPreset      = param.String("preset", "")
	SelectedPresetStage = param.String("presetStage", "")

	TopLeftText     = param.String("topLeftText", TimeToken)
	TopRightText    = param.String("topRightText", "")
	BottomLeftText  = param.String("bottomLeftText", "")
	BottomRightText = param.String("bottomRightText", "")

	MainContentState = param.Enum("mainContentState", ContentQOTD, ContentQOTD, ContentTimer, ContentText)

	QOTD         = param.String("qotd", "")
	QOTDLocation = param.String("qotdLocation", "Vancouver, BC, Canada")

	CountdownTitle  = param.String("countdownTitle", "Break Starts")
	CountdownToTime = param.Time("countdownToTime", param.TimeOfDay{Hour: 13, Minute: 20})

	CenterText = param.String("centerText", "")

	TopLeft     = newCorner("top-left", "topLeft", "TopLeft")
	TopRight    = newCorner("top-right", "topRight", "TopRight")
	BottomLeft  = newCorner("bottom-left", "bottomLeft", "BottomLeft")
	BottomRight = newCorner("bottom-right", "bottomRight", "BottomRight")
)

// Corners lists the notes panels in display order.
var Corners = []Corner{TopLeft, TopRight, BottomLeft, BottomRight}

// Table is the full set of session board parameters.
var Table = param.NewTable(
	SelectedPreset, SelectedPresetStage,
	TopLeftText, TopRightText, BottomLeftText, BottomRightText,
	MainContentState,
	QOTD, QOTDLocation,
	CountdownTitle, CountdownToTime,
	CenterText,
	TopLeft.Notes, TopLeft.Size, TopLeft.Show,
	TopRight.Notes, TopRight.Size, TopRight.Show,
	BottomLeft.Notes, BottomLeft.Size, BottomLeft.Show,
	BottomRight.Notes, BottomRight.Size, BottomRight.Show,
)

// Open opens a board store over rawURL.
func Open(rawURL string, mode param.Mode, history param.History) (*param.Store, error) {
	return param.NewStore(Table, rawURL, mode, history)
}
