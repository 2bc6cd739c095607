package caption

// Narration states for lines and words relative to playback position.

type LineState int

const (
	LineUnspoken LineState = iota
	LineSpeaking
	LineSpoken
)

func (ls LineState) String() string {
	switch ls {
	case LineUnspoken:
		return "unspoken"
	case LineSpeaking:
		return "speaking"
	case LineSpoken:
		return "spoken"
	default:
		return "invalid"
	}
}

// MixedWordStates reports whether words of a line can be in different word
// states while the line is in this state. Only a line being narrated mixes:
// words ahead of the narration cursor are still unspoken while finished
// ones are already spoken.
func (ls LineState) MixedWordStates() bool {
	return ls == LineSpeaking
}

type WordState int

const (
	WordUnspoken WordState = iota
	WordSpeaking
	WordSpoken
)

func (ws WordState) String() string {
	switch ws {
	case WordUnspoken:
		return "unspoken"
	case WordSpeaking:
		return "speaking"
	case WordSpoken:
		return "spoken"
	default:
		return "invalid"
	}
}

// StatePair tags a word clip with the narration phase it is rendered for.
// Out of the nine combinations only five can occur on screen, see Phases.
type StatePair struct {
	Line LineState
	Word WordState
}

// Phases lists the valid state combinations in temporal order. For a single
// word the phases cover, respectively: segment start to line start, line
// start to word start, the word being narrated, word end to line end, and
// line end to segment end.
var Phases = [5]StatePair{
	{Line: LineUnspoken, Word: WordUnspoken},
	{Line: LineSpeaking, Word: WordUnspoken},
	{Line: LineSpeaking, Word: WordSpeaking},
	{Line: LineSpeaking, Word: WordSpoken},
	{Line: LineSpoken, Word: WordSpoken},
}

func (sp StatePair) Valid() bool {
	for _, p := range Phases {
		if sp == p {
			return true
		}
	}
	return false
}

func (sp StatePair) String() string {
	return sp.Line.String() + "/" + sp.Word.String()
}

// Window returns the interval on the master timeline during which a word is
// displayed in this state combination, given the timings of the word and of
// its containing line and segment. The interval is empty for invalid pairs
// and for phases the timings leave no room for.
func (sp StatePair) Window(segment, line, word TimeFragment) TimeFragment {
	switch sp {
	case StatePair{Line: LineUnspoken, Word: WordUnspoken}:
		return TimeFragment{Start: segment.Start, End: line.Start}
	case StatePair{Line: LineSpeaking, Word: WordUnspoken}:
		return TimeFragment{Start: line.Start, End: word.Start}
	case StatePair{Line: LineSpeaking, Word: WordSpeaking}:
		return TimeFragment{Start: word.Start, End: word.End}
	case StatePair{Line: LineSpeaking, Word: WordSpoken}:
		return TimeFragment{Start: word.End, End: line.End}
	case StatePair{Line: LineSpoken, Word: WordSpoken}:
		return TimeFragment{Start: line.End, End: segment.End}
	default:
		return TimeFragment{}
	}
}
