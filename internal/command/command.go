package command

// CommandType tags the variant of a Command.
type CommandType string

const (
	TypeAction     CommandType = "action"
	TypeNavigation CommandType = "navigation"
	TypeStockQuery CommandType = "stock_query"
	TypeUnknown    CommandType = "unknown"
)

type SystemAction string

const (
	ActionClearChat    SystemAction = "clear_chat"
	ActionRepeatLast   SystemAction = "repeat_last"
	ActionStopSpeaking SystemAction = "stop_speaking"
	ActionHelp         SystemAction = "help"
)

type Destination string

const (
	DestinationChat      Destination = "chat"
	DestinationAlerts    Destination = "alerts"
	DestinationEducation Destination = "education"
	DestinationWatchlist Destination = "watchlist"
)

type AnalysisType string

const (
	AnalysisFundamental AnalysisType = "fundamental"
	AnalysisTechnical   AnalysisType = "technical"
	AnalysisSentiment   AnalysisType = "sentiment"
	AnalysisCombined    AnalysisType = "combined"
)

type QueryAction string

const (
	QueryAnalyze QueryAction = "analyze"
	QueryPrice   QueryAction = "price"
	QueryNews    QueryAction = "news"
	QueryCompare QueryAction = "compare"
)

const (
	intentNavigate   = "navigate"
	intentStockQuery = "stock_query"
	intentUnknown    = "unknown"
)

// Meta is carried by every command. Confidence and OriginalText are echoed
// from the caller unmodified.
type Meta struct {
	Intent       string
	Confidence   float64
	OriginalText string
}

// Command is one classified utterance. The set of implementations is closed.
type Command interface {
	Type() CommandType
	Metadata() Meta
	sealed()
}

type ActionCommand struct {
	Meta
	Action SystemAction
}

type NavigationCommand struct {
	Meta
	Destination Destination
}

// StockQuery holds the extracted entities of a stock query. Empty fields are absent.
type StockQuery struct {
	Symbol       string
	Company      string
	AnalysisType AnalysisType
	Action       QueryAction
}

type StockQueryCommand struct {
	Meta
	Query StockQuery
}

type UnknownCommand struct {
	Meta
}

func (ActionCommand) Type() CommandType     { return TypeAction }
func (NavigationCommand) Type() CommandType { return TypeNavigation }
func (StockQueryCommand) Type() CommandType { return TypeStockQuery }
func (UnknownCommand) Type() CommandType    { return TypeUnknown }

func (c ActionCommand) Metadata() Meta     { return c.Meta }
func (c NavigationCommand) Metadata() Meta { return c.Meta }
func (c StockQueryCommand) Metadata() Meta { return c.Meta }
func (c UnknownCommand) Metadata() Meta    { return c.Meta }

func (ActionCommand) sealed()     {}
func (NavigationCommand) sealed() {}
func (StockQueryCommand) sealed() {}
func (UnknownCommand) sealed()    {}
