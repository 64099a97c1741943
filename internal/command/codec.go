package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownCommandType = errors.New("unknown command type")
	ErrInvalidCommand     = errors.New("invalid command parameters")
)

var (
	knownActions      = []SystemAction{ActionClearChat, ActionRepeatLast, ActionStopSpeaking, ActionHelp}
	knownDestinations = []Destination{DestinationChat, DestinationAlerts, DestinationEducation, DestinationWatchlist}
	knownAnalysis     = []AnalysisType{AnalysisFundamental, AnalysisTechnical, AnalysisSentiment, AnalysisCombined}
	knownQueryActions = []QueryAction{QueryAnalyze, QueryPrice, QueryNews, QueryCompare}
)

type wireCommand struct {
	Type         CommandType     `json:"type"`
	Intent       string          `json:"intent"`
	Confidence   float64         `json:"confidence"`
	OriginalText string          `json:"originalText"`
	Parameters   json.RawMessage `json:"parameters"`
}

type actionParams struct {
	Action SystemAction `json:"action"`
}

type navigationParams struct {
	Destination Destination `json:"destination"`
}

type stockQueryParams struct {
	Symbol       string       `json:"symbol,omitempty"`
	Company      string       `json:"company,omitempty"`
	AnalysisType AnalysisType `json:"analysisType,omitempty"`
	Action       QueryAction  `json:"action,omitempty"`
}

func encode(typ CommandType, meta Meta, params any) ([]byte, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode %s parameters: %w", typ, err)
	}
	return json.Marshal(wireCommand{
		Type:         typ,
		Intent:       meta.Intent,
		Confidence:   meta.Confidence,
		OriginalText: meta.OriginalText,
		Parameters:   raw,
	})
}

func (c ActionCommand) MarshalJSON() ([]byte, error) {
	return encode(TypeAction, c.Meta, actionParams{Action: c.Action})
}

func (c NavigationCommand) MarshalJSON() ([]byte, error) {
	return encode(TypeNavigation, c.Meta, navigationParams{Destination: c.Destination})
}

func (c StockQueryCommand) MarshalJSON() ([]byte, error) {
	return encode(TypeStockQuery, c.Meta, stockQueryParams{
		Symbol:       c.Query.Symbol,
		Company:      c.Query.Company,
		AnalysisType: c.Query.AnalysisType,
		Action:       c.Query.Action,
	})
}

func (c UnknownCommand) MarshalJSON() ([]byte, error) {
	return encode(TypeUnknown, c.Meta, struct{}{})
}

// Decode parses the wire form produced by the MarshalJSON methods. Enum values
// outside their closed sets, and stock queries carrying no entity at all, are
// rejected with ErrInvalidCommand.
func Decode(data []byte) (Command, error) {
	var w wireCommand
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}
	meta := Meta{Intent: w.Intent, Confidence: w.Confidence, OriginalText: w.OriginalText}
	params := w.Parameters
	if len(params) == 0 || string(params) == "null" {
		params = json.RawMessage(`{}`)
	}

	switch w.Type {
	case TypeAction:
		var p actionParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("decode action parameters: %w", err)
		}
		if !slices.Contains(knownActions, p.Action) {
			return nil, fmt.Errorf("%w: action %q", ErrInvalidCommand, p.Action)
		}
		return ActionCommand{Meta: meta, Action: p.Action}, nil
	case TypeNavigation:
		var p navigationParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("decode navigation parameters: %w", err)
		}
		if !slices.Contains(knownDestinations, p.Destination) {
			return nil, fmt.Errorf("%w: destination %q", ErrInvalidCommand, p.Destination)
		}
		return NavigationCommand{Meta: meta, Destination: p.Destination}, nil
	case TypeStockQuery:
		var p stockQueryParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("decode stock_query parameters: %w", err)
		}
		if err := validateStockQuery(p); err != nil {
			return nil, err
		}
		return StockQueryCommand{Meta: meta, Query: StockQuery{
			Symbol:       p.Symbol,
			Company:      p.Company,
			AnalysisType: p.AnalysisType,
			Action:       p.Action,
		}}, nil
	case TypeUnknown:
		return UnknownCommand{Meta: meta}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommandType, w.Type)
	}
}

func validateStockQuery(p stockQueryParams) error {
	if p.AnalysisType != "" && !slices.Contains(knownAnalysis, p.AnalysisType) {
		return fmt.Errorf("%w: analysisType %q", ErrInvalidCommand, p.AnalysisType)
	}
	if p.Action != "" && !slices.Contains(knownQueryActions, p.Action) {
		return fmt.Errorf("%w: stock action %q", ErrInvalidCommand, p.Action)
	}
	if p.Symbol == "" && p.Company == "" && p.AnalysisType == "" && p.Action == "" {
		return fmt.Errorf("%w: stock_query without symbol, company, analysisType or action", ErrInvalidCommand)
	}
	return nil
}
