package output

import (
	"encoding/json"
	"io"
)

// Scores holds the evaluation of a position, each in [0,1] with 1 favouring
// White.
type Scores struct {
	Score         float64 `json:"score"`
	PositionScore float64 `json:"positionScore"`
	PieceScore    float64 `json:"pieceScore"`
}

// Castling reports the castling rights of both sides.
type Castling struct {
	WhiteKingside  bool `json:"whiteKingside"`
	WhiteQueenside bool `json:"whiteQueenside"`
	BlackKingside  bool `json:"blackKingside"`
	BlackQueenside bool `json:"blackQueenside"`
}

// Snapshot is the state of a game emitted after every committed move,
// undo, redo or load.
type Snapshot struct {
	GameID         string   `json:"gameId"`
	FEN            string   `json:"fen"`
	PGN            string   `json:"pgn"`
	ToMove         string   `json:"toMove"`
	FullmoveNumber int      `json:"fullmoveNumber"`
	HalfmoveClock  int      `json:"halfmoveClock"`
	Castling       Castling `json:"castling"`
	EnPassant      string   `json:"enPassant"`
	LastMove       string   `json:"lastMove,omitempty"`
	LastMoveUCI    string   `json:"lastMoveUci,omitempty"`
	Ply            int      `json:"ply"`
	TotalMoves     int      `json:"totalMoves"`

	CanClaimDraw bool   `json:"canClaimDraw"`
	IsDraw       bool   `json:"isDraw"`
	WhiteInCheck bool   `json:"whiteInCheck"`
	BlackInCheck bool   `json:"blackInCheck"`
	Checkmate    bool   `json:"checkmate"`
	Stalemate    bool   `json:"stalemate"`
	Result       string `json:"result"`

	Scores *Scores `json:"scores,omitempty"`
}

// JSONOutput is the top-level structure written by a batching JSONWriter.
type JSONOutput struct {
	Games []*Snapshot `json:"games"`
}

// WriteJSON encodes v to w, indented with two spaces when indent is set.
func WriteJSON(w io.Writer, v interface{}, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
