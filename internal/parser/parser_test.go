package parser

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/lgbarn/checkmate-go/internal/config"
	cherrors "github.com/lgbarn/checkmate-go/internal/errors"
)

func quietConfig() *config.Config {
	return config.NewConfigBuilder().WithLogFile(io.Discard).Build()
}

// parseTestGame is a helper that parses a PGN string and returns the game.
func parseTestGame(t *testing.T, pgn string) *Game {
	t.Helper()
	game, err := ParseString(pgn, quietConfig())
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	return game
}

func moveTexts(g *Game) []string {
	texts := make([]string, len(g.Moves))
	for i, m := range g.Moves {
		texts[i] = m.Text
	}
	return texts
}

func TestParseSimpleGame(t *testing.T) {
	pgn := `[Event "Test"]
[Site "?"]
[Date "2024.01.01"]
[Round "1"]
[White "Player1"]
[Black "Player2"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 1-0
`

	game := parseTestGame(t, pgn)

	if got := game.Tags.Get("Event"); got != "Test" {
		t.Errorf("Event = %q, want %q", got, "Test")
	}
	if got := game.Tags.Get("White"); got != "Player1" {
		t.Errorf("White = %q, want %q", got, "Player1")
	}
	if count := game.PlyCount(); count != 6 {
		t.Errorf("PlyCount = %d, want 6", count)
	}
	if got := game.Moves[0].Text; got != "e4" {
		t.Errorf("First move = %q, want %q", got, "e4")
	}
	if game.Result != "1-0" {
		t.Errorf("Result = %q, want %q", game.Result, "1-0")
	}
	if game.StartLine != 1 {
		t.Errorf("StartLine = %d, want 1", game.StartLine)
	}
}

func TestParseScholarsMate(t *testing.T) {
	game := parseTestGame(t, "1.e4 e5 2.Bc4 Nc6 3.Qh5 Nf6?? 4.Qxf7# 1-0")

	want := []string{"e4", "e5", "Bc4", "Nc6", "Qh5", "Nf6", "Qxf7"}
	got := moveTexts(game)
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("moves = %v, want %v", got, want)
	}
	if nags := game.Moves[5].NAGs; len(nags) != 1 || nags[0] != "$4" {
		t.Errorf("Nf6 NAGs = %v, want [$4]", nags)
	}
	if !game.LastMove().Mate {
		t.Error("Qxf7 should carry the mate mark")
	}
	if got := game.Tags.Get("Result"); got != "1-0" {
		t.Errorf("Result tag = %q, want 1-0 taken from movetext", got)
	}
}

func TestParseWithComments(t *testing.T) {
	pgn := `[Event "Test"]
{Before the game}
1. e4 {Best by test} e5 ; rest of line
2. Nf3 {multi
line} Nc6 *
`

	game := parseTestGame(t, pgn)

	if len(game.Comments) != 1 || game.Comments[0] != "Before the game" {
		t.Errorf("game comments = %q", game.Comments)
	}
	if c := game.Moves[0].Comments; len(c) != 1 || c[0] != "Best by test" {
		t.Errorf("e4 comments = %q", c)
	}
	if c := game.Moves[1].Comments; len(c) != 1 || c[0] != "rest of line" {
		t.Errorf("e5 comments = %q", c)
	}
	if c := game.Moves[2].Comments; len(c) != 1 || c[0] != "multi\nline" {
		t.Errorf("Nf3 comments = %q", c)
	}
	if game.PlyCount() != 4 {
		t.Errorf("PlyCount = %d, want 4", game.PlyCount())
	}
}

func TestParseSkipsVariations(t *testing.T) {
	pgn := `1. e4 (1. d4 d5 (1... Nf6) 2. c4) 1... e5 (1... c5 {Sicilian}) 2. Nf3 *`

	game := parseTestGame(t, pgn)

	want := "e4 e5 Nf3"
	if got := strings.Join(moveTexts(game), " "); got != want {
		t.Errorf("moves = %q, want %q", got, want)
	}
}

func TestParseCastling(t *testing.T) {
	tests := []struct {
		name string
		pgn  string
		text string
	}{
		{"O-O", "1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. O-O *", "O-O"},
		{"O-O-O", "1. d4 d5 2. Nc3 Nc6 3. Bf4 Bf5 4. Qd2 Qd7 5. O-O-O *", "O-O-O"},
		{"0-0", "1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. 0-0 *", "0-0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := parseTestGame(t, tt.pgn)
			last := game.LastMove()
			if last.Text != tt.text || !last.IsCastle() {
				t.Errorf("last move = %q (castle %v), want castling %q", last.Text, last.IsCastle(), tt.text)
			}
		})
	}
}

func TestParseEnPassantSuffix(t *testing.T) {
	game := parseTestGame(t, "1. e4 a6 2. e5 d5 3. exd6 e.p. *")

	last := game.LastMove()
	if last.Text != "exd6" || !last.EnPassant {
		t.Errorf("last move = %+v, want exd6 marked en passant", last)
	}
	if game.PlyCount() != 5 {
		t.Errorf("PlyCount = %d, want 5", game.PlyCount())
	}
}

func TestParseMultipleGames(t *testing.T) {
	pgn := `[Event "Game 1"]
[Result "1-0"]

1. e4 e5 1-0

[Event "Game 2"]
[Result "0-1"]

1. d4 d5 0-1
`

	p := NewParser(strings.NewReader(pgn), quietConfig())
	games, err := p.ParseAllGames()
	if err != nil {
		t.Fatalf("ParseAllGames error: %v", err)
	}

	if len(games) != 2 {
		t.Fatalf("len(games) = %d, want 2", len(games))
	}
	if got := games[0].Tags.Get("Event"); got != "Game 1" {
		t.Errorf("games[0].Event = %q, want %q", got, "Game 1")
	}
	if got := games[1].Tags.Get("Event"); got != "Game 2" {
		t.Errorf("games[1].Event = %q, want %q", got, "Game 2")
	}
	if games[1].Result != "0-1" {
		t.Errorf("games[1].Result = %q, want 0-1", games[1].Result)
	}
}

func TestParseTagsOnly(t *testing.T) {
	game := parseTestGame(t, `[Event "Empty"]`)
	if game.PlyCount() != 0 || game.Tags.Get("Event") != "Empty" {
		t.Errorf("game = %+v", game)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		pgn   string
		field string
	}{
		{"empty input", "", "game"},
		{"tag without value", "[Event]\n1. e4 *", "tags"},
		{"unterminated tag string", "[Event \"Test]\n1. e4 *", "tags"},
		{"unknown move text", "1. e4 e5 2. Zf3 *", "movetext"},
		{"bad square", "1. e9 *", "movetext"},
		{"pawn to last rank without promotion", "1. e8 *", "movetext"},
		{"stray string", "1. e4 \"oops\" *", "movetext"},
		{"unterminated variation", "1. e4 (1. d4 d5", "variation"},
		{"null move", "1. e4 -- *", "movetext"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.pgn, quietConfig())
			if !errors.Is(err, cherrors.ErrInvalidPGN) {
				t.Fatalf("ParseString() error = %v, want ErrInvalidPGN", err)
			}
			var pe *cherrors.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not a *ParseError", err)
			}
			if pe.Field != tt.field {
				t.Errorf("ParseError.Field = %q, want %q", pe.Field, tt.field)
			}
		})
	}
}

func TestParseErrorLine(t *testing.T) {
	_, err := ParseString("[Event \"x\"]\n\n1. e4 e5\n2. Qq4 *", quietConfig())
	var pe *cherrors.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Line != 4 {
		t.Errorf("Line = %d, want 4", pe.Line)
	}
}

func TestTokenTypeString(t *testing.T) {
	if got := MoveToken.String(); got != "MOVE" {
		t.Errorf("MoveToken.String() = %q, want MOVE", got)
	}
	if got := TokenType(999).String(); got != "UNKNOWN" {
		t.Errorf("TokenType(999).String() = %q, want UNKNOWN", got)
	}
}

func TestLexerTokens(t *testing.T) {
	lexer := NewLexer(strings.NewReader(`[White "A \"B\""] 12... Nbd7+ $14 1/2-1/2`), quietConfig())

	want := []struct {
		typ  TokenType
		text string
	}{
		{TagToken, "White"},
		{StringToken, `A "B"`},
		{MoveNumber, "12"},
		{MoveToken, "Nbd7"},
		{CheckSymbol, "+"},
		{NAGToken, "$14"},
		{TerminatingResult, "1/2-1/2"},
		{EOFToken, ""},
	}
	for i, w := range want {
		tok := lexer.NextToken()
		if tok.Type != w.typ || tok.Text != w.text {
			t.Errorf("token %d = %v %q, want %v %q", i, tok.Type, tok.Text, w.typ, w.text)
		}
	}
}
