package parser

import (
	"io"
	"strings"

	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/config"
	"github.com/lgbarn/checkmate-go/internal/errors"
)

// Game is one parsed PGN game: its tags and its main line of decoded moves.
// Variations are skipped.
type Game struct {
	Tags     chess.Tags
	Moves    []*Move
	Comments []string // Comments before the first move
	Result   string   // Terminating result from the movetext, if any

	StartLine uint
	EndLine   uint
}

// NewGame creates an empty parsed game.
func NewGame() *Game {
	return &Game{Tags: chess.Tags{}}
}

// PlyCount returns the number of half-moves in the main line.
func (g *Game) PlyCount() int {
	return len(g.Moves)
}

// LastMove returns the final move of the main line, or nil.
func (g *Game) LastMove() *Move {
	if len(g.Moves) == 0 {
		return nil
	}
	return g.Moves[len(g.Moves)-1]
}

// Parser parses PGN input into Game structures.
type Parser struct {
	lexer        *Lexer
	currentToken *Token
	cfg          *config.Config
}

// NewParser creates a new parser for the given reader.
// If cfg is nil, a default config is created.
func NewParser(r io.Reader, cfg *config.Config) *Parser {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Parser{
		lexer: NewLexer(r, cfg),
		cfg:   cfg,
	}
}

// ParseString parses exactly one game from s.
func ParseString(s string, cfg *config.Config) (*Game, error) {
	game, err := NewParser(strings.NewReader(s), cfg).ParseGame()
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, &errors.ParseError{Err: errors.ErrInvalidPGN, Input: "PGN", Field: "game"}
	}
	return game, nil
}

// nextToken gets the next token from the lexer.
func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}

func (p *Parser) errorAt(section string) error {
	return &errors.ParseError{
		Err:   errors.ErrInvalidPGN,
		Input: "PGN",
		Field: section,
		Line:  int(p.currentToken.Line),
		Token: p.currentToken.Text,
	}
}

// ParseGame parses a single game from the input.
// Returns nil, nil if no more games are available.
func (p *Parser) ParseGame() (*Game, error) {
	if p.currentToken == nil {
		p.nextToken()
	}

	game := NewGame()
	game.Comments = p.parseOptCommentList()
	game.StartLine = p.currentToken.Line

	if err := p.parseOptTagList(game); err != nil {
		return nil, err
	}
	game.Comments = append(game.Comments, p.parseOptCommentList()...)

	// Skip any initial NAGs (non-standard but sometimes present)
	for p.currentToken.Type == NAGToken {
		p.nextToken()
	}

	moves, err := p.parseMoveList()
	if err != nil {
		return nil, err
	}
	game.Moves = moves

	trailing := p.parseOptCommentList()
	if last := game.LastMove(); last != nil {
		last.Comments = append(last.Comments, trailing...)
	}

	switch p.currentToken.Type {
	case TerminatingResult:
		game.Result = p.currentToken.Text
		p.nextToken()
	case EOFToken, TagToken:
	default:
		return nil, p.errorAt("movetext")
	}
	game.EndLine = p.lexer.LineNumber()

	if game.Result != "" {
		if r := game.Tags.Get("Result"); r == "" || r == "?" {
			game.Tags.Set("Result", game.Result)
		}
	}

	if game.Moves == nil && len(game.Tags) == 0 && game.Result == "" {
		return nil, nil
	}
	return game, nil
}

// parseOptTagList parses zero or more tag pairs.
func (p *Parser) parseOptTagList(game *Game) error {
	for p.currentToken.Type == TagToken {
		name := p.currentToken.Text
		p.nextToken()

		if p.currentToken.Type != StringToken {
			return p.errorAt("tags")
		}
		game.Tags.Set(name, p.currentToken.Text)
		p.nextToken()
	}
	if p.currentToken.Type == StringToken {
		return p.errorAt("tags")
	}
	return nil
}

// parseMoveList parses the main line, skipping variations.
func (p *Parser) parseMoveList() ([]*Move, error) {
	var moves []*Move

	for {
		p.parseOptMoveNumber()

		switch p.currentToken.Type {
		case MoveToken:
		case ErrorToken:
			return nil, p.errorAt("movetext")
		default:
			return moves, nil
		}

		move := p.currentToken.Move
		p.nextToken()
		p.parseMoveSuffixes(move)

		if err := p.skipVariations(); err != nil {
			return nil, err
		}
		move.Comments = append(move.Comments, p.parseOptCommentList()...)
		moves = append(moves, move)
	}
}

// parseMoveSuffixes gathers check marks, NAGs, comments and "e.p." that follow a move.
func (p *Parser) parseMoveSuffixes(move *Move) {
	for {
		switch p.currentToken.Type {
		case CheckSymbol:
			if strings.Contains(p.currentToken.Text, "#") {
				move.Mate = true
			} else {
				move.Check = true
			}
		case Annotate:
			move.EnPassant = true
		case NAGToken:
			move.NAGs = append(move.NAGs, p.currentToken.Text)
		case CommentToken:
			move.Comments = append(move.Comments, p.currentToken.Text)
		default:
			return
		}
		p.nextToken()
	}
}

// parseOptCommentList parses zero or more comments.
func (p *Parser) parseOptCommentList() []string {
	var comments []string
	for p.currentToken.Type == CommentToken {
		comments = append(comments, p.currentToken.Text)
		p.nextToken()
	}
	return comments
}

// parseOptMoveNumber parses an optional move number.
func (p *Parser) parseOptMoveNumber() bool {
	if p.currentToken.Type == MoveNumber {
		p.nextToken()
		return true
	}
	return false
}

// skipVariations discards any number of bracketed variations, including nested ones.
func (p *Parser) skipVariations() error {
	for p.currentToken.Type == RAVStart {
		depth := 0
		for {
			switch p.currentToken.Type {
			case RAVStart:
				depth++
			case RAVEnd:
				depth--
			case EOFToken:
				return p.errorAt("variation")
			}
			p.nextToken()
			if depth == 0 {
				break
			}
		}
		p.parseOptCommentList()
	}
	return nil
}

// ParseAllGames parses all games from the input.
func (p *Parser) ParseAllGames() ([]*Game, error) {
	var games []*Game

	for {
		game, err := p.ParseGame()
		if err != nil {
			return games, err
		}
		if game == nil {
			break
		}
		games = append(games, game)
	}

	return games, nil
}
