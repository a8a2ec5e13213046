package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/config"
)

type fakeGame struct {
	fen    string
	record *Record
	snap   *Snapshot
}

func (f *fakeGame) FEN() string { return f.fen }
func (f *fakeGame) Record() *Record { return f.record }
func (f *fakeGame) Snapshot() *Snapshot { return f.snap }

func scholarsMate() *fakeGame {
	return &fakeGame{
		fen: "r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 4",
		record: &Record{
			Tags:      chess.Tags{"Event": "Test", "White": "Fischer", "Black": "Spassky", "Annotator": "me"},
			Moves:     []string{"e4", "e5", "Bc4", "Nc6", "Qh5", "Nf6", "Qxf7#"},
			FirstMove: 1,
			Result:    "1-0",
		},
		snap: &Snapshot{GameID: "g1", FEN: "fen", Checkmate: true, Result: "1-0"},
	}
}

func TestWritePGN(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePGN(&buf, scholarsMate().record, 80); err != nil {
		t.Fatalf("WritePGN() error = %v", err)
	}

	want := `[Event "Test"]
[Site "?"]
[Date "?"]
[Round "?"]
[White "Fischer"]
[Black "Spassky"]
[Result "1-0"]
[Annotator "me"]

1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0
`
	if got := buf.String(); got != want {
		t.Errorf("WritePGN() =\n%s\nwant\n%s", got, want)
	}
}

func TestWritePGN_Wrapping(t *testing.T) {
	rec := &Record{Moves: strings.Fields("e4 e5 Nf3 Nc6 Bb5 a6 Ba4 Nf6 O-O Be7 Re1 b5 Bb3 d6 c3 O-O h3 Nb8")}

	var buf bytes.Buffer
	if err := WritePGN(&buf, rec, 30); err != nil {
		t.Fatalf("WritePGN() error = %v", err)
	}

	body := strings.SplitN(buf.String(), "\n\n", 2)[1]
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		if len(line) > 30 {
			t.Errorf("line %q longer than 30", line)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(body), "Nb8 *") {
		t.Errorf("movetext should end with the unknown result, got %q", body)
	}
}

func TestWritePGN_BlackFirst(t *testing.T) {
	rec := &Record{Moves: []string{"e5", "Nf3"}, FirstMove: 7, BlackFirst: true, Result: "*"}

	var buf bytes.Buffer
	if err := WritePGN(&buf, rec, 80); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n7... e5 8. Nf3 *\n") {
		t.Errorf("movetext = %q", buf.String())
	}
}

func TestEscapeTagValue(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeTagValue(tt.in); got != tt.want {
			t.Errorf("escapeTagValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoveText(t *testing.T) {
	rec := &Record{Moves: []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}, FirstMove: 1}

	tests := []struct {
		name         string
		movesPerLine int
		want         string
	}{
		{"single line", 0, "1. e4 e5 2. Nf3 Nc6 3. Bb5"},
		{"one per line", 1, "1. e4 e5\n2. Nf3 Nc6\n3. Bb5"},
		{"two per line", 2, "1. e4 e5 2. Nf3 Nc6\n3. Bb5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMoveText(rec, tt.movesPerLine); got != tt.want {
				t.Errorf("FormatMoveText() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := FormatMoveText(&Record{}, 6); got != "" {
		t.Errorf("FormatMoveText(empty) = %q, want empty", got)
	}
}

func TestFENWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewGameWriter(&buf, config.NewConfig())
	if err := w.WriteGame(scholarsMate()); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != scholarsMate().fen+"\n" {
		t.Errorf("FEN output = %q", got)
	}
}

func TestPGNWriter_SeparatesGames(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewConfigBuilder().WithOutputFormat(config.PGN).Build()
	w := NewGameWriter(&buf, cfg)

	for i := 0; i < 2; i++ {
		if err := w.WriteGame(scholarsMate()); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "[Event \"Test\"]"); n != 2 {
		t.Errorf("wrote %d games, want 2", n)
	}
	if !strings.Contains(buf.String(), "1-0\n\n[Event") {
		t.Error("games should be separated by a blank line")
	}
}

func TestJSONWriter_Batch(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewConfigBuilder().WithOutputFormat(config.JSON).Build()
	w := NewGameWriter(&buf, cfg)

	w.WriteGame(scholarsMate())
	w.WriteGame(scholarsMate())
	if buf.Len() != 0 {
		t.Fatal("batching writer should not write before Flush")
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.Games) != 2 || !out.Games[0].Checkmate || out.Games[0].GameID != "g1" {
		t.Errorf("decoded = %+v", out)
	}
}

func TestJSONWriter_Single(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewConfig()
	cfg.Output.IndentJSON = false
	w := NewJSONWriterSingle(&buf, cfg)

	if err := w.WriteGame(scholarsMate()); err != nil {
		t.Fatal(err)
	}
	line := strings.TrimSpace(buf.String())
	if strings.Contains(line, "\n") {
		t.Errorf("unindented snapshot spans lines: %q", line)
	}
	if !strings.Contains(line, `"result":"1-0"`) {
		t.Errorf("snapshot = %s", line)
	}
	if strings.Contains(line, "scores") {
		t.Error("nil scores should be omitted")
	}
}
