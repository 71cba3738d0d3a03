package game

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"kingknight/engine"
	"kingknight/history"
	"kingknight/save"
	"kingknight/types"
)

func newTestSession(t *testing.T, seed int64) *Session {
	t.Helper()
	s, err := NewSession(Config{Rand: rand.New(rand.NewSource(seed))})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func click(t *testing.T, s *Session, row, col int, want Result) Outcome {
	t.Helper()
	out := s.OnSquareClicked(row, col)
	if out.Result != want {
		t.Fatalf("click (%d,%d) = %s (%v), want %s", row, col, out.Result, out.Err, want)
	}
	return out
}

func TestDefaultSession(t *testing.T) {
	s := newTestSession(t, 1)
	b := s.Board()
	if b.Get(5, 1) != types.King || b.Get(5, 2) != types.Knight || b.Get(7, 6) != types.Goal {
		t.Fatalf("unexpected start layout:\n%s", b)
	}
	if s.Selection() != types.Empty || s.Finished() {
		t.Error("new session should have no selection and not be finished")
	}
}

func TestSelectionStateMachine(t *testing.T) {
	s := newTestSession(t, 1)

	// empty and goal squares do nothing without a selection
	click(t, s, 0, 0, Ignored)
	click(t, s, 7, 6, Ignored)

	// king (5,1) is not attacked by the knight (5,2)
	out := click(t, s, 5, 1, NotInCheck)
	if !errors.Is(out.Err, engine.ErrNotInCheck) {
		t.Errorf("NotInCheck error = %v", out.Err)
	}
	if s.Selection() != types.Empty {
		t.Error("refused piece must not be selected")
	}

	out = click(t, s, 5, 2, Selected)
	if out.Piece != types.Knight || out.Square != "c3" {
		t.Errorf("selected %s on %s", out.Piece, out.Square)
	}

	// clicking the king while the knight is selected is a no-op
	click(t, s, 5, 1, Ignored)
	if s.Selection() != types.Knight {
		t.Error("selection should survive a click on the other piece")
	}

	click(t, s, 5, 2, Deselected)
	if s.Selection() != types.Empty {
		t.Error("clicking the selected piece should deselect it")
	}
}

func TestRejectedMoveKeepsSelection(t *testing.T) {
	s := newTestSession(t, 1)
	click(t, s, 5, 2, Selected)

	// (5,2) -> (7,6) is offset (2,4)
	out := click(t, s, 7, 6, Rejected)
	if !errors.Is(out.Err, engine.ErrInvalidMove) {
		t.Errorf("Rejected error = %v", out.Err)
	}
	if s.Selection() != types.Knight {
		t.Error("rejected move must keep the selection")
	}
	if s.History().CanUndo() {
		t.Error("rejected move must not be recorded")
	}
	if out.Message() != "The knight cannot move to g1" {
		t.Errorf("message = %q", out.Message())
	}
}

func TestMoveRecordsHistory(t *testing.T) {
	s := newTestSession(t, 1)
	click(t, s, 5, 2, Selected)
	out := click(t, s, 6, 4, Moved)
	if out.Message() != "The knight moved to e2" {
		t.Errorf("message = %q", out.Message())
	}
	if s.Selection() != types.Empty {
		t.Error("selection should clear after a move")
	}
	want := []types.MoveRecord{{TargetRow: 6, TargetCol: 4, Piece: types.Knight, SourceRow: 5, SourceCol: 2}}
	if diff := cmp.Diff(want, s.History().UndoMoves()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if s.Board().Get(5, 2) != types.Empty || s.Board().Get(6, 4) != types.Knight {
		t.Errorf("unexpected board after move:\n%s", s.Board())
	}
}

// winnable is a position where the knight (5,5) is next to the king (6,6)
// and one jump from the goal (7,4).
func winnable() types.Snapshot {
	return types.NewSnapshot(types.Pos{Row: 6, Col: 6}, types.Pos{Row: 5, Col: 5}, types.Pos{Row: 7, Col: 4}, nil, nil)
}

func TestWinAndUndo(t *testing.T) {
	s := newTestSession(t, 1)
	if err := s.Restore(winnable()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	click(t, s, 5, 5, Selected)
	out := click(t, s, 7, 4, Won)
	if out.Piece != types.Knight {
		t.Errorf("winner = %s", out.Piece)
	}
	if !s.Finished() {
		t.Fatal("session should be finished after reaching the goal")
	}
	click(t, s, 6, 6, Ignored)

	if _, err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if s.Finished() {
		t.Error("undoing the winning move should resume the game")
	}
	if s.Board().Get(7, 4) != types.Goal || s.Board().Get(5, 5) != types.Knight {
		t.Errorf("goal not restored after undo:\n%s", s.Board())
	}

	if _, err := s.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if !s.Finished() {
		t.Error("redoing the winning move should finish the game again")
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	s := newTestSession(t, 1)
	if _, err := s.Undo(); !errors.Is(err, history.ErrEmptyHistory) {
		t.Errorf("Undo: got %v, want ErrEmptyHistory", err)
	}
	if _, err := s.Redo(); !errors.Is(err, history.ErrEmptyHistory) {
		t.Errorf("Redo: got %v, want ErrEmptyHistory", err)
	}
}

func TestUndoClearsSelection(t *testing.T) {
	s := newTestSession(t, 1)
	click(t, s, 5, 2, Selected)
	click(t, s, 7, 3, Moved)
	if _, err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	click(t, s, 5, 2, Selected)
	if _, err := s.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if s.Selection() != types.Empty {
		t.Error("redo should clear the selection")
	}
}

func TestNewMoveAfterUndoClearsRedo(t *testing.T) {
	s := newTestSession(t, 1)
	click(t, s, 5, 2, Selected)
	click(t, s, 6, 4, Moved)
	if _, err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	click(t, s, 5, 2, Selected)
	click(t, s, 7, 3, Moved)
	if _, err := s.Redo(); !errors.Is(err, history.ErrEmptyHistory) {
		t.Errorf("Redo after a new move: got %v, want ErrEmptyHistory", err)
	}
}

func TestOutOfBoundsClick(t *testing.T) {
	s := newTestSession(t, 1)
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
		if out := s.OnSquareClicked(c[0], c[1]); out.Result != Ignored {
			t.Errorf("click (%d,%d) = %s, want ignored", c[0], c[1], out.Result)
		}
	}
}

func TestNewGameInvariants(t *testing.T) {
	s := newTestSession(t, 42)
	for i := 0; i < 500; i++ {
		s.NewGame()
		b := s.Board()
		king := b.PositionOf(types.King)
		knight := b.PositionOf(types.Knight)
		goal := b.PositionOf(types.Goal)

		if king == knight {
			t.Fatalf("trial %d: king and knight share %+v", i, king)
		}
		if !engine.IsInCheck(b, types.King) && !engine.IsInCheck(b, types.Knight) {
			t.Fatalf("trial %d: neither piece in check (king %+v knight %+v)", i, king, knight)
		}
		if goal == king || goal == knight {
			t.Fatalf("trial %d: goal %+v overlaps a piece", i, goal)
		}

		counts := map[types.CellState]int{}
		for _, row := range b.Cells() {
			for _, c := range row {
				counts[c]++
			}
		}
		want := map[types.CellState]int{types.Empty: 61, types.King: 1, types.Knight: 1, types.Goal: 1}
		if diff := cmp.Diff(want, counts); diff != "" {
			t.Fatalf("trial %d: cell counts mismatch (-want +got):\n%s", i, diff)
		}
		if b.Get(king.Row, king.Col) != types.King || b.Get(knight.Row, knight.Col) != types.Knight {
			t.Fatalf("trial %d: tracked positions disagree with grid", i)
		}
	}
}

func TestNewGameResetsState(t *testing.T) {
	s := newTestSession(t, 7)
	click(t, s, 5, 2, Selected)
	click(t, s, 6, 4, Moved)
	if _, err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	click(t, s, 5, 2, Selected)

	s.NewGame()
	if s.Selection() != types.Empty || s.History().CanUndo() || s.History().CanRedo() || s.Finished() {
		t.Error("new game should clear selection, history and finished flag")
	}
}

func TestCustomBoardSize(t *testing.T) {
	s, err := NewSession(Config{BoardSize: 5, Rand: rand.New(rand.NewSource(3))})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if s.Board().Size() != 5 {
		t.Fatalf("size = %d, want 5", s.Board().Size())
	}
	if !engine.IsInCheck(s.Board(), types.King) && !engine.IsInCheck(s.Board(), types.Knight) {
		t.Error("random start must have a piece in check")
	}

	if _, err := NewSession(Config{BoardSize: 2}); err == nil {
		t.Error("a 2x2 board should be rejected")
	}
	if _, err := NewSession(Config{BoardSize: 27}); err == nil {
		t.Error("a 27x27 board has no letter for its last file and should be rejected")
	}
	if s, err := NewSession(Config{BoardSize: 26, Rand: rand.New(rand.NewSource(3))}); err != nil {
		t.Errorf("26x26 board: %v", err)
	} else if got := types.Notation(0, 25, s.Board().Size()); got != "z26" {
		t.Errorf("last square = %q, want z26", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestSession(t, 1)
	// knight c3-a4 stays next to the king, then a4-b2
	click(t, s, 5, 2, Selected)
	click(t, s, 4, 0, Moved)
	click(t, s, 4, 0, Selected)
	click(t, s, 6, 1, Moved)
	if _, err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if len(s.History().UndoMoves()) != 1 || len(s.History().RedoMoves()) != 1 {
		t.Fatalf("want one move on each stack, got %d/%d", len(s.History().UndoMoves()), len(s.History().RedoMoves()))
	}
	want := s.Snapshot()

	path := filepath.Join(t.TempDir(), "save.json")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	other := newTestSession(t, 2)
	other.NewGame()
	if err := other.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, other.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(s.Board().Cells(), other.Board().Cells()); diff != "" {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFailureLeavesState(t *testing.T) {
	s := newTestSession(t, 1)
	click(t, s, 5, 2, Selected)
	click(t, s, 6, 4, Moved)
	before := s.Snapshot()
	cells := s.Board().Cells()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"positions":[1,2,3],"undo":[],"redo":[]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(bad); !errors.Is(err, save.ErrMalformedSave) {
		t.Errorf("Load short positions: got %v, want ErrMalformedSave", err)
	}

	offBoard := filepath.Join(dir, "off.json")
	if err := os.WriteFile(offBoard, []byte(`{"positions":[9,9,5,2,7,6],"undo":[],"redo":[]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(offBoard); !errors.Is(err, save.ErrMalformedSave) {
		t.Errorf("Load off-board: got %v, want ErrMalformedSave", err)
	}

	if err := s.Load(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load missing: got %v, want ErrNotExist", err)
	}

	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("failed loads changed the session (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(cells, s.Board().Cells()); diff != "" {
		t.Errorf("failed loads changed the board (-want +got):\n%s", diff)
	}
}
