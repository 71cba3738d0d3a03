// Package game wires board, rules and history into a playable session.
package game

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"kingknight/board"
	"kingknight/engine"
	"kingknight/history"
	"kingknight/save"
	"kingknight/types"
)

// Config holds the settings for a new session.
type Config struct {
	BoardSize int         // side length, board.DefaultSize when zero
	Rand      *rand.Rand  // source for new games, time-seeded when nil
	Logger    *log.Logger // debug log, discarded when nil
}

// Session is the state of one puzzle: the board, the move history, the
// selected piece and whether the goal has been reached.
//
// A session is not safe for concurrent use; the UI calls it from its event loop.
type Session struct {
	board    *board.Board
	history  *history.History
	selected types.CellState
	finished bool
	rng      *rand.Rand
	log      *log.Logger
}

// NewSession creates a session. An 8x8 board starts in the default layout,
// any other size starts with a random game.
func NewSession(cfg Config) (*Session, error) {
	if cfg.BoardSize == 0 {
		cfg.BoardSize = board.DefaultSize
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}

	s := &Session{
		history: history.New(),
		rng:     cfg.Rand,
		log:     cfg.Logger,
	}

	if cfg.BoardSize == board.DefaultSize {
		s.board = board.Default()
		return s, nil
	}
	// placeholder layout, replaced by NewGame
	b, err := board.New(cfg.BoardSize, types.Pos{Row: 0, Col: 0}, types.Pos{Row: 0, Col: 1}, types.Pos{Row: 0, Col: 2})
	if err != nil {
		return nil, err
	}
	s.board = b
	s.NewGame()
	return s, nil
}

// Board returns the session board. Callers may subscribe to its changes
// but must not move pieces on it directly.
func (s *Session) Board() *board.Board {
	return s.board
}

// Selection returns the selected piece, or types.Empty.
func (s *Session) Selection() types.CellState {
	return s.selected
}

// Finished returns true once a piece stands on the goal.
func (s *Session) Finished() bool {
	return s.finished
}

// History returns the move history.
func (s *Session) History() *history.History {
	return s.history
}

// LegalTargets returns the squares the selected piece may move to.
func (s *Session) LegalTargets() []types.Pos {
	if s.selected == types.Empty {
		return nil
	}
	return engine.LegalMoves(s.board, s.selected)
}

func (s *Session) square(row, col int) string {
	return types.Notation(row, col, s.board.Size())
}

// OnSquareClicked advances the selection state machine for a click on
// (row, col). It never panics on out-of-range coordinates.
func (s *Session) OnSquareClicked(row, col int) Outcome {
	if !s.board.InBounds(row, col) || s.finished {
		return Outcome{Result: Ignored}
	}
	cell := s.board.Get(row, col)
	out := Outcome{Piece: cell, Square: s.square(row, col)}

	if s.selected == types.Empty {
		if !cell.IsPiece() {
			out.Result = Ignored
			return out
		}
		if !engine.IsInCheck(s.board, cell) {
			s.log.Printf("select: %s on %s is not in check", cell, out.Square)
			out.Result = NotInCheck
			out.Err = fmt.Errorf("select %s: %w", cell, engine.ErrNotInCheck)
			return out
		}
		s.selected = cell
		s.log.Printf("select: %s on %s", cell, out.Square)
		out.Result = Selected
		return out
	}

	piece := s.selected
	out.Piece = piece
	if cell == piece {
		s.selected = types.Empty
		s.log.Printf("deselect: %s", piece)
		out.Result = Deselected
		return out
	}
	if cell.IsPiece() {
		out.Result = Ignored
		return out
	}

	if !engine.IsLegalMove(s.board, piece, row, col) {
		s.log.Printf("move: %s cannot move to %s", piece, out.Square)
		out.Result = Rejected
		out.Err = fmt.Errorf("%s to %s: %w", piece, out.Square, engine.ErrInvalidMove)
		return out
	}

	src := s.board.PositionOf(piece)
	rec := types.NewMoveRecord(piece, src, types.Pos{Row: row, Col: col})
	if err := engine.ApplyMove(s.board, piece, row, col); err != nil {
		s.log.Printf("move: %v", err)
		out.Result = Rejected
		out.Err = err
		return out
	}
	s.history.Record(rec)
	s.selected = types.Empty
	s.log.Printf("move: %s %s-%s", piece, s.square(src.Row, src.Col), out.Square)

	if engine.IsWin(s.board, row, col) {
		s.finished = true
		s.log.Printf("win: %s reached the goal on %s", piece, out.Square)
		out.Result = Won
		return out
	}
	out.Result = Moved
	return out
}

// ClearSelection drops the selected piece, if any.
func (s *Session) ClearSelection() {
	s.selected = types.Empty
}

func (s *Session) randomPos() types.Pos {
	n := s.board.Size()
	return types.Pos{Row: s.rng.Intn(n), Col: s.rng.Intn(n)}
}

// NewGame clears history and places king, knight and goal at random. The
// king and knight always start on different squares with at least one of
// them in check, so the first move is available.
func (s *Session) NewGame() {
	s.selected = types.Empty
	s.finished = false
	s.history.Clear()

	var king, knight types.Pos
	for {
		king, knight = s.randomPos(), s.randomPos()
		if king != knight && (engine.InCheck(types.King, king, knight) || engine.InCheck(types.Knight, king, knight)) {
			break
		}
	}
	goal := s.randomPos()
	for goal == king || goal == knight {
		goal = s.randomPos()
	}

	if err := s.board.Reset(king, knight, goal); err != nil {
		// unreachable: all three positions are distinct and in bounds
		panic(err)
	}
	s.log.Printf("new game: king %s knight %s goal %s",
		s.square(king.Row, king.Col), s.square(knight.Row, knight.Col), s.square(goal.Row, goal.Col))
}

// pieceOnGoal reports whether the king or the knight stands on the goal.
func (s *Session) pieceOnGoal() bool {
	goal := s.board.PositionOf(types.Goal)
	return s.board.PositionOf(types.King) == goal || s.board.PositionOf(types.Knight) == goal
}

// Undo takes back the last move.
func (s *Session) Undo() (types.MoveRecord, error) {
	m, err := s.history.Undo(s.board)
	if err != nil {
		s.log.Printf("%v", err)
		return m, err
	}
	s.selected = types.Empty
	s.finished = s.pieceOnGoal()
	s.log.Printf("undo: %s back to %s", m.Piece, s.square(m.SourceRow, m.SourceCol))
	return m, nil
}

// Redo replays the last undone move.
func (s *Session) Redo() (types.MoveRecord, error) {
	m, err := s.history.Redo(s.board)
	if err != nil {
		s.log.Printf("%v", err)
		return m, err
	}
	s.selected = types.Empty
	s.finished = s.pieceOnGoal()
	s.log.Printf("redo: %s to %s", m.Piece, s.square(m.TargetRow, m.TargetCol))
	return m, nil
}

// Snapshot captures the marker positions and both history stacks.
func (s *Session) Snapshot() types.Snapshot {
	return types.NewSnapshot(
		s.board.PositionOf(types.King),
		s.board.PositionOf(types.Knight),
		s.board.PositionOf(types.Goal),
		s.history.UndoMoves(),
		s.history.RedoMoves(),
	)
}

// Restore replaces the board and history with snap. The session is left
// unchanged if snap does not fit the board.
func (s *Session) Restore(snap types.Snapshot) error {
	if err := save.Validate(&snap, s.board.Size()); err != nil {
		return err
	}
	if err := s.board.Restore(snap.King(), snap.Knight(), snap.Goal()); err != nil {
		return err
	}
	s.history.Replace(snap.Undo, snap.Redo)
	s.selected = types.Empty
	s.finished = s.pieceOnGoal()
	return nil
}

// Save writes the session to path.
func (s *Session) Save(path string) error {
	snap := s.Snapshot()
	if err := save.WriteFile(path, &snap); err != nil {
		s.log.Printf("save: %v", err)
		return err
	}
	s.log.Printf("save: %s (%d undo, %d redo)", path, len(snap.Undo), len(snap.Redo))
	return nil
}

// Load replaces the session with the save at path. Nothing changes unless
// the whole file reads and validates.
func (s *Session) Load(path string) error {
	snap, err := save.ReadFile(path)
	if err != nil {
		s.log.Printf("load: %v", err)
		return err
	}
	if err := s.Restore(*snap); err != nil {
		s.log.Printf("load: %v", err)
		return fmt.Errorf("load %s: %w", path, err)
	}
	s.log.Printf("load: %s (%d undo, %d redo)", path, len(snap.Undo), len(snap.Redo))
	return nil
}
