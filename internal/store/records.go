package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"uttt_go/internal/game"
)

// TrainingRow is one searched position of a self-play game.
//
// State is game.EncodeBoardBytes from the mover's side. Policy is the
// game.MoveIndex of the chosen move. Value is the final result from the
// mover's side: 1 win, 0 draw, -1 loss.
type TrainingRow struct {
	GameID     string  `parquet:"game_id,dict"`
	Ply        int32   `parquet:"ply"`
	Player     int32   `parquet:"player"`
	Hash       int64   `parquet:"hash"`
	Field      string  `parquet:"field"`
	Macroboard string  `parquet:"macroboard,dict"`
	State      []byte  `parquet:"state"`
	Policy     int32   `parquet:"policy"`
	Score      int32   `parquet:"score"`
	Depth      int32   `parquet:"depth"`
	Value      float32 `parquet:"value"`
	Source     string  `parquet:"source,dict"`
}

// OutcomeFor maps a winner to the value target for player p.
func OutcomeFor(winner, p game.CellState) float32 {
	switch winner {
	case game.Empty:
		return 0
	case p:
		return 1
	}
	return -1
}

// WriteRecords writes rows to outPath through a temp file and rename.
func WriteRecords(outPath string, rows []TrainingRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.SkipPageBounds("state"),
		parquet.KeyValueMetadata("schema", "uttt_training_row_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// WriteBatch writes rows to a new batch_<nanos>.parquet file in outDir and
// returns its path.
func WriteBatch(outDir string, rows []TrainingRow) (string, error) {
	name := fmt.Sprintf("batch_%d.parquet", time.Now().UnixNano())
	outPath := filepath.Join(outDir, name)
	if err := WriteRecords(outPath, rows); err != nil {
		return "", err
	}
	return outPath, nil
}

// ReadRecords loads every row of a records file.
func ReadRecords(path string) ([]TrainingRow, error) {
	rows, err := parquet.ReadFile[TrainingRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	return rows, nil
}
