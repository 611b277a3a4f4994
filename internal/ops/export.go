package ops

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"time"

	"github.com/hpark/clipvault/internal/db"
	"github.com/hpark/clipvault/internal/errors"
)

// exportSchemaVersion identifies the JSONL export format.
const exportSchemaVersion = "1"

// exportHeader is the first line of an export stream.
type exportHeader struct {
	ClipvaultExport bool   `json:"_clipvault_export"`
	SchemaVersion   string `json:"schema_version"`
	ExportedAt      int64  `json:"exported_at"`
	Entries         int    `json:"entries"`
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Entries int `json:"entries"`
}

// Export writes the full history as JSONL: a header line followed by one
// entry object per line, oldest first so the stream replays in capture order.
func Export(ctx context.Context, database *sql.DB, w io.Writer) (*ExportOutput, error) {
	entries, err := db.List(ctx, database, 0)
	if err != nil {
		return nil, err
	}

	enc := json.NewEncoder(w)
	header := exportHeader{
		ClipvaultExport: true,
		SchemaVersion:   exportSchemaVersion,
		ExportedAt:      time.Now().UnixMilli(),
		Entries:         len(entries),
	}
	if err := enc.Encode(header); err != nil {
		return nil, errors.NewInternal(err)
	}

	// db.List is most-recent-first; walk backwards for replay order.
	for i := len(entries) - 1; i >= 0; i-- {
		if err := enc.Encode(itemFromEntry(entries[i])); err != nil {
			return nil, errors.NewInternal(err)
		}
	}

	return &ExportOutput{Entries: len(entries)}, nil
}
