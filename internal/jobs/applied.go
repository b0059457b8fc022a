package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/creativityverse/verse-cli/internal/schemas"
	"github.com/creativityverse/verse-cli/internal/storage"
)

// appliedKey is the fixed local-storage key for the applied-job record.
const appliedKey = "applied_jobs"

// appliedRecord is the on-disk shape of the applied-job id list.
type appliedRecord struct {
	JobIDs []string `json:"job_ids"`
}

// LoadAppliedIDs reads the locally tracked applied-job ids. The file is
// schema-validated before decoding; a corrupt record is an error rather
// than silently treated as empty.
func LoadAppliedIDs(state *storage.Store) ([]string, error) {
	data, found, err := state.LoadRaw(appliedKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	if err := schemas.ValidateAppliedJobs(data); err != nil {
		return nil, fmt.Errorf("applied-job record is corrupt: %w", err)
	}
	var record appliedRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return record.JobIDs, nil
}

// MarkApplied appends a job id to the local record. Re-applying to the
// same job is a no-op.
func MarkApplied(state *storage.Store, jobID string) error {
	ids, err := LoadAppliedIDs(state)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == jobID {
			return nil
		}
	}
	return state.SaveJSON(appliedKey, appliedRecord{JobIDs: append(ids, jobID)})
}
