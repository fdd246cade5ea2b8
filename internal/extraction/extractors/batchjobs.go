package extractors

import "github.com/erpforensic/reconstructor/internal/extraction"

// BatchJobsID is the registry key for the batch jobs extractor.
const BatchJobsID = "batch_jobs"

// NewBatchJobs constructs the extractor reading scheduled batch job
// definitions and their run history.
func NewBatchJobs() extraction.Extractor {
	return tableOnly{
		identity: extraction.Identity{ExtractorID: BatchJobsID, Name: "Batch Jobs", Module: "BC-CCM-BTC", Category: "batch_jobs"},
		tables: []extraction.TableExpectation{
			{Name: "BATCH_JOBS", Description: "Scheduled batch job definitions"},
			{Name: "BATCH_JOB_LOGS", Description: "Batch job run history", Critical: true},
		},
		fixtures: map[string][]extraction.Row{
			"BATCH_JOBS": {
				{"job_name": "Z_AR_DUNNING_RUN", "user_id": "SYSTEM", "periodicity": "daily"},
			},
			"BATCH_JOB_LOGS": {
				{"job_name": "Z_AR_DUNNING_RUN", "run_id": "R1", "status": "finished", "started_at": "2026-07-30T02:00:00Z", "finished_at": "2026-07-30T02:04:00Z"},
			},
		},
	}
}
