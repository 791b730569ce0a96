package repository

const (
	createJobQuery = `INSERT INTO conversions (job_id, media_id, input_s3_key, output_s3_prefix, status, error_message, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), $7)
		RETURNING *`

	getJobByIDQuery = `SELECT job_id, media_id, input_s3_key, output_s3_prefix, status, error_message, created_at, completed_at
		FROM conversions
		WHERE job_id = $1`

	updateJobStatusQuery = `UPDATE conversions
		SET status = $1,
		    error_message = COALESCE($2, error_message),
		    completed_at = COALESCE($3, completed_at)
		WHERE job_id = $4`

	listJobsBaseQuery = `SELECT c.job_id, c.media_id, c.input_s3_key, c.output_s3_prefix, c.status, c.error_message, c.created_at, c.completed_at,
		       m.title AS media_title, m.filename AS filename
		FROM conversions c
		LEFT JOIN media m ON m.media_id = c.media_id`

	countJobsBaseQuery = `SELECT COUNT(c.job_id) FROM conversions c`

	getActiveJobIDsQuery = `SELECT job_id FROM conversions
		WHERE status IN ('SUBMITTED', 'PROGRESSING')
		ORDER BY created_at`
)
