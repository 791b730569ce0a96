package repository

const (
	createSessionQuery = `INSERT INTO upload_sessions (session_id, filename, total_size, uploaded_size, content_type, s3_key, s3_bucket, status)
					VALUES ($1, $2, $3, 0, $4, $5, $6, $7) RETURNING *`
	getSessionByIDQuery = `SELECT session_id, filename, total_size, uploaded_size, content_type, s3_key, s3_bucket, multipart_upload_id, status, created_at, updated_at
					FROM upload_sessions WHERE session_id = $1`
	setMultipartUploadIDQuery = `UPDATE upload_sessions SET multipart_upload_id = $1, updated_at = now() WHERE session_id = $2`
	advanceUploadedSizeQuery  = `UPDATE upload_sessions SET uploaded_size = GREATEST(uploaded_size, $1), updated_at = now() WHERE session_id = $2`
	markCompletedQuery        = `UPDATE upload_sessions SET status = $1, uploaded_size = $2, updated_at = now() WHERE session_id = $3`
	listExpiredPendingQuery   = `SELECT session_id, filename, total_size, uploaded_size, content_type, s3_key, s3_bucket, multipart_upload_id, status, created_at, updated_at
					FROM upload_sessions WHERE status = $1 AND created_at < $2 ORDER BY created_at`
	deleteSessionQuery = `DELETE FROM upload_sessions WHERE session_id = $1`
)
