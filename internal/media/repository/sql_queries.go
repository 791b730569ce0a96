package repository

const (
	createMediaQuery = `INSERT INTO media (media_id, title, description, genre, year, filename, file_size, duration, mime_type, status)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING *`
	getMediaByIDQuery = `SELECT media_id, title, description, genre, year, filename, file_size, duration, mime_type, status, s3_key, distribution_url, thumbnail_path, created_at, updated_at
					FROM media WHERE media_id = $1`
	setReadyQuery = `UPDATE media SET s3_key = $1, distribution_url = $2, status = $3, updated_at = now()
					WHERE media_id = $4`
	setThumbnailPathQuery = `UPDATE media SET thumbnail_path = $1, updated_at = now() WHERE media_id = $2`
	deleteMediaQuery      = `DELETE FROM media WHERE media_id = $1`
)
