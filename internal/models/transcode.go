package models

// TranscodeSpec describes one submission to the transcoding backend. The
// rendition itself (resolution, codec, bitrate) is fixed by the backend
// repository; callers only choose input and output placement.
type TranscodeSpec struct {
	InputBucket    string
	InputS3Key     string
	OutputBucket   string
	OutputS3Prefix string
}

// TranscodeStatus is the backend's view of a job, already mapped onto the
// local status enum.
type TranscodeStatus struct {
	JobID        string
	Status       JobStatus
	ErrorMessage *string
}
