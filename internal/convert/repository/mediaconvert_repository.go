package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	mctypes "github.com/aws/aws-sdk-go-v2/service/mediaconvert/types"
	"github.com/filmroom/media-backend/internal/config"
	"github.com/filmroom/media-backend/internal/convert"
	"github.com/filmroom/media-backend/internal/models"
	"github.com/pkg/errors"
)

type mediaConvertTranscoder struct {
	cfg    *config.Config
	client *mediaconvert.Client
}

func NewMediaConvertTranscoder(cfg *config.Config, client *mediaconvert.Client) convert.Transcoder {
	return &mediaConvertTranscoder{
		cfg:    cfg,
		client: client,
	}
}

func (t *mediaConvertTranscoder) SubmitJob(ctx context.Context, spec *models.TranscodeSpec) (string, error) {
	input := &mediaconvert.CreateJobInput{
		Role:     aws.String(t.cfg.MediaConvert.RoleArn),
		Settings: buildJobSettings(spec),
	}
	if t.cfg.MediaConvert.Queue != "" {
		input.Queue = aws.String(t.cfg.MediaConvert.Queue)
	}

	out, err := t.client.CreateJob(ctx, input)
	if err != nil {
		return "", errors.Wrap(err, "mediaConvertTranscoder.SubmitJob.CreateJob")
	}
	if out.Job == nil || out.Job.Id == nil {
		return "", errors.New("mediaConvertTranscoder.SubmitJob: no job id in response")
	}
	return *out.Job.Id, nil
}

func (t *mediaConvertTranscoder) GetJobStatus(ctx context.Context, jobID string) (*models.TranscodeStatus, error) {
	out, err := t.client.GetJob(ctx, &mediaconvert.GetJobInput{Id: aws.String(jobID)})
	if err != nil {
		return nil, errors.Wrap(err, "mediaConvertTranscoder.GetJobStatus.GetJob")
	}
	if out.Job == nil {
		return nil, errors.New("mediaConvertTranscoder.GetJobStatus: no job in response")
	}

	status := &models.TranscodeStatus{
		JobID:  jobID,
		Status: mapJobStatus(out.Job.Status),
	}
	if out.Job.ErrorMessage != nil && *out.Job.ErrorMessage != "" {
		status.ErrorMessage = out.Job.ErrorMessage
	}
	return status, nil
}

func (t *mediaConvertTranscoder) CancelJob(ctx context.Context, jobID string) error {
	if _, err := t.client.CancelJob(ctx, &mediaconvert.CancelJobInput{Id: aws.String(jobID)}); err != nil {
		return errors.Wrap(err, "mediaConvertTranscoder.CancelJob.CancelJob")
	}
	return nil
}

func mapJobStatus(s mctypes.JobStatus) models.JobStatus {
	switch s {
	case mctypes.JobStatusSubmitted:
		return models.JobStatusSubmitted
	case mctypes.JobStatusProgressing:
		return models.JobStatusProgressing
	case mctypes.JobStatusComplete:
		return models.JobStatusComplete
	case mctypes.JobStatusCanceled:
		return models.JobStatusCanceled
	case mctypes.JobStatusError:
		return models.JobStatusError
	default:
		return models.JobStatusSubmitted
	}
}

// buildJobSettings produces the single fixed 4K rendition. The output
// object lands at {OutputS3Prefix}/{input base name}_4k.mp4, which the
// reconciler depends on when deriving the distribution URL.
func buildJobSettings(spec *models.TranscodeSpec) *mctypes.JobSettings {
	return &mctypes.JobSettings{
		Inputs: []mctypes.Input{
			{
				FileInput: aws.String(fmt.Sprintf("s3://%s/%s", spec.InputBucket, spec.InputS3Key)),
				AudioSelectors: map[string]mctypes.AudioSelector{
					"Audio Selector 1": {
						DefaultSelection: mctypes.AudioDefaultSelectionDefault,
					},
				},
				VideoSelector:  &mctypes.VideoSelector{},
				TimecodeSource: mctypes.InputTimecodeSourceZerobased,
			},
		},
		OutputGroups: []mctypes.OutputGroup{
			{
				Name: aws.String("File Group"),
				OutputGroupSettings: &mctypes.OutputGroupSettings{
					Type: mctypes.OutputGroupTypeFileGroupSettings,
					FileGroupSettings: &mctypes.FileGroupSettings{
						Destination: aws.String(fmt.Sprintf("s3://%s/%s/", spec.OutputBucket, spec.OutputS3Prefix)),
					},
				},
				Outputs: []mctypes.Output{
					{
						NameModifier: aws.String(convert.RenditionNameModifier),
						ContainerSettings: &mctypes.ContainerSettings{
							Container: mctypes.ContainerTypeMp4,
							Mp4Settings: &mctypes.Mp4Settings{
								CslgAtom:      mctypes.Mp4CslgAtomInclude,
								FreeSpaceBox:  mctypes.Mp4FreeSpaceBoxExclude,
								MoovPlacement: mctypes.Mp4MoovPlacementProgressiveDownload,
							},
						},
						VideoDescription: &mctypes.VideoDescription{
							Width:  aws.Int32(3840),
							Height: aws.Int32(2160),
							CodecSettings: &mctypes.VideoCodecSettings{
								Codec: mctypes.VideoCodecH264,
								H264Settings: &mctypes.H264Settings{
									RateControlMode: mctypes.H264RateControlModeQvbr,
									QvbrSettings: &mctypes.H264QvbrSettings{
										QvbrQualityLevel: aws.Int32(9),
									},
									MaxBitrate:        aws.Int32(25000000),
									SceneChangeDetect: mctypes.H264SceneChangeDetectTransitionDetection,
								},
							},
						},
						AudioDescriptions: []mctypes.AudioDescription{
							{
								CodecSettings: &mctypes.AudioCodecSettings{
									Codec: mctypes.AudioCodecAac,
									AacSettings: &mctypes.AacSettings{
										Bitrate:    aws.Int32(128000),
										CodingMode: mctypes.AacCodingModeCodingMode20,
										SampleRate: aws.Int32(48000),
									},
								},
							},
						},
					},
				},
			},
		},
	}
}
