package adapters

import (
	"bytes"
	"context"
	"fmt"
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

type s3AudioStore struct {
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3AudioStore(s3Svc *s3.S3, s3Config *config.S3Config) outbound.AudioStorePort {
	return &s3AudioStore{
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (s *s3AudioStore) Save(ctx context.Context, audio []byte, name string) (string, error) {
	itemPath := fmt.Sprintf("%s/%s", s.s3Config.KeyPrefix, name)

	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(s.s3Config.BucketName),
		Key:           aws.String(itemPath),
		Body:          bytes.NewReader(audio),
		ContentLength: aws.Int64(int64(len(audio))),
		ContentType:   aws.String("audio/mpeg"),
	}

	_, err := s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", s.s3Config.BucketName).
			Str("fileName", name).
			Msg("Failed to upload audio to S3")
		return "", err
	}

	s3Url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, itemPath)
	log.Debug().
		Str("s3Url", s3Url).
		Msg("Successfully uploaded audio to S3")

	return s3Url, nil
}
