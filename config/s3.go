package config

type S3Config struct {
	PDFBucketName   string
	AudioBucketName string
	Region          string
}

func GetS3Config() (*S3Config, error) {
	pdfBucket, err := requireEnv("PDF_BUCKET_NAME")
	if err != nil {
		return nil, err
	}

	audioBucket, err := requireEnv("AUDIO_BUCKET_NAME")
	if err != nil {
		return nil, err
	}

	region, err := requireEnv("REGION")
	if err != nil {
		return nil, err
	}

	return &S3Config{
		PDFBucketName:   pdfBucket,
		AudioBucketName: audioBucket,
		Region:          region,
	}, nil
}
