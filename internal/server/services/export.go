package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/expensetracker/internal/server/config"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/repomanager"
)

// ExportLinkValidity bounds the presigned download URL.
const ExportLinkValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return s3.NewPresignClient(c).PresignGetObject(ctx, in, optFns...)
	}
)

// ExportResult describes an uploaded CSV export.
type ExportResult struct {
	Key   string
	URL   string
	Count int
}

// ExportService writes a user's expenses as CSV to S3-compatible storage and
// hands back a short-lived download link.
type ExportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	now         func() time.Time
}

func NewExportService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *ExportService {
	return &ExportService{db: db, repomanager: m, config: cfg, now: time.Now}
}

func (s *ExportService) s3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// ExportKey is the object key for an export of userID taken at t.
func ExportKey(userID string, t time.Time) string {
	return fmt.Sprintf("exports/%s/%s.csv", userID, t.UTC().Format("20060102T150405Z"))
}

// WriteCSV renders expenses with a header row.
func WriteCSV(list []*models.Expense) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "date", "title", "category", "amount", "note"}); err != nil {
		return nil, err
	}
	for _, e := range list {
		rec := []string{e.ID, e.Date.UTC().Format(time.RFC3339), e.Title, e.Category, e.Amount.String(), e.Note}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export uploads the CSV of userID's expenses and returns a presigned GET URL.
func (s *ExportService) Export(ctx context.Context, userID string) (*ExportResult, error) {
	list, err := s.repomanager.Expenses(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing expenses: %w", err)
	}

	body, err := WriteCSV(list)
	if err != nil {
		return nil, fmt.Errorf("error rendering csv: %w", err)
	}

	client, err := s.s3Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("error configuring s3: %w", err)
	}

	bucket := s.config.S3Bucket
	key := ExportKey(userID, s.now())

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
	}); err != nil {
		return nil, fmt.Errorf("error uploading export: %w", err)
	}

	req, err := presignGetObject(client, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ExportLinkValidity))
	if err != nil {
		return nil, fmt.Errorf("error presigning export: %w", err)
	}

	return &ExportResult{Key: key, URL: req.URL, Count: len(list)}, nil
}
