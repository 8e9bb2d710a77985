package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/aqidash/internal/common"
	"github.com/dmitrijs2005/aqidash/internal/netx"
	"github.com/xuri/excelize/v2"
)

const s3Scheme = "s3://"

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	getObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
		return c.GetObject(ctx, in)
	}
)

// S3Options configures access to an S3-compatible store. Empty User falls
// back to the default AWS credential chain; a non-empty BaseEndpoint
// switches to path-style addressing (MinIO).
type S3Options struct {
	Region       string
	BaseEndpoint string
	User         string
	Password     string
}

// Loader reads the dataset from a local file, an s3://bucket/key object or an
// http(s) URL such as a presigned object link.
// Nothing is cached: every Load reads the source again.
type Loader struct {
	path string
	s3   S3Options
}

func NewLoader(path string, s3opts S3Options) *Loader {
	return &Loader{path: path, s3: s3opts}
}

// Path returns the configured source location.
func (l *Loader) Path() string {
	return l.path
}

// Load reads and parses the dataset. A missing source yields an error
// wrapping common.ErrFileNotFound; a source without StationId, Date or AQI
// yields common.ErrMissingColumn.
func (l *Loader) Load(ctx context.Context) (*Table, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasPrefix(l.path, s3Scheme):
		data, err = l.readS3(ctx)
	case isHTTP(l.path):
		data, err = netx.Download(ctx, l.path)
	default:
		data, err = l.readFile()
	}
	if err != nil {
		return nil, err
	}

	var records [][]string
	switch ext := l.ext(); ext {
	case ".xlsx", ".xlsm":
		records, err = readXLSX(data)
	case ".csv":
		records, err = readCSV(data)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", l.path, err)
	}

	return parseRecords(records)
}

func isHTTP(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// ext is the lowercased extension of the source, ignoring any URL query
// (presigned links carry their signature there).
func (l *Loader) ext() string {
	p := l.path
	if isHTTP(p) {
		if u, err := url.Parse(p); err == nil {
			p = u.Path
		}
	}
	return strings.ToLower(path.Ext(p))
}

func (l *Loader) readFile() ([]byte, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrFileNotFound, l.path)
		}
		return nil, err
	}
	return data, nil
}

func splitS3Path(p string) (string, string, error) {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(p, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 path %q", p)
	}
	return bucket, key, nil
}

func (l *Loader) s3Client(ctx context.Context) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(l.s3.Region)}
	if l.s3.User != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			l.s3.User,
			l.s3.Password,
			"",
		)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if l.s3.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(l.s3.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (l *Loader) readS3(ctx context.Context) ([]byte, error) {
	bucket, key, err := splitS3Path(l.path)
	if err != nil {
		return nil, err
	}

	client, err := l.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := getObject(client, ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%w: %s", common.ErrFileNotFound, l.path)
		}
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	// raw values keep dates as serial numbers instead of locale formatted text
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

func readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.ReadAll()
}
