package storage

import (
	"os"
	"strings"

	"coparent/db"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

// Bucket is a place where family documents are kept - either a local
// directory or a S3 bucket.
type Bucket struct {
	ID            uint64 `gorm:"primaryKey"`
	CreatedAt     int64
	UpdatedAt     int64
	Name          string `gorm:"type:varchar(200)"`
	StorageType   StorageType
	Path          string // Path on a drive or a prefix in a S3 bucket
	Region        string `gorm:"type:varchar(50)"`  // S3 region
	Endpoint      string `gorm:"type:varchar(300)"` // Custom S3 endpoint (optional)
	AuthDetails   string // Authentication details. In case of S3 bucket - "key:secret"
	SSEEncryption string `gorm:"type:varchar(30)"` // S3 server-side encryption, e.g. "AES256"
}

func (b *Bucket) Create() error {
	err := db.Instance.Create(b).Error
	if err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		return os.MkdirAll(b.Path, 0777)
	}
	return nil
}

// GetRemotePath prefixes the object key with the configured bucket prefix
func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return strings.TrimSuffix(b.Path, "/") + "/" + path
}

// CreateSVC creates a S3 client out of the Bucket auth details
func (b *Bucket) CreateSVC() *s3.S3 {
	creds := strings.Split(b.AuthDetails, ":")
	if len(creds) != 2 {
		panic("S3 bucket auth details must be in the format key:secret")
	}
	conf := &aws.Config{
		Region:      aws.String(b.Region),
		Credentials: credentials.NewStaticCredentials(creds[0], creds[1], ""),
	}
	if b.Endpoint != "" {
		conf.Endpoint = aws.String(b.Endpoint)
		conf.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(conf)
	if err != nil {
		panic(err)
	}
	return s3.New(sess)
}
