package storage

import (
	"context"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/localstack"
)

var s3Storage *Storage

func TestMain(m *testing.M) {
	ctx := context.Background()

	ls, err := localstack.Run(ctx,
		"localstack/localstack:1.4.0",
		testcontainers.WithEnv(map[string]string{"SERVICES": "s3"}),
	)
	if err != nil {
		log.Fatalf("failed to start localstack: %v", err)
	}

	mappedPort, err := ls.MappedPort(ctx, "4566/tcp")
	if err != nil {
		log.Fatalf("failed to get port: %v", err)
	}
	host, err := ls.Host(ctx)
	if err != nil {
		log.Fatalf("failed to get host: %v", err)
	}

	os.Setenv("AWS_ACCESS_KEY_ID", "test")
	os.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	os.Setenv("AWS_REGION", "us-east-1")
	os.Setenv("AWS_ENDPOINT_URL", "http://"+host+":"+mappedPort.Port())

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("failed to load aws config: %v", err)
	}
	s3Storage = NewStorage(awsCfg, &StorageConfig{Bucket: "sites-test", Region: "us-east-1"})
	_, err = s3Storage.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String("sites-test")})
	if err != nil {
		log.Fatalf("failed to create bucket: %v", err)
	}

	exitCode := m.Run()

	if err := ls.Terminate(ctx); err != nil {
		log.Printf("failed to terminate localstack: %s", err)
	}

	os.Exit(exitCode)
}

func TestListFilesEmpty(t *testing.T) {
	files, err := s3Storage.ListFiles(context.Background(), "sites/nothing-here/")
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestUploadAndGetFile(t *testing.T) {
	ctx := context.Background()

	url, err := s3Storage.UploadFile(ctx, "sites/acme/index.html", nil, strings.NewReader("<h1>Acme</h1>"))
	require.NoError(t, err)
	require.Equal(t, "https://sites-test.s3.us-east-1.amazonaws.com/sites/acme/index.html", url)

	data, err := s3Storage.GetFile(ctx, "sites/acme/index.html")
	require.NoError(t, err)
	require.Equal(t, "<h1>Acme</h1>", string(data))
}

func TestGetMissingFileReturnsNotFound(t *testing.T) {
	_, err := s3Storage.GetFile(context.Background(), "sites/missing/index.html")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePrefixRemovesOnlyThatSite(t *testing.T) {
	ctx := context.Background()
	for _, key := range []string{"sites/bakery/index.html", "sites/bakery/about.html", "sites/bakery-two/index.html"} {
		_, err := s3Storage.UploadFile(ctx, key, nil, strings.NewReader("page"))
		require.NoError(t, err)
	}

	deleted, err := s3Storage.DeletePrefix(ctx, "sites/bakery/")
	require.NoError(t, err)
	require.Equal(t, 2, deleted)

	left, err := s3Storage.ListFiles(ctx, "sites/bakery")
	require.NoError(t, err)
	require.Equal(t, []string{"sites/bakery-two/index.html"}, left)
}

func TestPublicURLUsesConfiguredBase(t *testing.T) {
	s := &Storage{cfg: &StorageConfig{Bucket: "b", Region: "r", PublicBaseURL: "https://cdn.example.com/"}}
	require.Equal(t, "https://cdn.example.com/sites/x/index.html", s.PublicURL("sites/x/index.html"))
}
