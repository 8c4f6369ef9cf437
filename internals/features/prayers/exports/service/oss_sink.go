package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"jadwalsholat_backend/internals/configs"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"go.uber.org/zap"
)

/* =======================================================================
   OSS Sink (Aliyun): upload hasil export ke bucket
======================================================================= */

type OSSSink struct {
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	PublicBase string
	Prefix     string // mis. "jadwal"
}

func normalizeEndpoint(ep string) string {
	ep = strings.TrimSpace(ep)
	ep = strings.TrimPrefix(ep, "https://")
	ep = strings.TrimPrefix(ep, "http://")
	return strings.TrimRight(ep, "/")
}

func NewOSSSink(cfg configs.Config, log *zap.Logger) (*OSSSink, error) {
	if !cfg.OSSConfigured() {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}
	endpoint := normalizeEndpoint(cfg.OSSEndpoint)

	var opts []oss.ClientOption
	if cfg.OSSSecurityToken != "" {
		opts = append(opts, oss.SecurityToken(cfg.OSSSecurityToken))
	}
	client, err := oss.New("https://"+endpoint, cfg.OSSAccessKey, cfg.OSSSecretKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// Verifikasi ringan lokasi bucket
	if loc, err := client.GetBucketLocation(cfg.OSSBucket); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Warn("[OSS] skip location check (AccessDenied)", zap.String("bucket", cfg.OSSBucket))
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Info("[OSS] bucket ok", zap.String("bucket", cfg.OSSBucket), zap.String("location", loc))
	}

	return &OSSSink{
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: cfg.OSSBucket,
		PublicBase: strings.TrimRight(cfg.OSSPublicBase, "/"),
		Prefix:     strings.Trim(cfg.ExportOSSPrefix, "/"),
	}, nil
}

func (s *OSSSink) Name() string { return "oss:" + s.BucketName + "/" + s.Prefix }

func (s *OSSSink) objectKey(key string) string {
	if s.Prefix == "" {
		return key
	}
	return path.Join(s.Prefix, key)
}

func (s *OSSSink) Put(ctx context.Context, key string, data []byte) error {
	obj := s.objectKey(key)
	err := s.Bucket.PutObject(obj, bytes.NewReader(data),
		oss.ContentType("application/json; charset=utf-8"),
		oss.CacheControl("public, max-age=3600, stale-while-revalidate=7200"),
		oss.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("oss put %s: %w", obj, err)
	}
	return nil
}

// PublicURL URL publik object untuk key export.
func (s *OSSSink) PublicURL(key string) string {
	return PublicURL(s.PublicBase, s.BucketName, s.Endpoint, s.objectKey(key))
}

func PublicURL(publicBase, bucket, endpoint, objectKey string) string {
	if objectKey == "" {
		return ""
	}
	if publicBase != "" {
		return strings.TrimRight(publicBase, "/") + "/" + objectKey
	}
	if endpoint == "" || bucket == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.%s/%s", bucket, normalizeEndpoint(endpoint), objectKey)
}
