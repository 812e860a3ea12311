package objectstore

import (
	"bytes"
	"context"

	"github.com/shandysiswandi/gotrust/internal/pkg/instrument"
	"github.com/shandysiswandi/gotrust/internal/pkg/storage"
	"go.opentelemetry.io/otel/codes"
)

// Archive writes audit exports to object storage.
type Archive struct {
	store  storage.Storage
	bucket string
	ins    instrument.Instrumentation
}

func NewArchive(store storage.Storage, bucket string, ins instrument.Instrumentation) *Archive {
	return &Archive{
		store:  store,
		bucket: bucket,
		ins:    ins,
	}
}

func (a *Archive) Store(ctx context.Context, key string, data []byte) (string, error) {
	ctx, span := a.ins.Tracer("audit.outbound.objectstore").Start(ctx, "Store")
	defer span.End()

	info, err := a.store.PutObject(ctx, a.bucket, key, bytes.NewReader(data), storage.PutOptions{
		Size:        int64(len(data)),
		ContentType: "application/json",
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return info.Bucket + "/" + info.Key, nil
}
